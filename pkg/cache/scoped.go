package cache

// ScopedKeyer wraps a Keyer with a prefix so that several exchanges can
// share one backend without colliding:
//
//	office := NewScopedKeyer(NewDefaultKeyer(), "office:")
//	family := NewScopedKeyer(NewDefaultKeyer(), "family:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(requestHash string) string {
	return k.prefix + k.inner.ResultKey(requestHash)
}
