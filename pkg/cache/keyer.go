package cache

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for a generated result, given the hash of
	// the normalized request that produced it.
	ResultKey(requestHash string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(requestHash string) string {
	return hashKey("result", requestHash)
}
