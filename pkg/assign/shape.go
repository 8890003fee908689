package assign

import (
	"fmt"
	"strings"

	"github.com/matzehuels/giftring/pkg/errors"
)

// Operator is the comparison used by [InequalityCycles].
type Operator string

const (
	// Greater requires every cycle to be longer than the bound.
	Greater Operator = "gt"
	// Less requires every cycle to be shorter than the bound.
	Less Operator = "lt"
)

// ParseOperator accepts "gt", ">", "greater", "lt", "<" and "less".
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gt", ">", "greater":
		return Greater, nil
	case "lt", "<", "less":
		return Less, nil
	}
	return "", errors.New(errors.ErrCodeInvalidShape, "unknown operator %q (want gt or lt)", s)
}

// Symbol returns ">" or "<".
func (o Operator) Symbol() string {
	if o == Greater {
		return ">"
	}
	return "<"
}

// Shape selects the cycle structure a generated assignment must have.
// The set of variants is closed: [Unconstrained], [Hamiltonian],
// [EqualCycles] and [InequalityCycles].
type Shape interface {
	isShape()
	String() string
}

// Unconstrained accepts any cycle structure.
type Unconstrained struct{}

// Hamiltonian requires one cycle through every participant.
type Hamiltonian struct{}

// EqualCycles requires cycles of exactly Size participants. When the
// participant count is not a multiple of Size, one overflow cycle of
// Size + n%Size absorbs the remainder. Size 1 means self-pairing.
type EqualCycles struct {
	Size int
}

// InequalityCycles requires every cycle length to compare to Size by Op.
type InequalityCycles struct {
	Size int
	Op   Operator
}

func (Unconstrained) isShape()    {}
func (Hamiltonian) isShape()      {}
func (EqualCycles) isShape()      {}
func (InequalityCycles) isShape() {}

func (Unconstrained) String() string    { return "unconstrained" }
func (Hamiltonian) String() string      { return "hamiltonian" }
func (s EqualCycles) String() string    { return fmt.Sprintf("cycles of %d", s.Size) }
func (s InequalityCycles) String() string {
	return fmt.Sprintf("cycles %s %d", s.Op.Symbol(), s.Size)
}

// Shape kinds used by [ShapeSpec].
const (
	KindNone        = "none"
	KindHamiltonian = "hamiltonian"
	KindEqual       = "equal"
	KindInequality  = "inequality"
)

// ShapeSpec is the serializable form of a [Shape], used in request files
// and the HTTP API.
type ShapeSpec struct {
	Kind     string `json:"kind" toml:"kind"`
	Size     int    `json:"size,omitempty" toml:"size,omitempty"`
	Operator string `json:"operator,omitempty" toml:"operator,omitempty"`
}

// Shape converts s to a [Shape]. An empty kind means [Unconstrained].
// Size is not range-checked here; [Generate] reports bad sizes as a failed
// result so that callers see one failure path.
func (s ShapeSpec) Shape() (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s.Kind)) {
	case "", KindNone:
		return Unconstrained{}, nil
	case KindHamiltonian, "single":
		return Hamiltonian{}, nil
	case KindEqual:
		return EqualCycles{Size: s.Size}, nil
	case KindInequality:
		op, err := ParseOperator(s.Operator)
		if err != nil {
			return nil, err
		}
		return InequalityCycles{Size: s.Size, Op: op}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidShape, "unknown shape kind %q", s.Kind)
}

// SpecOf returns the serializable form of shape.
func SpecOf(shape Shape) ShapeSpec {
	switch s := shape.(type) {
	case Hamiltonian:
		return ShapeSpec{Kind: KindHamiltonian}
	case EqualCycles:
		return ShapeSpec{Kind: KindEqual, Size: s.Size}
	case InequalityCycles:
		return ShapeSpec{Kind: KindInequality, Size: s.Size, Operator: string(s.Op)}
	default:
		return ShapeSpec{Kind: KindNone}
	}
}
