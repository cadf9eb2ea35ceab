package pricing

import (
	"fmt"
)

// DefaultArmCount is the number of arms of a product without arm breaks.
const DefaultArmCount = 2

// ArmBreak sets the arm count for widths in [MinWidth, MaxWidth]. Projection 0
// matches every projection.
type ArmBreak struct {
	Projection int `json:"projection,omitempty" yaml:"projection"`
	MinWidth   int `json:"min_width" yaml:"min_width"`
	MaxWidth   int `json:"max_width" yaml:"max_width"`
	Arms       int `json:"arms" yaml:"arms"`
}

func (b ArmBreak) matches(projection, width int) bool {
	return (b.Projection == 0 || b.Projection == projection) && width >= b.MinWidth && width <= b.MaxWidth
}

// MechanicalLimit is a (projection, width range) combination that cannot be built,
// typically because folded arms collide.
type MechanicalLimit struct {
	Projection int    `json:"projection" yaml:"projection"`
	MinWidth   int    `json:"min_width" yaml:"min_width"`
	MaxWidth   int    `json:"max_width" yaml:"max_width"`
	Reason     string `json:"reason,omitempty" yaml:"reason"`
}

// Mechanics holds the arm layout and forbidden combinations of a product. The zero
// value allows every combination with DefaultArmCount arms.
type Mechanics struct {
	ArmBreaks []ArmBreak        `json:"arm_breaks,omitempty"`
	Limits    []MechanicalLimit `json:"limits,omitempty"`
}

func (m Mechanics) Validate() error {
	for i, b := range m.ArmBreaks {
		if b.Projection < 0 || b.MinWidth <= 0 || b.MaxWidth < b.MinWidth || b.Arms <= 0 {
			return fmt.Errorf("%w: arm break %d is malformed", ErrInvalidCatalogData, i)
		}
		for _, other := range m.ArmBreaks[:i] {
			if other.Projection == b.Projection && b.MinWidth <= other.MaxWidth && other.MinWidth <= b.MaxWidth {
				return fmt.Errorf("%w: arm breaks overlap at projection %d", ErrInvalidCatalogData, b.Projection)
			}
		}
	}
	for i, l := range m.Limits {
		if l.Projection <= 0 || l.MinWidth <= 0 || l.MaxWidth < l.MinWidth {
			return fmt.Errorf("%w: mechanical limit %d is malformed", ErrInvalidCatalogData, i)
		}
	}
	return nil
}

// Check rejects a forbidden combination with ErrInvalidDimension.
func (m Mechanics) Check(projection, width int) error {
	for _, l := range m.Limits {
		if l.Projection == projection && width >= l.MinWidth && width <= l.MaxWidth {
			reason := l.Reason
			if reason == "" {
				reason = "mechanical conflict"
			}
			return fmt.Errorf("%w: width %d mm cannot be built with projection %d mm (%s)", ErrInvalidDimension, width, projection, reason)
		}
	}
	return nil
}

// ArmCount returns the arm count for a combination. A break for the exact
// projection takes precedence over one matching every projection.
func (m Mechanics) ArmCount(projection, width int) int {
	arms := 0
	for _, b := range m.ArmBreaks {
		if !b.matches(projection, width) {
			continue
		}
		if b.Projection == projection {
			return b.Arms
		}
		arms = b.Arms
	}
	if arms == 0 {
		return DefaultArmCount
	}
	return arms
}
