// Package level defines learning speeds and complexity tiers.
package level

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptlearn/internal/rewrite"
)

// Speed is a learner's pace category.
type Speed int

const (
	SpeedMedium Speed = iota // Default when nothing else is known
	SpeedSlow
	SpeedFast
)

// AllSpeeds returns all speeds in display order.
func AllSpeeds() []Speed {
	return []Speed{SpeedSlow, SpeedMedium, SpeedFast}
}

func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "medium"
	}
}

// MarshalText encodes the speed as its name.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a speed name, rejecting unknown values.
func (s *Speed) UnmarshalText(b []byte) error {
	v, ok := ParseSpeed(string(b))
	if !ok {
		return fmt.Errorf("unknown learning speed %q", string(b))
	}
	*s = v
	return nil
}

// ParseSpeed parses a speed name, ignoring case and surrounding space.
func ParseSpeed(s string) (Speed, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return SpeedSlow, true
	case "medium":
		return SpeedMedium, true
	case "fast":
		return SpeedFast, true
	}
	return SpeedMedium, false
}

// SpeedOrDefault parses s, falling back to medium for unrecognized input.
func SpeedOrDefault(s string) Speed {
	v, _ := ParseSpeed(s)
	return v
}

// Tier is a content complexity level. It is the single internal
// representation; the two external tables each have their own key naming.
type Tier int

const (
	TierIntermediate Tier = iota
	TierBasic
	TierAdvanced
)

// AllTiers returns all tiers from simplest to hardest.
func AllTiers() []Tier {
	return []Tier{TierBasic, TierIntermediate, TierAdvanced}
}

func (t Tier) String() string { return t.ContentKey() }

// ContentKey is the tier's key in the canonical subject text table.
func (t Tier) ContentKey() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierAdvanced:
		return "advanced"
	default:
		return "intermediate"
	}
}

// CatalogKey is the tier's key in the study material catalog.
func (t Tier) CatalogKey() string {
	switch t {
	case TierBasic:
		return "beginner"
	case TierAdvanced:
		return "advanced"
	default:
		return "intermediate"
	}
}

// DisplayName returns a human-readable name for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBasic:
		return "Beginner"
	case TierAdvanced:
		return "Advanced"
	default:
		return "Intermediate"
	}
}

// TierFromContentKey parses a canonical text table key.
func TierFromContentKey(s string) (Tier, bool) {
	switch strings.ToLower(s) {
	case "basic":
		return TierBasic, true
	case "intermediate":
		return TierIntermediate, true
	case "advanced":
		return TierAdvanced, true
	}
	return TierIntermediate, false
}

// TierFromCatalogKey parses a material catalog key.
func TierFromCatalogKey(s string) (Tier, bool) {
	switch strings.ToLower(s) {
	case "beginner":
		return TierBasic, true
	case "intermediate":
		return TierIntermediate, true
	case "advanced":
		return TierAdvanced, true
	}
	return TierIntermediate, false
}

// TierFor maps a learning speed to its tier.
func TierFor(s Speed) Tier {
	switch s {
	case SpeedSlow:
		return TierBasic
	case SpeedFast:
		return TierAdvanced
	default:
		return TierIntermediate
	}
}

// ModeFor maps a learning speed to the rewrite applied to canonical text.
func ModeFor(s Speed) rewrite.Mode {
	switch s {
	case SpeedSlow:
		return rewrite.ModeSimplify
	case SpeedFast:
		return rewrite.ModeEnhance
	default:
		return rewrite.ModePassthrough
	}
}
