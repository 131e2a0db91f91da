// Package placement predicts a learner's starting tier from self-reported
// study metrics.
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/adaptlearn/internal/level"
)

// Metric bounds.
const (
	MaxScore       = 100.0
	MaxStudyHours  = 20.0
	MinAttendance  = 60.0
	MaxAttendance  = 100.0
	MaxAssignments = 100.0
)

const (
	beginnerCutoff     = 40.0
	intermediateCutoff = 70.0
)

// ErrOutOfRange is returned by Validate for a metric outside its bounds.
var ErrOutOfRange = errors.New("metric out of range")

// Metrics are a learner's self-reported study figures.
type Metrics struct {
	CurrentScore float64 `json:"current_score"` // Latest exam score, 0–100
	StudyHours   float64 `json:"study_hours"`   // Weekly hours, 0–20
	Attendance   float64 `json:"attendance"`    // Percent, 60–100
	Assignments  float64 `json:"assignments"`   // Average marks, 0–100
}

// Validate checks every metric against its bounds.
func (m Metrics) Validate() error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"current score", m.CurrentScore, 0, MaxScore},
		{"study hours", m.StudyHours, 0, MaxStudyHours},
		{"attendance", m.Attendance, MinAttendance, MaxAttendance},
		{"assignments", m.Assignments, 0, MaxAssignments},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < c.min || c.v > c.max {
			return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrOutOfRange, c.name, c.v, c.min, c.max)
		}
	}
	return nil
}

// Predictor assigns a tier to validated metrics.
type Predictor interface {
	Predict(m Metrics) level.Tier
}

// ScoreRule places learners by their latest score alone.
type ScoreRule struct{}

// Predict returns basic below 40, intermediate below 70, else advanced.
func (ScoreRule) Predict(m Metrics) level.Tier {
	switch {
	case m.CurrentScore < beginnerCutoff:
		return level.TierBasic
	case m.CurrentScore < intermediateCutoff:
		return level.TierIntermediate
	default:
		return level.TierAdvanced
	}
}

// Placement is a predicted tier and the speed that yields the same tier.
type Placement struct {
	Tier  level.Tier  `json:"-"`
	Level string      `json:"level"`
	Speed level.Speed `json:"learning_speed"`
}

// Place validates m and runs p over it. A nil p uses ScoreRule.
func Place(p Predictor, m Metrics) (*Placement, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		p = ScoreRule{}
	}
	tier := p.Predict(m)
	return &Placement{Tier: tier, Level: tier.CatalogKey(), Speed: SpeedFor(tier)}, nil
}

// SpeedFor is the inverse of level.TierFor.
func SpeedFor(t level.Tier) level.Speed {
	switch t {
	case level.TierBasic:
		return level.SpeedSlow
	case level.TierAdvanced:
		return level.SpeedFast
	default:
		return level.SpeedMedium
	}
}
