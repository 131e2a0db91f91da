package progress

import (
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/store"
)

// Thresholds for speed inference.
const (
	FastMinRate  = 0.8
	FastMinScore = 85.0
	SlowMaxRate  = 0.5
	SlowMaxScore = 60.0
)

// SpeedRule maps a progress record to a speed, or reports that it does
// not apply.
type SpeedRule interface {
	Name() string
	Infer(rec *store.ProgressRecord) (level.Speed, bool)
}

// DefaultRules returns the inference rules in priority order.
func DefaultRules() []SpeedRule {
	return []SpeedRule{
		emptyRule{},
		fastRule{},
		slowRule{},
	}
}

// InferSpeed applies the default rules; the first match wins and medium
// is the fallback.
func InferSpeed(rec *store.ProgressRecord) level.Speed {
	speed, _ := RunRules(DefaultRules(), rec)
	return speed
}

// RunRules executes rules in order and returns the first match with the
// rule's name, or (medium, "") when none applies.
func RunRules(rules []SpeedRule, rec *store.ProgressRecord) (level.Speed, string) {
	for _, r := range rules {
		if s, ok := r.Infer(rec); ok {
			return s, r.Name()
		}
	}
	return level.SpeedMedium, ""
}

// emptyRule: no progress is a neutral signal.
type emptyRule struct{}

func (emptyRule) Name() string { return "empty" }

func (emptyRule) Infer(rec *store.ProgressRecord) (level.Speed, bool) {
	return level.SpeedMedium, rec.IsEmpty()
}

type fastRule struct{}

func (fastRule) Name() string { return "fast" }

func (fastRule) Infer(rec *store.ProgressRecord) (level.Speed, bool) {
	return level.SpeedFast, rec.CompletionRate > FastMinRate && rec.AverageScore > FastMinScore
}

type slowRule struct{}

func (slowRule) Name() string { return "slow" }

func (slowRule) Infer(rec *store.ProgressRecord) (level.Speed, bool) {
	return level.SpeedSlow, rec.CompletionRate < SlowMaxRate || rec.AverageScore < SlowMaxScore
}
