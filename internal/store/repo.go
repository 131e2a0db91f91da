package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/adaptlearn/internal/subject"
)

// DefaultCatalogSize is the number of materials assumed per subject when
// computing completion rates.
const DefaultCatalogSize = 10

// ErrInvalidKey is returned when a learner or subject is blank.
var ErrInvalidKey = errors.New("learner id and subject are required")

// ErrInvalidScore is returned for a score outside [0, 100].
var ErrInvalidScore = errors.New("score out of range [0, 100]")

// ProgressRecord is a learner's progress in one subject.
type ProgressRecord struct {
	LearnerID          string    `json:"learner_id"`
	Subject            string    `json:"subject"`
	CompletionRate     float64   `json:"completion_rate"`
	AverageScore       float64   `json:"average_score"`
	CompletedMaterials []string  `json:"completed_materials"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`

	// Found is false when no record existed and the zero record was returned.
	Found bool `json:"-"`
}

// EmptyProgress returns the neutral record used when none exists.
func EmptyProgress(learnerID, subject string) *ProgressRecord {
	return &ProgressRecord{
		LearnerID:          learnerID,
		Subject:            subject,
		CompletedMaterials: []string{},
	}
}

// IsEmpty reports whether the record carries no progress signal.
func (r *ProgressRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return !r.Found && r.CompletionRate == 0 && r.AverageScore == 0 && len(r.CompletedMaterials) == 0
}

// HasCompleted reports whether the material id is in the completed set.
func (r *ProgressRecord) HasCompleted(id string) bool {
	if r == nil || id == "" {
		return false
	}
	for _, m := range r.CompletedMaterials {
		if m == id {
			return true
		}
	}
	return false
}

// CompletedSet returns the completed materials as a set.
func (r *ProgressRecord) CompletedSet() map[string]bool {
	set := make(map[string]bool)
	if r == nil {
		return set
	}
	for _, m := range r.CompletedMaterials {
		set[m] = true
	}
	return set
}

// ProgressUpdate is one completed-material event.
type ProgressUpdate struct {
	LearnerID  string
	Subject    string
	Score      float64
	MaterialID string
	At         time.Time
}

// Validate checks the update's key and score range.
func (u ProgressUpdate) Validate() error {
	if strings.TrimSpace(u.LearnerID) == "" || strings.TrimSpace(u.Subject) == "" {
		return ErrInvalidKey
	}
	if math.IsNaN(u.Score) || u.Score < 0 || u.Score > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidScore, u.Score)
	}
	return nil
}

// normalized returns u with the learner id trimmed and the subject cleaned.
func (u ProgressUpdate) normalized() ProgressUpdate {
	u.LearnerID = strings.TrimSpace(u.LearnerID)
	u.Subject = subject.Clean(u.Subject)
	return u
}

// recordKey is the identity of a progress record. Learner ids are compared
// after trimming; subjects case-insensitively, so "mathematics" and
// "Mathematics" address the same record.
type recordKey struct {
	learner string
	subject string
}

func keyOf(learnerID, subj string) recordKey {
	return recordKey{learner: strings.TrimSpace(learnerID), subject: subject.Key(subj)}
}

func (k recordKey) matches(rec *ProgressRecord) bool {
	return keyOf(rec.LearnerID, rec.Subject) == k
}

// ProgressRepo persists learner progress records.
type ProgressRepo interface {
	// Get returns the record for (learner, subject), or an empty record
	// with Found=false when none exists.
	Get(ctx context.Context, learnerID, subject string) (*ProgressRecord, error)

	// Update merges the update into the stored record as one atomic
	// read-modify-write for that key and returns the new record.
	Update(ctx context.Context, u ProgressUpdate) (*ProgressRecord, error)

	// List returns all records for a learner ordered by subject.
	List(ctx context.Context, learnerID string) ([]ProgressRecord, error)
}

// merge applies u to rec. The latest score replaces the stored average
// (last writer wins) and the material joins the completed set. The
// completion rate is the completed count over catalogSize, capped at 1.
// An existing record keeps the subject spelling it was created with.
func merge(rec *ProgressRecord, u ProgressUpdate, catalogSize int) *ProgressRecord {
	out := &ProgressRecord{
		LearnerID:    u.LearnerID,
		Subject:      u.Subject,
		AverageScore: u.Score,
		Found:        true,
		UpdatedAt:    u.At,
	}
	if rec != nil && rec.Found && rec.Subject != "" {
		out.Subject = rec.Subject
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = time.Now().UTC()
	}

	set := rec.CompletedSet()
	if id := strings.TrimSpace(u.MaterialID); id != "" {
		set[id] = true
	}
	out.CompletedMaterials = sortedKeys(set)

	rate := float64(len(out.CompletedMaterials)) / float64(normalizeCatalogSize(catalogSize))
	out.CompletionRate = math.Min(rate, 1)
	return out
}

func normalizeCatalogSize(n int) int {
	if n < 1 {
		return DefaultCatalogSize
	}
	return n
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
