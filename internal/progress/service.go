// Package progress reads and records learner progress and infers a
// learning speed from it.
package progress

import (
	"context"
	"time"

	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/store"
)

// Service wraps a progress repository.
type Service struct {
	repo    store.ProgressRepo
	logger  *logging.Logger
	now     func() time.Time
	resolve func(string) (string, bool)
}

// NewService creates a progress service over repo.
func NewService(repo store.ProgressRepo, logger *logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logging.OrNop(logger),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ResolveSubjectsWith makes the service record subjects under the name
// resolve returns, e.g. the catalog's spelling. Unresolved names are kept.
func (s *Service) ResolveSubjectsWith(resolve func(string) (string, bool)) {
	s.resolve = resolve
}

func (s *Service) subjectName(name string) string {
	if s.resolve != nil {
		if n, ok := s.resolve(name); ok {
			return n
		}
	}
	return name
}

// Get returns the learner's record for subject. It never fails: a
// repository error is logged and an empty record returned.
func (s *Service) Get(ctx context.Context, learnerID, subject string) *store.ProgressRecord {
	subject = s.subjectName(subject)
	rec, err := s.repo.Get(ctx, learnerID, subject)
	if err != nil {
		s.logger.Warn("progress unavailable",
			"learner", learnerID, "subject", subject, "error", err)
		return store.EmptyProgress(learnerID, subject)
	}
	if rec == nil {
		return store.EmptyProgress(learnerID, subject)
	}
	return rec
}

// Update records a completed material and score. It reports whether the
// record was persisted.
func (s *Service) Update(ctx context.Context, learnerID, subject string, score float64, materialID string) (bool, error) {
	_, err := s.Record(ctx, store.ProgressUpdate{
		LearnerID:  learnerID,
		Subject:    subject,
		Score:      score,
		MaterialID: materialID,
	})
	return err == nil, err
}

// Record applies u and returns the resulting record.
func (s *Service) Record(ctx context.Context, u store.ProgressUpdate) (*store.ProgressRecord, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.Subject = s.subjectName(u.Subject)
	if u.At.IsZero() {
		u.At = s.now()
	}
	rec, err := s.repo.Update(ctx, u)
	if err != nil {
		s.logger.Error("progress update failed",
			"learner", u.LearnerID, "subject", u.Subject, "error", err)
		return nil, err
	}
	s.logger.Debug("progress updated",
		"learner", u.LearnerID, "subject", u.Subject,
		"score", rec.AverageScore, "completion_rate", rec.CompletionRate)
	return rec, nil
}

// List returns all of a learner's records.
func (s *Service) List(ctx context.Context, learnerID string) ([]store.ProgressRecord, error) {
	return s.repo.List(ctx, learnerID)
}

// Speed infers the learner's speed in subject from stored progress.
func (s *Service) Speed(ctx context.Context, learnerID, subject string) level.Speed {
	return InferSpeed(s.Get(ctx, learnerID, subject))
}
