// Package recommend assembles study recommendations from the material
// catalog, learner progress and adaptive content.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/adaptlearn/internal/catalog"
	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/store"
)

// DefaultBatchConcurrency bounds concurrent recommendations in a batch.
const DefaultBatchConcurrency = 4

// ProgressReader reads learner progress. *progress.Service satisfies it.
type ProgressReader interface {
	Get(ctx context.Context, learnerID, subject string) *store.ProgressRecord
}

// Request asks for a recommendation. Speed overrides inference when set;
// LearnerID enables inference and completed-material filtering.
type Request struct {
	Subject   string `json:"subject"`
	Speed     string `json:"learning_speed,omitempty"`
	LearnerID string `json:"learner_id,omitempty"`
}

// AdaptiveContent is the generated text section of a Result.
type AdaptiveContent struct {
	Topic           string `json:"topic"`
	Subject         string `json:"subject"`
	ComplexityLevel string `json:"complexity_level"`
	Content         string `json:"content"`
	Substituted     bool   `json:"substituted,omitempty"`
	Warning         string `json:"warning,omitempty"`
}

// Result is one recommendation. ComplexityLevel uses the content tier
// names (basic, intermediate, advanced); StudentLevel uses the catalog's
// (beginner, intermediate, advanced).
type Result struct {
	Subject              string             `json:"subject"`
	ComplexityLevel      string             `json:"complexity_level"`
	StudentLevel         string             `json:"student_level"`
	LearningSpeed        string             `json:"learning_speed"`
	RecommendedMaterials []catalog.Material `json:"recommended_materials"`
	AdaptiveContent      AdaptiveContent    `json:"adaptive_content"`
}

// Service builds recommendations.
type Service struct {
	catalog  *catalog.Catalog
	content  *content.Generator
	progress ProgressReader
	logger   *logging.Logger

	// BatchConcurrency bounds BatchRecommend; values < 1 use the default.
	BatchConcurrency int
}

// NewService creates a recommendation service. pr may be nil, in
// which case learner ids are ignored.
func NewService(cat *catalog.Catalog, gen *content.Generator, pr ProgressReader, logger *logging.Logger) *Service {
	return &Service{
		catalog:          cat,
		content:          gen,
		progress:         pr,
		logger:           logging.OrNop(logger),
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

// Subjects returns the catalog's subjects.
func (s *Service) Subjects() []string {
	return s.catalog.Subjects()
}

// Recommend builds a recommendation for req. An unknown subject fails with
// subject.ErrNotFound; every other degraded input is recovered.
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	name, err := s.catalog.Require(req.Subject)
	if err != nil {
		return nil, err
	}

	learner := strings.TrimSpace(req.LearnerID)
	var rec *store.ProgressRecord
	if learner != "" && s.progress != nil {
		rec = s.progress.Get(ctx, learner, name)
	}

	speed := s.resolveSpeed(req.Speed, rec)
	tier := level.TierFor(speed)

	materials := s.catalog.Materials(name, tier)
	if rec != nil {
		materials = filterCompleted(materials, rec)
	}

	adaptive, err := s.content.Select(ctx, name, speed)
	if err != nil {
		return nil, fmt.Errorf("adaptive content for %s: %w", name, err)
	}

	return &Result{
		Subject:              name,
		ComplexityLevel:      tier.ContentKey(),
		StudentLevel:         tier.CatalogKey(),
		LearningSpeed:        speed.String(),
		RecommendedMaterials: materials,
		AdaptiveContent: AdaptiveContent{
			Topic:           adaptive.Topic,
			Subject:         adaptive.Subject,
			ComplexityLevel: adaptive.ComplexityLevel,
			Content:         adaptive.Content,
			Substituted:     adaptive.Substituted,
			Warning:         adaptive.Warning,
		},
	}, nil
}

// resolveSpeed picks the explicit speed, then the inferred one, then medium.
func (s *Service) resolveSpeed(explicit string, rec *store.ProgressRecord) level.Speed {
	if strings.TrimSpace(explicit) != "" {
		speed, ok := level.ParseSpeed(explicit)
		if !ok {
			s.logger.Warn("unknown learning speed, using medium", "speed", explicit)
		}
		return speed
	}
	if rec != nil {
		return progress.InferSpeed(rec)
	}
	return level.SpeedMedium
}

// filterCompleted drops materials whose key or URL is in the completed
// set, keeping catalog order.
func filterCompleted(ms []catalog.Material, rec *store.ProgressRecord) []catalog.Material {
	if len(rec.CompletedMaterials) == 0 {
		return ms
	}
	out := make([]catalog.Material, 0, len(ms))
	for _, m := range ms {
		if rec.HasCompleted(m.URL) || rec.HasCompleted(m.Key()) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// BatchRecommend recommends for each subject concurrently. The first
// failure cancels the batch. Keys are the subjects as requested.
func (s *Service) BatchRecommend(ctx context.Context, subjects []string, learnerID string) (map[string]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	limit := s.BatchConcurrency
	if limit < 1 {
		limit = DefaultBatchConcurrency
	}
	g.SetLimit(limit)

	var mu sync.Mutex
	out := make(map[string]*Result, len(subjects))
	for _, subj := range subjects {
		g.Go(func() error {
			res, err := s.Recommend(ctx, Request{Subject: subj, LearnerID: learnerID})
			if err != nil {
				return fmt.Errorf("recommend %q: %w", subj, err)
			}
			mu.Lock()
			out[subj] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
