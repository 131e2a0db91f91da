// Package content picks the canonical text for a subject at the tier that
// matches a learner's speed and rewrites it for that speed.
package content

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/rewrite"
	"github.com/abhisek/adaptlearn/internal/subject"
)

// SubjectPolicy decides what happens when a subject has no canonical text.
type SubjectPolicy int

const (
	PolicyStrict     SubjectPolicy = iota // Fail with subject.ErrNotFound
	PolicySubstitute                      // Pick another subject and flag it
)

func (p SubjectPolicy) String() string {
	if p == PolicySubstitute {
		return "substitute"
	}
	return "strict"
}

// ParsePolicy parses "strict" or "substitute".
func ParsePolicy(s string) (SubjectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "substitute":
		return PolicySubstitute, nil
	}
	return PolicyStrict, fmt.Errorf("unknown subject policy %q (want strict or substitute)", s)
}

// DefaultCacheTTL is how long rewritten content stays memoized.
const DefaultCacheTTL = 30 * time.Minute

// Options configures a Generator. The zero value is a strict generator
// over the built-in lexicon with a time-seeded random source.
type Options struct {
	Policy   SubjectPolicy
	Rand     *rand.Rand
	CacheTTL time.Duration
	Rewriter *rewrite.Rewriter
	Logger   *logging.Logger
}

// Adaptive is generated content for one subject.
type Adaptive struct {
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	ComplexityLevel string `json:"complexity_level"`
	LearningSpeed   string `json:"learning_speed"`
	Content         string `json:"content"`
	Substituted     bool   `json:"substituted,omitempty"`
	Warning         string `json:"warning,omitempty"`
}

// Generator selects and rewrites canonical text.
type Generator struct {
	mu    sync.RWMutex
	index *subject.Index
	texts Table

	rndMu sync.Mutex
	rnd   *rand.Rand

	policy   SubjectPolicy
	rewriter *rewrite.Rewriter
	cache    *gocache.Cache
	logger   *logging.Logger
}

// New creates a Generator over table.
func New(table Table, opts Options) *Generator {
	logger := logging.OrNop(opts.Logger)
	rw := opts.Rewriter
	if rw == nil {
		rw = rewrite.Default(logger)
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	g := &Generator{
		index:    subject.NewIndex(),
		texts:    make(Table, len(table)),
		rnd:      rnd,
		policy:   opts.Policy,
		rewriter: rw,
		cache:    gocache.New(ttl, 2*ttl),
		logger:   logger,
	}
	for name, texts := range table {
		g.index.Add(name)
		canonical, _ := g.index.Resolve(name)
		g.texts[canonical] = cloneTexts(texts)
	}
	return g
}

// Default creates a Generator over the built-in texts.
func Default(opts Options) (*Generator, error) {
	table, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return New(table, opts), nil
}

// Policy returns the generator's unknown-subject policy.
func (g *Generator) Policy() SubjectPolicy { return g.policy }

// Subjects returns the subjects with canonical text, sorted.
func (g *Generator) Subjects() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.index.Names()
}

// Select returns the content for subj at the tier matching speed.
func (g *Generator) Select(ctx context.Context, subj string, speed level.Speed) (*Adaptive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tier := level.TierFor(speed)
	mode := level.ModeFor(speed)

	// Rendering under the read lock keeps AddSubject from racing a stale
	// cache entry back in.
	g.mu.RLock()
	name, text, substituted, err := g.resolve(subj, tier)
	var rendered string
	if err == nil {
		rendered = g.render(name, tier, mode, text)
	}
	g.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	out := &Adaptive{
		Subject:         name,
		Topic:           name,
		ComplexityLevel: tier.ContentKey(),
		LearningSpeed:   speed.String(),
		Content:         rendered,
	}
	if substituted {
		out.Substituted = true
		out.Warning = fmt.Sprintf("subject %q not found, using %q instead", subj, name)
		g.logger.Warn("subject substituted", "requested", subj, "using", name)
	}
	return out, nil
}

// resolve finds the canonical text for subj, applying the policy when the
// subject is unknown. Callers hold g.mu.
func (g *Generator) resolve(subj string, tier level.Tier) (name, text string, substituted bool, err error) {
	name, ok := g.index.Resolve(subj)
	if !ok {
		if g.policy != PolicySubstitute || g.index.Len() == 0 {
			return "", "", false, &subject.NotFoundError{Subject: subj, Available: g.index.Names()}
		}
		names := g.index.Names()
		g.rndMu.Lock()
		name = names[g.rnd.Intn(len(names))]
		g.rndMu.Unlock()
		substituted = true
	}
	return name, g.texts[name][tier], substituted, nil
}

func (g *Generator) render(name string, tier level.Tier, mode rewrite.Mode, text string) string {
	if text == "" {
		return ""
	}
	key := cacheKey(name, tier, mode)
	if v, found := g.cache.Get(key); found {
		return v.(string)
	}
	out := g.rewriter.Process(text, mode)
	g.cache.Set(key, out, gocache.DefaultExpiration)
	return out
}

// AddSubject registers canonical texts for a subject. The name is stored
// in title case; existing texts for the same subject are replaced.
func (g *Generator) AddSubject(name, basic, intermediate, advanced string) (string, error) {
	display := subject.DisplayName(name)
	if display == "" {
		return "", fmt.Errorf("subject name is required")
	}
	if basic == "" || intermediate == "" || advanced == "" {
		return "", fmt.Errorf("subject %q: text for every tier is required", display)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.index.Resolve(display); ok {
		delete(g.texts, existing)
		g.invalidate(existing)
	}
	g.index.Add(display)
	g.texts[display] = Texts{
		level.TierBasic:        basic,
		level.TierIntermediate: intermediate,
		level.TierAdvanced:     advanced,
	}
	g.invalidate(display)
	g.logger.Info("subject added", "subject", display)
	return display, nil
}

func (g *Generator) invalidate(name string) {
	for _, tier := range level.AllTiers() {
		for _, mode := range []rewrite.Mode{rewrite.ModePassthrough, rewrite.ModeSimplify, rewrite.ModeEnhance} {
			g.cache.Delete(cacheKey(name, tier, mode))
		}
	}
}

func cacheKey(name string, tier level.Tier, mode rewrite.Mode) string {
	return subject.Key(name) + "|" + tier.ContentKey() + "|" + mode.String()
}

func cloneTexts(t Texts) Texts {
	out := make(Texts, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
