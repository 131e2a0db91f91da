package content

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/subject"
)

func newTestGenerator(t *testing.T, opts Options) *Generator {
	t.Helper()
	g, err := Default(opts)
	require.NoError(t, err)
	return g
}

func TestSelectTierBySpeed(t *testing.T) {
	g := newTestGenerator(t, Options{})

	tests := []struct {
		speed level.Speed
		tier  string
		text  string
	}{
		{level.SpeedSlow, "basic", "Math is about numbers and shapes. You can add, subtract, multiply and divide numbers."},
		{level.SpeedMedium, "intermediate", "Mathematics includes algebra, geometry, and calculus. It helps solve real-world problems."},
		{level.SpeedFast, "advanced", "Mathematics is the abstract science of number, quantity, and space, with rigorous proofs and theoretical frameworks."},
	}
	for _, tt := range tests {
		t.Run(tt.speed.String(), func(t *testing.T) {
			got, err := g.Select(context.Background(), "mathematics", tt.speed)
			require.NoError(t, err)
			assert.Equal(t, "Mathematics", got.Subject)
			assert.Equal(t, "Mathematics", got.Topic)
			assert.Equal(t, tt.tier, got.ComplexityLevel)
			assert.Equal(t, tt.speed.String(), got.LearningSpeed)
			assert.Equal(t, tt.text, got.Content)
			assert.False(t, got.Substituted)
			assert.Empty(t, got.Warning)
		})
	}
}

func TestSelectStrictUnknownSubject(t *testing.T) {
	g := newTestGenerator(t, Options{Policy: PolicyStrict})

	_, err := g.Select(context.Background(), "Astrology", level.SpeedMedium)
	require.Error(t, err)
	assert.True(t, errors.Is(err, subject.ErrNotFound))

	var nf *subject.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Astrology", nf.Subject)
	assert.Equal(t, []string{"English", "Mathematics", "Science"}, nf.Available)
}

func TestSelectSubstituteUnknownSubject(t *testing.T) {
	g := newTestGenerator(t, Options{
		Policy: PolicySubstitute,
		Rand:   rand.New(rand.NewSource(7)),
	})

	got, err := g.Select(context.Background(), "Astrology", level.SpeedSlow)
	require.NoError(t, err)
	assert.True(t, got.Substituted)
	assert.Contains(t, got.Warning, "Astrology")
	assert.Contains(t, g.Subjects(), got.Subject)
	assert.Equal(t, "basic", got.ComplexityLevel)
	assert.NotEmpty(t, got.Content)
}

func TestSelectSubstituteIsDeterministicForSeed(t *testing.T) {
	pick := func() string {
		g := newTestGenerator(t, Options{
			Policy: PolicySubstitute,
			Rand:   rand.New(rand.NewSource(42)),
		})
		got, err := g.Select(context.Background(), "Astrology", level.SpeedMedium)
		require.NoError(t, err)
		return got.Subject
	}
	assert.Equal(t, pick(), pick())
}

func TestSelectCanceledContext(t *testing.T) {
	g := newTestGenerator(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Select(ctx, "Science", level.SpeedFast)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddSubjectRewritesBySpeed(t *testing.T) {
	g := newTestGenerator(t, Options{})

	name, err := g.AddSubject("botany",
		"Photosynthesis uses chlorophyll.",
		"Plants grow.",
		"Green plants need sunlight.")
	require.NoError(t, err)
	assert.Equal(t, "Botany", name)
	assert.Contains(t, g.Subjects(), "Botany")

	tests := []struct {
		speed level.Speed
		want  string
	}{
		{level.SpeedSlow, "Plant food-making process uses green part."},
		{level.SpeedMedium, "Plants grow."},
		{level.SpeedFast, "Green photosynthetic organisms need electromagnetic radiation."},
	}
	for _, tt := range tests {
		got, err := g.Select(context.Background(), "BOTANY", tt.speed)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Content, tt.speed.String())
	}
}

func TestAddSubjectReplacesCachedContent(t *testing.T) {
	g := newTestGenerator(t, Options{})
	ctx := context.Background()

	_, err := g.AddSubject("art", "Old basic.", "Old middle.", "Old advanced.")
	require.NoError(t, err)
	first, err := g.Select(ctx, "art", level.SpeedMedium)
	require.NoError(t, err)
	assert.Equal(t, "Old middle.", first.Content)

	_, err = g.AddSubject("ART", "New basic.", "New middle.", "New advanced.")
	require.NoError(t, err)
	second, err := g.Select(ctx, "art", level.SpeedMedium)
	require.NoError(t, err)
	assert.Equal(t, "New middle.", second.Content)
}

func TestAddSubjectValidation(t *testing.T) {
	g := newTestGenerator(t, Options{})

	_, err := g.AddSubject("   ", "a", "b", "c")
	assert.Error(t, err)

	_, err = g.AddSubject("music", "a", "", "c")
	assert.Error(t, err)
	assert.NotContains(t, g.Subjects(), "Music")
}

func TestSelectConcurrent(t *testing.T) {
	g := newTestGenerator(t, Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			speed := level.AllSpeeds()[i%3]
			got, err := g.Select(ctx, "science", speed)
			assert.NoError(t, err)
			assert.Equal(t, level.TierFor(speed).ContentKey(), got.ComplexityLevel)
		}(i)
	}
	wg.Wait()
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SubjectPolicy
		wantErr bool
	}{
		{"", PolicyStrict, false},
		{"strict", PolicyStrict, false},
		{" Substitute ", PolicySubstitute, false},
		{"random", PolicyStrict, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseTableRequiresAllTiers(t *testing.T) {
	raw := []byte(`
subjects:
  - name: Art
    texts:
      basic: Art is making things.
`)
	_, err := ParseTable("art.yaml", raw)
	assert.Error(t, err)
}
