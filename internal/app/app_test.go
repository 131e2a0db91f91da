package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptlearn/internal/config"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/recommend"
)

func TestNewSQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := New(Options{Config: cfg, DBPath: filepath.Join(t.TempDir(), "progress.db")})
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	ok, err := a.Progress.Update(ctx, "S1", "Science", 95, "https://example.com/physics")
	require.NoError(t, err)
	assert.True(t, ok)

	res, err := a.Recommend.Recommend(ctx, recommend.Request{Subject: "Science", LearnerID: "S1", Speed: "medium"})
	require.NoError(t, err)
	require.Len(t, res.RecommendedMaterials, 1)
	assert.Equal(t, "Chemistry Basics", res.RecommendedMaterials[0].Title)
}

func TestNewCSV(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = config.BackendCSV
	cfg.Store.CSV = filepath.Join(t.TempDir(), "student_progress.csv")

	a, err := New(Options{Config: cfg})
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	_, err = a.Progress.Update(ctx, "S1", "English", 40, "m1")
	require.NoError(t, err)
	assert.Equal(t, "slow", a.Progress.Speed(ctx, "S1", "English").String())
}

func TestNewRequiresDBPath(t *testing.T) {
	_, err := New(Options{Config: config.DefaultConfig()})
	assert.Error(t, err)
}

func TestNewSubstitutePolicyWithSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = config.BackendCSV
	cfg.Store.CSV = filepath.Join(t.TempDir(), "p.csv")
	cfg.Content.SubjectPolicy = "substitute"
	cfg.Content.Seed = 3

	a, err := New(Options{Config: cfg})
	require.NoError(t, err)

	out, err := a.Content.Select(context.Background(), "Astronomy", level.SpeedMedium)
	require.NoError(t, err)
	assert.True(t, out.Substituted)
}
