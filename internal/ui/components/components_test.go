package components

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptlearn/internal/catalog"
	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/placement"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/store"
)

func TestGaugeFill(t *testing.T) {
	tests := []struct {
		percent     float64
		full, empty int
	}{
		{0, 0, 20},
		{0.5, 10, 10},
		{1, 20, 0},
		{1.7, 20, 0},
		{-0.2, 0, 20},
	}
	for _, tt := range tests {
		view := NewGauge("", tt.percent, false, 20).View()
		assert.Equal(t, tt.full, strings.Count(view, "█"), "percent %v", tt.percent)
		assert.Equal(t, tt.empty, strings.Count(view, "░"), "percent %v", tt.percent)
	}
}

func TestGaugeMinimumWidth(t *testing.T) {
	view := NewGauge("A very long label", 1, true, 5).View()
	assert.Equal(t, 4, strings.Count(view, "█"))
	assert.Contains(t, view, "100%")
}

func TestGaugeMark(t *testing.T) {
	view := NewGauge("", 0.5, false, 20).WithMark(0.8).View()
	assert.Equal(t, 1, strings.Count(view, "┃"))
	assert.Equal(t, 10, strings.Count(view, "█"))
	assert.Equal(t, 9, strings.Count(view, "░"))

	view = NewGauge("", 0.5, false, 20).WithMark(1).View()
	assert.Zero(t, strings.Count(view, "┃"))
}

func TestRecommendationView(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	gen, err := content.Default(content.Options{})
	require.NoError(t, err)
	svc := recommend.NewService(cat, gen, nil, nil)

	res, err := svc.Recommend(context.Background(), recommend.Request{Subject: "Mathematics", Speed: "slow"})
	require.NoError(t, err)

	view := Recommendation(res, 100)
	assert.Contains(t, view, "Mathematics")
	assert.Contains(t, view, "slow")
	assert.Contains(t, view, "Basic Arithmetic")
	assert.Contains(t, view, "basic level")
}

func TestProgressViewEmpty(t *testing.T) {
	view := Progress(store.EmptyProgress("S1", "Science"), DefaultWidth)
	assert.Contains(t, view, "No progress recorded yet.")
	assert.Contains(t, view, "medium")
}

func TestProgressListEmpty(t *testing.T) {
	assert.Contains(t, ProgressList("S9", nil, DefaultWidth), "No progress recorded for S9.")
}

func TestPlacementView(t *testing.T) {
	m := placement.Metrics{CurrentScore: 55, StudyHours: 6, Attendance: 90, Assignments: 70}
	p, err := placement.Place(nil, m)
	require.NoError(t, err)
	assert.Contains(t, Placement(m, p), "Intermediate")
}
