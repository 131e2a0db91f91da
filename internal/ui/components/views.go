package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/placement"
	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/store"
	"github.com/abhisek/adaptlearn/internal/ui/theme"
)

// DefaultWidth is the render width used by the CLI.
const DefaultWidth = 72

func speedBadge(speed string) string {
	s := level.SpeedOrDefault(speed)
	return theme.Badge(s.String(), theme.SpeedColor(s))
}

func wrap(text string, width int) string {
	return theme.Body.Width(width).Render(text)
}

// Recommendation renders a recommendation result.
func Recommendation(res *recommend.Result, width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(res.Subject))
	b.WriteString("  " + speedBadge(res.LearningSpeed))
	b.WriteString("  " + theme.Subtitle.Render("level: "+res.StudentLevel))
	b.WriteString("\n\n")

	if len(res.RecommendedMaterials) == 0 {
		b.WriteString(theme.Hint.Render("All materials at this level are completed."))
		b.WriteString("\n")
	}
	for i, m := range res.RecommendedMaterials {
		fmt.Fprintf(&b, "%s %s\n", theme.Subtitle.Render(fmt.Sprintf("%d.", i+1)), theme.Body.Bold(true).Render(m.Title))
		if m.Description != "" {
			b.WriteString("   " + theme.Subtitle.Render(m.Description) + "\n")
		}
		b.WriteString("   " + theme.Link.Render(m.URL) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(AdaptiveBody(res.AdaptiveContent.Topic, res.AdaptiveContent.ComplexityLevel,
		res.AdaptiveContent.Content, res.AdaptiveContent.Warning, width))

	return theme.Card.Width(width).Render(b.String())
}

// Content renders generated adaptive content.
func Content(a *content.Adaptive, width int) string {
	header := theme.Title.Render(a.Subject) + "  " + speedBadge(a.LearningSpeed)
	body := AdaptiveBody(a.Topic, a.ComplexityLevel, a.Content, a.Warning, width)
	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

// AdaptiveBody renders the adaptive content section shared by views.
func AdaptiveBody(topic, complexity, text, warning string, width int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s (%s level)", topic, complexity)))
	b.WriteString("\n")
	b.WriteString(wrap(text, width-4))
	if warning != "" {
		b.WriteString("\n" + theme.Warn.Render("! "+warning))
	}
	return b.String()
}

// Progress renders one progress record with its inferred speed.
func Progress(rec *store.ProgressRecord, width int) string {
	speed := progress.InferSpeed(rec)

	var b strings.Builder
	b.WriteString(theme.Title.Render(rec.Subject))
	b.WriteString("  " + theme.Badge(speed.String(), theme.SpeedColor(speed)))
	b.WriteString("  " + theme.Subtitle.Render("learner: "+rec.LearnerID))
	b.WriteString("\n")

	if rec.IsEmpty() {
		b.WriteString(theme.Hint.Render("No progress recorded yet."))
		return b.String()
	}

	b.WriteString(NewGauge("Completion", rec.CompletionRate, true, width-4).WithMark(progress.FastMinRate).View())
	b.WriteString("\n")
	b.WriteString(NewGauge("Score     ", rec.AverageScore/100, true, width-4).WithMark(progress.FastMinScore/100).View())
	if len(rec.CompletedMaterials) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Completed:"))
		for _, m := range rec.CompletedMaterials {
			b.WriteString("\n  " + theme.Link.Render(m))
		}
	}
	return b.String()
}

// ProgressList renders all of a learner's records.
func ProgressList(learnerID string, recs []store.ProgressRecord, width int) string {
	if len(recs) == 0 {
		return theme.Hint.Render(fmt.Sprintf("No progress recorded for %s.", learnerID))
	}
	parts := make([]string, 0, len(recs))
	for i := range recs {
		parts = append(parts, theme.Card.Width(width).Render(Progress(&recs[i], width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Subjects renders a bulleted subject list.
func Subjects(names []string) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Subjects"))
	for _, n := range names {
		b.WriteString("\n  • " + theme.Body.Render(n))
	}
	return b.String()
}

// Placement renders a placement prediction.
func Placement(m placement.Metrics, p *placement.Placement) string {
	rows := []string{
		theme.Title.Render("Placement"),
		theme.Subtitle.Render(fmt.Sprintf("Latest exam:      %.1f", m.CurrentScore)),
		theme.Subtitle.Render(fmt.Sprintf("Study hours/week: %.1f", m.StudyHours)),
		theme.Subtitle.Render(fmt.Sprintf("Attendance:       %.1f%%", m.Attendance)),
		theme.Subtitle.Render(fmt.Sprintf("Assignments:      %.1f", m.Assignments)),
		"",
		theme.Body.Render("Predicted level: ") + theme.Badge(p.Tier.DisplayName(), theme.SpeedColor(p.Speed)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
