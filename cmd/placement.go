package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptlearn/internal/placement"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/ui/components"
)

var placementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Predict a starting level from study metrics",
	Long: `Predict a learner's starting level from their latest exam score, weekly
study hours, attendance and assignment marks. With --subject, also print
recommendations for that level.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var m placement.Metrics
		m.CurrentScore, _ = cmd.Flags().GetFloat64("score")
		m.StudyHours, _ = cmd.Flags().GetFloat64("hours")
		m.Attendance, _ = cmd.Flags().GetFloat64("attendance")
		m.Assignments, _ = cmd.Flags().GetFloat64("assignments")
		subj, _ := cmd.Flags().GetString("subject")

		p, err := placement.Place(nil, m)
		if err != nil {
			return err
		}

		if strings.TrimSpace(subj) == "" {
			return render(cmd, p, func() string {
				return components.Placement(m, p)
			})
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Recommend.Recommend(cmd.Context(), recommend.Request{
			Subject: subj,
			Speed:   p.Speed.String(),
		})
		if err != nil {
			return err
		}
		return render(cmd, map[string]any{"placement": p, "recommendation": res}, func() string {
			return components.Placement(m, p) + "\n\n" + components.Recommendation(res, components.DefaultWidth)
		})
	},
}

func init() {
	f := placementCmd.Flags()
	f.Float64("score", 0, "latest exam score (0-100)")
	f.Float64("hours", 0, "weekly study hours (0-20)")
	f.Float64("attendance", 0, "class attendance percentage (60-100)")
	f.Float64("assignments", 0, "average assignment marks (0-100)")
	f.String("subject", "", "also recommend materials for this subject")
	_ = placementCmd.MarkFlagRequired("score")
	_ = placementCmd.MarkFlagRequired("attendance")
}
