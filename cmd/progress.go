package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/store"
	"github.com/abhisek/adaptlearn/internal/ui/components"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect and record learner progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <learner> <subject>",
	Short: "Show a learner's progress in one subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rec := a.Progress.Get(cmd.Context(), args[0], args[1])
		return render(cmd, withSpeed(rec), func() string {
			return components.Progress(rec, components.DefaultWidth)
		})
	},
}

var progressUpdateCmd = &cobra.Command{
	Use:   "update <learner> <subject>",
	Short: "Record a completed material and its score",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetFloat64("score")
		material, _ := cmd.Flags().GetString("material")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Progress.Record(cmd.Context(), store.ProgressUpdate{
			LearnerID:  args[0],
			Subject:    args[1],
			Score:      score,
			MaterialID: material,
		})
		if err != nil {
			return err
		}
		return render(cmd, withSpeed(rec), func() string {
			return components.Progress(rec, components.DefaultWidth)
		})
	},
}

var progressListCmd = &cobra.Command{
	Use:   "list <learner>",
	Short: "List a learner's progress across subjects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.Progress.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := make([]progressView, 0, len(recs))
		for i := range recs {
			out = append(out, withSpeed(&recs[i]))
		}
		return render(cmd, out, func() string {
			return components.ProgressList(args[0], recs, components.DefaultWidth)
		})
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed <learner> <subject>",
	Short: "Print the learning speed inferred from recorded progress",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		speed := a.Progress.Speed(cmd.Context(), args[0], args[1])
		return render(cmd, map[string]string{
			"learner_id":     args[0],
			"subject":        args[1],
			"learning_speed": speed.String(),
		}, speed.String)
	},
}

type progressView struct {
	*store.ProgressRecord
	LearningSpeed string `json:"learning_speed"`
}

func withSpeed(rec *store.ProgressRecord) progressView {
	return progressView{
		ProgressRecord: rec,
		LearningSpeed:  progress.InferSpeed(rec).String(),
	}
}

func init() {
	progressUpdateCmd.Flags().Float64("score", 0, "score for the completed material (0-100)")
	progressUpdateCmd.Flags().String("material", "", "completed material URL or id")
	_ = progressUpdateCmd.MarkFlagRequired("score")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressUpdateCmd)
	progressCmd.AddCommand(progressListCmd)
}
