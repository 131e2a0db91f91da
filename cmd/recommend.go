package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/ui/components"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <subject>",
	Short: "Recommend study materials and adaptive content for a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, _ := cmd.Flags().GetString("speed")
		learner, _ := cmd.Flags().GetString("learner")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Recommend.Recommend(cmd.Context(), recommend.Request{
			Subject:   args[0],
			Speed:     speed,
			LearnerID: learner,
		})
		if err != nil {
			return err
		}
		return render(cmd, res, func() string {
			return components.Recommendation(res, components.DefaultWidth)
		})
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <subject>...",
	Short: "Recommend for several subjects at once",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Recommend.BatchRecommend(cmd.Context(), args, learner)
		if err != nil {
			return err
		}
		return render(cmd, results, func() string {
			keys := make([]string, 0, len(results))
			for k := range results {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			views := make([]string, 0, len(keys))
			for _, k := range keys {
				views = append(views, components.Recommendation(results[k], components.DefaultWidth))
			}
			return strings.Join(views, "\n")
		})
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List available subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		names := a.Recommend.Subjects()
		return render(cmd, names, func() string {
			return components.Subjects(names)
		})
	},
}

func init() {
	recommendCmd.Flags().String("speed", "", "learning speed: slow, medium or fast (default: inferred)")
	recommendCmd.Flags().String("learner", "", "learner id for progress-based inference and filtering")
	batchCmd.Flags().String("learner", "", "learner id for progress-based inference and filtering")
}

// requireSubjectArg trims a subject argument and rejects blanks.
func requireSubjectArg(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("subject must not be blank")
	}
	return s, nil
}
