package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/rewrite"
	"github.com/abhisek/adaptlearn/internal/ui/components"
)

var contentCmd = &cobra.Command{
	Use:   "content <subject>",
	Short: "Show adaptive content for a subject at a learning speed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subj, err := requireSubjectArg(args[0])
		if err != nil {
			return err
		}
		speedFlag, _ := cmd.Flags().GetString("speed")
		speed, ok := level.ParseSpeed(speedFlag)
		if !ok && speedFlag != "" {
			logger.Warn("unknown learning speed, using medium", "speed", speedFlag)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Content.Select(cmd.Context(), subj, speed)
		if err != nil {
			return err
		}
		return render(cmd, out, func() string {
			return components.Content(out, components.DefaultWidth)
		})
	},
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [text]",
	Short: "Rewrite arbitrary text for a learning speed (reads stdin without an argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speedFlag, _ := cmd.Flags().GetString("speed")
		speed := level.SpeedOrDefault(speedFlag)

		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = strings.TrimSpace(string(raw))
		}

		out := rewrite.Default(logger).Process(text, level.ModeFor(speed))
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	contentCmd.Flags().String("speed", "medium", "learning speed: slow, medium or fast")
	rewriteCmd.Flags().String("speed", "medium", "learning speed: slow, medium or fast")
}
