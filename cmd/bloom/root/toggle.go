package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skillbloom/internal/growth"
	"skillbloom/internal/ui"
)

func newToggleCmd() *cobra.Command {
	var roadmapRef string

	cmd := &cobra.Command{
		Use:     "done <step>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a step on the active roadmap (1-based)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("a step number is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n < 1 {
				return errors.New("step must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rm, err := resolveRoadmap(ctx, svc, roadmapRef)
			if err != nil {
				return err
			}

			n, _ := strconv.Atoi(args[0])
			if n > len(rm.Tasks) {
				return fmt.Errorf("roadmap %q has only %d steps", rm.Title, len(rm.Tasks))
			}
			task := rm.Tasks[n-1]

			res, err := svc.ToggleTask(ctx, rm.ID, task.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.NowCompleted {
				fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Done:"), res.Task.Label)
				if r := res.Reward; r != nil {
					xp := fmt.Sprintf("+%d XP", r.EarnedXP)
					if r.StreakBonus > 0 {
						xp += fmt.Sprintf(" (%d base +%d streak)", r.EarnedXP-r.StreakBonus, r.StreakBonus)
					}
					fmt.Fprintf(out, "%s %s  %s %d day(s)\n", ui.Gold.Render(ui.IconBolt), xp, ui.IconFlame, r.StreakDays)
					if r.LeveledUp {
						fmt.Fprintf(out, "%s %s You reached level %d!\n", ui.IconTrophy, ui.BadgeLevelUp, r.NewLevel)
					}
				}
			} else {
				fmt.Fprintf(out, "%s %s\n", ui.Warn.Render("Unchecked:"), res.Task.Label)
			}
			fmt.Fprintf(out, "%s %s %.0f%%\n", ui.StageIcon(growth.StageIndex(res.Ratio)), ui.ProgressBar(res.Ratio, 20), res.Ratio)
			return nil
		},
	}

	cmd.Flags().StringVarP(&roadmapRef, "roadmap", "r", "", "Target roadmap (default: the active one)")

	return cmd
}
