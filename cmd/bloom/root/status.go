package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skillbloom/internal/engine"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show XP, level, streak and the active roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.GamificationState(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lvl := state.Level()
			nextAt := engine.XPForLevel(lvl + 1)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Gardener Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", lvl))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next level at %d, %d to go)", state.TotalXP, nextAt, engine.XPToNextLevel(state))))
			fmt.Fprintf(out, "%s %s %.0f%%\n", ui.Key.Render("Progress:"), ui.ProgressBar(engine.ProgressWithinLevel(state), 24), engine.ProgressWithinLevel(state))
			if state.StreakDays > 0 {
				fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconFlame, state.StreakDays)))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Streak", ui.Muted.Render("none — complete a task today to start one")))
			}
			fmt.Fprintln(out, ui.LabelValue("Tasks completed", state.TotalCompleted))
			fmt.Fprintln(out, "")

			rm, err := svc.ActiveRoadmap(ctx)
			if err != nil {
				return err
			}
			if rm == nil {
				fmt.Fprintln(out, ui.Muted.Render("No active roadmap. `bloom grow <skill>` plants one."))
				return nil
			}

			ratio := roadmap.CompletionRatio(rm.Tasks)
			fmt.Fprintln(out, ui.H2.Render(ui.IconGarden+" Tending: "+rm.Title))
			fmt.Fprintf(out, "%s %.0f%% (%d/%d)\n", ui.ProgressBar(ratio, 24), ratio, roadmap.CompletedCount(rm.Tasks), len(rm.Tasks))
			if i := roadmap.NextActive(rm.Tasks); i >= 0 {
				fmt.Fprintln(out, ui.LabelValue("Next step", fmt.Sprintf("%d. %s", i+1, rm.Tasks[i].Label)))
			} else {
				fmt.Fprintln(out, ui.Good.Render(ui.IconBloom+" Fully grown!"))
			}
			return nil
		},
	}

	return cmd
}
