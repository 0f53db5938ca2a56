package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skillbloom/internal/growth"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every plant in the garden",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := svc.RoadmapRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			activeID, err := svc.UserRepo().ActiveRoadmapID(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGarden, "Garden"))
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(empty — `bloom grow <skill>` plants your first roadmap)"))
				return nil
			}

			for _, rm := range all {
				marker := "  "
				if rm.ID == activeID {
					marker = ui.Gold.Render("* ")
				}
				ratio := roadmap.CompletionRatio(rm.Tasks)
				icon := ui.StageIcon(growth.StageIndex(ratio))
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s %s %s\n",
					marker, icon, rm.Title,
					ui.ProgressBar(ratio, 16),
					ui.Muted.Render(fmt.Sprintf("%d/%d  %s", roadmap.CompletedCount(rm.Tasks), len(rm.Tasks), rm.ID[:8])))
			}
			return nil
		},
	}

	return cmd
}
