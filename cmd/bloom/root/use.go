package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"skillbloom/internal/ui"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <roadmap>",
		Short: "Switch which roadmap you are tending",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("a roadmap id or title is required")
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

			rm, err := resolveRoadmap(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if err := svc.SetActive(ctx, rm.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSprout+" Now tending: ")+rm.Title)
			return nil
		},
	}

	return cmd
}
