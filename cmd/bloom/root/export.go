package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillbloom/internal/ui"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [roadmap]",
		Short: "Export a roadmap as a shareable JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			rm, err := resolveRoadmap(ctx, svc, ref)
			if err != nil {
				return err
			}

			data, err := svc.ExportRoadmap(ctx, rm.ID)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScroll+" Exported ")+rm.Title+ui.Muted.Render(" → "+outPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}
