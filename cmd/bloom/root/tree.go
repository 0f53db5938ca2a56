package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillbloom/internal/growth"
	"skillbloom/internal/ui"
)

func newTreeCmd() *cobra.Command {
	var roadmapRef string
	var svgPath string
	var pngPath string
	var pngWidth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the roadmap's plant",
		Long:  "Renders the active roadmap's plant at its current growth stage. Without flags a summary is printed; --svg and --png write image files.",
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
			info, err := svc.SceneFor(ctx, rm.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			desc := info.Descriptor
			fmt.Fprintln(out, ui.Heading(desc.Emoji, rm.Title))
			fmt.Fprintln(out, ui.LabelValue("Species", fmt.Sprintf("%s (%s, %s family)", desc.Name, desc.Variant, desc.Family)))
			fmt.Fprintln(out, ui.LabelValue("Stage", fmt.Sprintf("%d of %d %s", info.Stage.Index+1, growth.StageCount, ui.StageIcon(info.Stage.Index))))
			fmt.Fprintf(out, "%s %s %.0f%%\n", ui.Key.Render("Growth:"), ui.ProgressBar(info.Ratio, 24), info.Ratio)
			if info.Stage.Bloom {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconBloom+" In full bloom."))
			}

			if svgPath != "" {
				if err := os.WriteFile(svgPath, []byte(growth.RenderSVG(info.Scene)), 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
				fmt.Fprintln(out, ui.LabelValue("SVG", svgPath))
			}
			if pngPath != "" {
				if err := growth.RenderPNG(info.Scene, pngPath, pngWidth); err != nil {
					return fmt.Errorf("write png: %w", err)
				}
				fmt.Fprintln(out, ui.LabelValue("PNG", pngPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&roadmapRef, "roadmap", "r", "", "Target roadmap (default: the active one)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the scene as SVG to this path")
	cmd.Flags().StringVar(&pngPath, "png", "", "Write the scene as PNG to this path")
	cmd.Flags().IntVar(&pngWidth, "width", 800, "PNG width in pixels")

	return cmd
}
