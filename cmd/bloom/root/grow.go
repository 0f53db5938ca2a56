package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"skillbloom/internal/archetype"
	"skillbloom/internal/ui"
)

func newGrowCmd() *cobra.Command {
	var mock bool

	cmd := &cobra.Command{
		Use:   "grow <skill>",
		Short: "Generate a roadmap and plant it in your garden",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("a skill to learn is required, e.g. `bloom grow \"rust\"`")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prompt := strings.Join(args, " ")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gen, usingMock := newGenerator(cfg, mock)
			if usingMock {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" No API key configured — using the built-in sample roadmap."))
			}

			payload, err := gen.Generate(ctx, prompt)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rm, err := svc.CreateFromGeneration(ctx, payload)
			if err != nil {
				return err
			}

			desc := archetype.Classify(rm.Title)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(desc.Emoji, rm.Title))
			if rm.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(rm.Description))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Species", fmt.Sprintf("%s (%s)", desc.Name, desc.Variant)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Steps", len(rm.Tasks)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", rm.ID))
			fmt.Fprintln(cmd.OutOrStdout(), "")
			for i, t := range rm.Tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, t.Label)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSeed+" Planted. `bloom done 1` completes the first step."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&mock, "mock", "m", false, "Use the built-in sample roadmap instead of the API")

	return cmd
}
