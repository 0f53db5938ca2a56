package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillbloom/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "bloom",
	Short:         "SkillBloom — grow a tree by learning a skill",
	Long:          "SkillBloom turns learning roadmaps into a garden: every completed task grows your plant, streaks earn bonus XP, and each skill sprouts a different species.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newGrowCmd(),
		newListCmd(),
		newUseCmd(),
		newToggleCmd(),
		newStatusCmd(),
		newTreeCmd(),
		newExportCmd(),
		newImportCmd(),
		newDeleteCmd(),
		newServeCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
