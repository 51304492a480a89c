// Package headline assembles the CLI commands.
package headline

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/headline/internal/version"
	"github.com/arthur-debert/headline/pkg/logging"
)

var (
	verbosity int
	dryRun    bool
)

// NewRootCmd builds the headline root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "headline",
		Short: "Keep note filenames in sync with their first line",
		Long: `headline keeps a markdown note's filename synchronized with the first
meaningful line of its content. Forbidden filesystem characters are
substituted reversibly, markup is stripped, and the original wording can be
mirrored into a frontmatter alias.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newTitleCmd())
	rootCmd.AddCommand(newGenconfigCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("headline version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
