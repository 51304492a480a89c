package headline

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/headline/pkg/config"
)

func newGenconfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "genconfig [vault]",
		Short: "Print the effective configuration as TOML",
		Long: `genconfig prints the configuration a vault resolves to: built-in defaults
merged with the vault's .headline.toml. With --defaults only the built-ins
are printed, ready to paste into a new vault config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigContent())
				return nil
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			settings, err := config.Load(root)
			if err != nil {
				return err
			}

			out, err := toml.Marshal(settings)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "Print the built-in defaults instead of the merged config")
	return cmd
}
