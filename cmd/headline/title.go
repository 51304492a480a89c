package headline

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/headline/pkg/codec"
	"github.com/arthur-debert/headline/pkg/config"
)

func newTitleCmd() *cobra.Command {
	titleCmd := &cobra.Command{
		Use:   "title",
		Short: "Convert between titles and filename-safe stems",
	}

	titleCmd.AddCommand(&cobra.Command{
		Use:   "encode <title>",
		Short: "Turn a title into a filename-safe stem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(".")
			if err != nil {
				return err
			}
			c := codec.New(settings.Replacements)
			fmt.Fprintln(cmd.OutOrStdout(), c.Encode(strings.Join(args, " ")))
			return nil
		},
	})

	titleCmd.AddCommand(&cobra.Command{
		Use:   "decode <stem>",
		Short: "Reconstruct a title from a filename stem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(".")
			if err != nil {
				return err
			}
			c := codec.New(settings.Replacements)
			fmt.Fprintln(cmd.OutOrStdout(), c.Decode(strings.Join(args, " ")))
			return nil
		},
	})

	return titleCmd
}
