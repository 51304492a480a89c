package headline

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/filesystem"
	"github.com/arthur-debert/headline/pkg/rename"
	"github.com/arthur-debert/headline/pkg/ui/styles"
	"github.com/arthur-debert/headline/pkg/vault"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [vault]",
		Short: "Rename every in-scope note after its first content line",
		Long: `apply walks the vault once and, for each markdown note in scope, derives a
filename-safe title from the first content line and renames the file when the
name differs. Use --dry-run to preview.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			settings, err := config.Load(root)
			if err != nil {
				return err
			}

			coordinator := rename.New(settings,
				vault.NewStorage(filesystem.NewOS(), root), vault.NoEditors{})

			renamed, skipped := 0, 0
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if strings.HasPrefix(d.Name(), ".") && path != root {
						return filepath.SkipDir
					}
					return nil
				}
				if !strings.EqualFold(filepath.Ext(path), ".md") {
					return nil
				}

				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				res, err := coordinator.SyncFilename(vault.NewNote(rel), dryRun)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n",
						styles.GetStyle("Error").Render("error"), rel, err)
					return nil // one bad note must not stop the walk
				}

				if res.Renamed {
					renamed++
					arrow := "->"
					if dryRun {
						arrow = "would ->"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
						styles.GetStyle("Path").Render(rel), arrow, res.Stem+filepath.Ext(rel))
				} else {
					skipped++
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", styles.GetStyle("Muted").
				Render(fmt.Sprintf("%d renamed, %d unchanged", renamed, skipped)))
			return nil
		},
	}
}
