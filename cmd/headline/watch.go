package headline

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/filesystem"
	"github.com/arthur-debert/headline/pkg/rename"
	"github.com/arthur-debert/headline/pkg/ui/styles"
	"github.com/arthur-debert/headline/pkg/vault"
	"github.com/arthur-debert/headline/pkg/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [vault]",
		Short: "Watch a vault and write titles into newly created notes",
		Long: `watch runs until interrupted. Every markdown note created under the vault
gets the full pipeline: scope check, frontmatter inspection, title derived
from the filename, and alias mirroring when configured.`,
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
				vault.NewStorage(filesystem.NewOS(), root), vault.NoEditors{},
				rename.WithNotifier(func(msg string) {
					fmt.Fprintln(cmd.ErrOrStderr(), styles.GetStyle("Muted").Render(msg))
				}))

			watcher, err := watch.New(root, settings.Timing.TemplateWait())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				for ev := range watcher.Events() {
					// Events for a note still mid-pipeline (the template
					// grace period spans seconds) are duplicates; drop them.
					if coordinator.InFlight(ev.Note) {
						continue
					}
					go func(ev watch.Event) {
						res := coordinator.OnNoteCreated(ev.Note, nil)
						switch res.Outcome {
						case rename.OutcomeInserted:
							fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
								styles.GetStyle("Success").Render("titled"),
								styles.GetStyle("Path").Render(ev.Note.Path))
						default:
							fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
								styles.GetStyle("Muted").Render("skipped"),
								styles.GetStyle("Path").Render(ev.Note.Path), res.Outcome)
						}
					}(ev)
				}
			}()

			return watcher.Run(ctx)
		},
	}
}
