package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/runner/favorite"
)

func addFavorite(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	io := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "favorite [id...]",
		Aliases: []string{"fav", "f"},
		Short:   "Add or remove performances from your favorites.",
		Long: base.Wrap80(`Toggle the favorite flag of each performance ID. IDs are printed by
"lineup events -k". Favorites that are no longer on the page can still be
removed by ID.`),
		Example: `
lineup favorite Okean_Elzy_21_00_Main_Stage
lineup favorite -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oo.Validate(); err != nil {
				return err
			}
			if len(args) == 0 && !io.Interactive {
				return errors.New("nothing to toggle: pass an id or use --interactive")
			}
			ctx := cmd.Context()
			s, err := openSession(ctx, nil)
			if err != nil {
				return oo.HandleError(err)
			}
			// Picking needs the page; toggling by ID only needs it when the
			// event is not already a favorite.
			if err := s.openPage(po, io.Interactive); err != nil {
				return oo.HandleError(err)
			}
			if err := s.scan(ctx, po); err != nil {
				return oo.HandleError(err)
			}

			r := &favorite.Favorite{
				Helper:      s.helper,
				IDs:         args,
				Interactive: io.Interactive,
				In:          os.Stdin,
				Out:         cmd.OutOrStdout(),
				Format:      oo.Format(),
			}
			return oo.HandleError(r.Do(ctx))
		},
	}

	options.AddPageArgs(cmd, po)
	options.InteractiveArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
