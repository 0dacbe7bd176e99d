package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/runner/events"
)

func addEvents(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	stages := false

	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"ls"},
		Short:   "List the performances on the schedule page.",
		Example: `
lineup events
lineup events --favorites
lineup events -s "Main Stage" -s Forest -k
lineup events --stages
`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oo.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openSession(ctx, nil)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.openPage(po, true); err != nil {
				return oo.HandleError(err)
			}
			if err := s.scan(ctx, po); err != nil {
				return oo.HandleError(err)
			}
			s.applyFilter(fo)

			r := &events.Events{
				Helper: s.helper,
				Out:    cmd.OutOrStdout(),
				Format: oo.Format(),
				ShowID: io.ShowID,
				Stages: stages,
			}
			return oo.HandleError(r.Do(ctx))
		},
	}

	options.AddPageArgs(cmd, po)
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&stages, "stages", false, "List the stage names instead of the performances.")

	topLevel.AddCommand(cmd)
}
