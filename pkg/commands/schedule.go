package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	so := &options.ScheduleOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	printable := false

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"s"},
		Short:   "Show your schedule for the day with conflicts highlighted.",
		Example: `
lineup schedule --page ./friday.html
lineup schedule -t 20 --mode chain
lineup schedule --print
lineup schedule --json
`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oo.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openSession(ctx, so)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.openPage(po, true); err != nil {
				return oo.HandleError(err)
			}
			if err := s.scan(ctx, po); err != nil {
				return oo.HandleError(err)
			}

			r := &schedule.Schedule{
				Helper: s.helper,
				Out:    cmd.OutOrStdout(),
				Format: oo.Format(),
				Print:  printable,
				ShowID: io.ShowID,
			}
			return oo.HandleError(r.Do(ctx))
		},
	}

	options.AddPageArgs(cmd, po)
	options.AddScheduleArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&printable, "print", false, "Render the printable card layout.")

	topLevel.AddCommand(cmd)
}
