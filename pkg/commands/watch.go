package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/runner/schedule"
	"tableflip.dev/lineup/pkg/runner/watch"
)

const clearScreen = "\x1b[H\x1b[2J"

func addWatch(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	so := &options.ScheduleOptions{}
	io := &options.IDOptions{}
	refresh := ""
	noClear := false

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the schedule on screen and redraw it when favorites or the page change.",
		Example: `
lineup watch
lineup watch --refresh "@every 1m"
lineup watch --refresh ""
`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, so)
			if err != nil {
				return err
			}
			if err := s.openPage(po, true); err != nil {
				return err
			}
			if err := s.scan(ctx, po); err != nil {
				return err
			}
			if !cmd.Flags().Changed("refresh") {
				refresh = s.cfg.Refresh
			}

			out := cmd.OutOrStdout()
			view := &schedule.Schedule{Helper: s.helper, Out: out, ShowID: io.ShowID}
			w := &watch.Watch{
				Helper:  s.helper,
				KV:      s.kv,
				Source:  s.source,
				Refresh: refresh,
				Render: func(ctx context.Context) error {
					if !noClear {
						_, _ = fmt.Fprint(out, clearScreen)
					}
					return view.Do(ctx)
				},
			}
			return w.Do(ctx)
		},
	}

	options.AddPageArgs(cmd, po)
	options.AddScheduleArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&refresh, "refresh", "",
		`Cron spec for re-scanning the page, e.g. "@every 5m". Defaults to the configured refresh. Empty disables re-scanning.`)
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Append each redraw instead of clearing the screen.")

	topLevel.AddCommand(cmd)
}
