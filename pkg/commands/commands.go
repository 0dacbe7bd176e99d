package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/lineup/pkg/commands/options"
)

var (
	gopts = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lineup",
		Short: base.Wrap80("Plan a festival day: favorite performances and see which of them clash."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			gopts.SetupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddGlobalArgs(cmd, gopts)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSchedule(topLevel)
	addEvents(topLevel)
	addFavorite(topLevel)
	addSettings(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
