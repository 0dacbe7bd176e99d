package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/runner/settings"
)

func addSettings(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	run := func(cmd *cobra.Command, r *settings.Settings) error {
		if err := oo.Validate(); err != nil {
			return err
		}
		ctx := cmd.Context()
		s, err := openSession(ctx, nil)
		if err != nil {
			return oo.HandleError(err)
		}
		r.KV = s.kv
		r.Helper = s.helper
		r.In = os.Stdin
		r.Out = cmd.OutOrStdout()
		r.Format = oo.Format()
		return oo.HandleError(r.Do(ctx))
	}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored preferences.",
		Example: `
lineup settings
lineup settings set language en
lineup settings set scheduleHelper false
lineup settings export backup.json
lineup settings import backup.json
lineup settings reset
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &settings.Settings{Action: settings.ActionShow})
		},
	}
	options.AddOutputArg(cmd, oo)

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting: scheduleHelper (true|false) or language (uk|en).",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"scheduleHelper", "language"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &settings.Settings{Action: settings.ActionSet, Key: args[0], Value: args[1]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write every stored key as JSON to file, or stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &settings.Settings{Action: settings.ActionExport, File: firstArg(args)})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Merge a JSON export from file, or stdin, into the store.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &settings.Settings{Action: settings.ActionImport, File: firstArg(args)})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Erase everything stored, favorites included, and restore the defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &settings.Settings{Action: settings.ActionReset})
		},
	})

	topLevel.AddCommand(cmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
