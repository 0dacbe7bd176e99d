package options

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// GlobalOptions are shared by every command.
type GlobalOptions struct {
	Verbose   bool
	Ephemeral bool
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep favorites and settings in memory only. Nothing is read from or written to disk.")
}

// SetupLogging points the global logger at stderr.
func (o *GlobalOptions) SetupLogging() {
	level := zerolog.WarnLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}
