package options

import (
	"github.com/spf13/cobra"
)

// ScheduleOptions
type ScheduleOptions struct {
	Timeout string
	Mode    string
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVarP(&o.Timeout, "timeout", "t", "",
		"Conflict timeout: 5, 10, 15, 20, 25 or 30 minutes (e.g. 15, 15m, \"20 min\"). Defaults to the configured timeout.")
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		"Conflict window anchoring: start (within timeout of the group's first event) or chain (within timeout of the previous event).")
}
