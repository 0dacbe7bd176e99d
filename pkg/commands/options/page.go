package options

import (
	"time"

	"github.com/spf13/cobra"
)

// PageOptions
type PageOptions struct {
	Page     string
	Wait     bool
	Interval time.Duration
	Fallback time.Duration
}

func AddPageArgs(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().StringVarP(&o.Page, "page", "p", "",
		"Schedule page: a saved HTML file, an http(s) URL, or browser+https://... to render it in Chromium first. Defaults to the configured page.")
	cmd.Flags().BoolVarP(&o.Wait, "wait", "w", false,
		"Keep polling the page until its schedule content appears.")
	cmd.Flags().DurationVar(&o.Interval, "poll-interval", time.Second,
		"Time between polls with --wait.")
	cmd.Flags().DurationVar(&o.Fallback, "poll-fallback", 10*time.Second,
		"With --wait, report missing content and start over after this long.")
}
