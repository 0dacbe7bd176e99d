package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions
type FilterOptions struct {
	FavoritesOnly bool
	Stages        []string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().BoolVarP(&o.FavoritesOnly, "favorites", "f", false,
		"Only show favorited performances.")
	cmd.Flags().StringSliceVarP(&o.Stages, "stage", "s", nil,
		"Only show these stages (repeatable). Default is every stage.")
}
