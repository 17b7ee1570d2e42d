package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widgets"
)

func tagsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List registered elements",
		Long: `List every element of the bundled widget set with its view flags
and the strategy used to place its children.

Examples:
  widgetdom tags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tNAME\tFLAGS\tCHILDREN")
			for _, e := range reg.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Tag, e.Name, e.Meta.ViewFlags, e.Strategy)
			}
			return tw.Flush()
		},
	}
}

// newRegistry returns a sealed registry holding the bundled widget set.
func newRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := widgets.Install(reg); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}
