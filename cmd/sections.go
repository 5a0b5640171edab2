package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaylaburzese/portfolio/internal/view"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the page sections navigation can scroll to",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLABEL\tHREF\tDEEP LINK")
		for _, a := range view.Anchors() {
			fmt.Fprintf(w, "%s\t%s\t%s\t/sections/%s\n", a.Name, a.Label, a.Href(), a.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
