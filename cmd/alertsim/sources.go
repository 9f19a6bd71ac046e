package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSourcesCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List configured alert sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			names := a.reg.List()
			if outputJSON {
				return printSourcesJSON(a, names)
			}
			if len(names) == 0 {
				warnColor.Fprintln(os.Stdout, "No alert sources defined.")
				return nil
			}
			headerColor.Fprintln(os.Stdout, "ALERT SOURCES")
			fmt.Fprintf(os.Stdout, "%-24s %-7s %-11s %-6s %s\n", "Name", "Fields", "Thresholds", "Items", "Field Names")
			fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
			for _, name := range names {
				fields, _ := a.reg.Fields(name)
				thresholds, _ := a.reg.Thresholds(name)
				items, _ := a.reg.Items(name)
				fmt.Fprintf(os.Stdout, "%-24s %-7d %-11d %-6d %s\n",
					name, len(fields), len(thresholds), len(items), strings.Join(fields, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output in JSON format")
	return cmd
}

func printSourcesJSON(a *app, names []string) error {
	type sourceSummary struct {
		Name       string   `json:"name"`
		Fields     []string `json:"fields"`
		Thresholds int      `json:"thresholds"`
		Items      int      `json:"items"`
	}
	out := make([]sourceSummary, 0, len(names))
	for _, name := range names {
		fields, _ := a.reg.Fields(name)
		thresholds, _ := a.reg.Thresholds(name)
		items, _ := a.reg.Items(name)
		out = append(out, sourceSummary{Name: name, Fields: fields, Thresholds: len(thresholds), Items: len(items)})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
