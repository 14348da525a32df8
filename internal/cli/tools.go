package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cpritchett/ai-tools/internal/config"
)

type toolEntry struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	File           string `json:"file"`
	Description    string `json:"description"`
	DefaultEnabled bool   `json:"default_enabled"`
}

func newToolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List supported AI tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.Registry()
			if err != nil {
				return err
			}

			var entries []toolEntry
			for _, t := range reg.All() {
				entries = append(entries, toolEntry{
					ID:             string(t.ID),
					Name:           t.Name,
					File:           t.File,
					Description:    t.Description,
					DefaultEnabled: t.DefaultEnabled,
				})
			}

			if asJSON {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling tools: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFILE\tDEFAULT")
			for _, e := range entries {
				def := "no"
				if e.DefaultEnabled {
					def = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.File, def)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
