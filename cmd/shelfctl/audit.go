// cmd/shelfctl/audit.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/internal/audit"
	"shelfkeeper/internal/inventory"
)

// errAuditFailed makes the process exit non-zero once the report is printed.
var errAuditFailed = errors.New("audit failed")

func (c *cli) auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check placements and capacities",
		Long: `Run every integrity check over the current inventory.

Exits with status 1 when any check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withInventory(cmd.Context(), func(inv *inventory.Inventory) error {
				snap, err := inv.Snapshots.Take(cmd.Context())
				if err != nil {
					return err
				}
				auditor := audit.NewAuditor()
				auditor.RegisterDefaults()
				report := auditor.Run(cmd.Context(), snap)

				w := cmd.OutOrStdout()
				if c.jsonOutput {
					if err := writeJSON(w, report); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(w, titleStyle.Render("Inventory audit"))
					for _, f := range report.Findings {
						icon := successStyle.Render("✓")
						if !f.Passed {
							icon = errorStyle.Render("✗")
						}
						fmt.Fprintf(w, "%s %s %s\n", icon, f.Check, mutedStyle.Render(fmt.Sprintf("(%g, want %s)", f.Value, f.Expected)))
						for _, o := range f.Offenders {
							fmt.Fprintf(w, "    %s\n", warningStyle.Render(o))
						}
					}
				}
				if !report.Passed {
					return errAuditFailed
				}
				return nil
			})
		},
	}
}
