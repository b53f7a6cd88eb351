// cmd/shelfctl/layout.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/internal/inventory"
	"shelfkeeper/internal/layout"
)

func (c *cli) layoutCmd() *cobra.Command {
	var placard string
	var showBooks bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print placards, shelves and their books",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withInventory(cmd.Context(), func(inv *inventory.Inventory) error {
				snap, err := inv.Snapshots.Take(cmd.Context())
				if err != nil {
					return err
				}
				l := layout.Build(snap.Units, snap.Shelves, snap.Books)
				units := l.Units
				if placard != "" {
					u, ok := l.Unit(placard)
					if !ok {
						return fmt.Errorf("placard %q not found", placard)
					}
					units = []layout.UnitLayout{u}
				}

				w := cmd.OutOrStdout()
				if c.jsonOutput {
					return writeJSON(w, layout.Layout{Units: units})
				}
				for _, u := range units {
					fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Placard "+u.Name), fill(u.TotalBooks, u.Capacity))
					if len(u.Shelves) == 0 {
						fmt.Fprintln(w, shelfStyle.Render(mutedStyle.Render("no shelves")))
					}
					for _, s := range u.Shelves {
						fmt.Fprintln(w, shelfStyle.Render(fmt.Sprintf("Shelf %s %s", s.Name, fill(s.BookCount, s.Capacity))))
						if !showBooks {
							continue
						}
						for _, b := range s.Books {
							fmt.Fprintln(w, bookStyle.Render(fmt.Sprintf("%s, %s ×%d", b.Title, b.Author, b.Count)))
						}
					}
				}
				if n := len(l.Unplaced); n > 0 && placard == "" {
					fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d books are not on an existing shelf", n)))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&placard, "placard", "", "Only show this placard")
	cmd.Flags().BoolVar(&showBooks, "books", false, "List the books on each shelf")
	return cmd
}
