// cmd/shelfctl/seed.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelfkeeper/internal/inventory"
	"shelfkeeper/internal/seed"
)

func (c *cli) seedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load placards.json, shelves.json and books.json",
		Long: `Load an initial inventory from a directory. Existing placards and shelves
are kept; books are only loaded into an empty catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = os.Getenv("SEED_DIR")
			}
			if dir == "" {
				return errors.New("--dir or SEED_DIR is required")
			}

			return c.withInventory(cmd.Context(), func(inv *inventory.Inventory) error {
				res, err := seed.NewLoader(inv.Storage, inv.Catalog, c.logger).LoadDir(cmd.Context(), dir)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if c.jsonOutput {
					return writeJSON(w, res)
				}
				fmt.Fprintf(w, "%s seeded %d placards, %d shelves, %d books\n", successStyle.Render("✓"), res.Placards, res.Shelves, res.Books)
				if res.Skipped > 0 {
					fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d records skipped", res.Skipped)))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the seed files (default $SEED_DIR)")
	return cmd
}
