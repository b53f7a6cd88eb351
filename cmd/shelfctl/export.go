// cmd/shelfctl/export.go
package main

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shelfkeeper/internal/export"
	"shelfkeeper/internal/inventory"
	"shelfkeeper/internal/query"
)

func (c *cli) exportCmd() *cobra.Command {
	var out string
	filters := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to an Excel workbook",
		Long: `Write the filtered, sorted catalog to an .xlsx workbook.

Examples:
  shelfctl export                          # books_<timestamp>.xlsx in the current directory
  shelfctl export --placard A --sort author
  shelfctl export --status lost -o lost.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for name, v := range filters {
				if *v != "" {
					params.Set(name, *v)
				}
			}
			if out == "" {
				out = export.FileName(time.Now())
			}

			return c.withInventory(cmd.Context(), func(inv *inventory.Inventory) error {
				books, err := inv.Catalog.ListBooks(cmd.Context())
				if err != nil {
					return err
				}
				books = query.Apply(books, params)

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				if err := export.WriteWorkbook(f, books); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s exported %d books to %s\n", successStyle.Render("✓"), len(books), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	for _, name := range []string{"search", "placard", "shelf", "category", "status", "sort"} {
		filters[name] = cmd.Flags().String(name, "", "Filter or order by "+name)
	}
	return cmd
}
