// cmd/shelfctl/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shelfkeeper/internal/config"
	"shelfkeeper/internal/inventory"
)

// opener connects to the inventory the commands act on.
type opener func(ctx context.Context, logger *slog.Logger) (*inventory.Inventory, error)

type cli struct {
	open       opener
	logger     *slog.Logger
	jsonOutput bool
}

func main() {
	if err := newRootCmd(openFromEnv).Execute(); err != nil {
		if !errors.Is(err, errAuditFailed) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+err.Error())
		}
		os.Exit(1)
	}
}

func openFromEnv(ctx context.Context, logger *slog.Logger) (*inventory.Inventory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return inventory.Open(ctx, cfg, logger)
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}
	var verbose bool

	root := &cobra.Command{
		Use:   "shelfctl",
		Short: "Operate a shelfkeeper inventory",
		Long: `shelfctl works directly against the inventory store configured by
DATABASE_URL and STORE_DRIVER (or a .env file).

Commands:
  audit   - check placements and capacities
  export  - write the catalog to an Excel workbook
  layout  - print placards, shelves and their books
  seed    - load placards.json, shelves.json and books.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(c.auditCmd(), c.exportCmd(), c.layoutCmd(), c.seedCmd())
	return root
}

// withInventory opens the store for the duration of fn.
func (c *cli) withInventory(ctx context.Context, fn func(inv *inventory.Inventory) error) error {
	inv, err := c.open(ctx, c.logger)
	if err != nil {
		return fmt.Errorf("failed to open inventory: %w", err)
	}
	defer inv.Close()
	return fn(inv)
}
