// shopql is a read-only console for the shoplite store: it runs SELECT
// statements through the same gateway validation the API uses and renders
// result sets as terminal tables.
//
//	shopql --db shoplite.db "select * from products"
//	shopql --db shoplite.db --tables
//	echo "select count(*) from orders" | shopql --db shoplite.db
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/service"
	"github.com/shoplite/shoplite/internal/store"
)

func main() {
	var (
		dbPath     string
		listTables bool
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:   "shopql [query]",
		Short: "Run read-only SQL against the shoplite store",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			gateway := service.NewQueryGateway(db, timeout)
			ctx := cmd.Context()

			if listTables {
				tables, err := gateway.Tables(ctx)
				if err != nil {
					return err
				}
				for _, t := range tables {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			}

			if len(args) > 0 {
				return runQuery(ctx, cmd, gateway, strings.Join(args, " "))
			}

			// No query argument: read statements line by line from stdin.
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := runQuery(ctx, cmd, gateway, line); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
			}
			return scanner.Err()
		},
	}

	root.Flags().StringVar(&dbPath, "db", "shoplite.db", "path to the store file")
	root.Flags().BoolVar(&listTables, "tables", false, "list tables and exit")
	root.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "per-statement timeout")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuery(ctx context.Context, cmd *cobra.Command, gateway *service.QueryGateway, query string) error {
	start := time.Now()
	result, err := gateway.Execute(ctx, query)
	if err != nil {
		return err
	}
	renderResult(cmd, result)
	fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) in %v\n", len(result.Rows), time.Since(start).Round(time.Millisecond))
	return nil
}

func renderResult(cmd *cobra.Command, result *model.ResultSet) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}
	t.Render()
}
