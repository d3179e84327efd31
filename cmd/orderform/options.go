package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-orderform/pkg/model"
)

func newOptionsCmd(a *app) *cobra.Command {
	var (
		scope  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "options <country|harbor|item> [query]",
		Short: "List the options one level offers for a query and scope",
		Example: `  orderform options country
  orderform options harbor --scope 1
  orderform options item Tea --scope 10 --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := model.ParseLevel(args[0])
			if err != nil {
				return err
			}
			query := ""
			if len(args) > 1 {
				query = args[1]
			}

			ctx := cmd.Context()
			client := a.client(ctx)

			var rows any
			if level == model.LevelItem {
				rows, err = client.Items(ctx, query, scope)
			} else {
				rows, err = client.Search(ctx, level, query, scope)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			switch v := rows.(type) {
			case []model.ItemOption:
				for _, it := range v {
					fmt.Fprintf(out, "%s\t%s\tprice=%v\tdiscount=%v\t%s\n",
						it.Value, it.Label, it.Price, it.Discount, strings.TrimSpace(it.Description))
				}
			case []model.Option:
				for _, opt := range v {
					fmt.Fprintf(out, "%s\t%s\n", opt.Value, opt.Label)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "Parent identifier (country id for harbors, harbor id for items)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tab-separated rows")
	return cmd
}
