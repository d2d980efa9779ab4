package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the product catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := args[0]

			client, err := a.searchClient()
			if err != nil {
				return err
			}

			ids, err := client.AutocompleteProductIDs(ctx, query, limit)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				a.printer.Error(fmt.Sprintf("No products found for %q", query))
				return nil
			}

			products, err := client.ProductCards(ctx, ids)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				a.printer.Error(fmt.Sprintf("No product details found for %q", query))
				return nil
			}

			if a.jsonOut {
				return a.printer.JSON(products)
			}
			a.printer.ProductTable(products)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}
