package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect the order history",
	}
	cmd.AddCommand(
		a.newOrdersListCommand(),
		a.newOrdersShowCommand(),
	)
	return cmd
}

func (a *App) newOrdersListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}

			orders, err := client.Orders(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				a.printer.Info("No orders found")
				return nil
			}

			if a.jsonOut {
				return a.printer.JSON(orders)
			}
			a.printer.OrderTable(orders)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of orders")
	return cmd
}

func (a *App) newOrdersShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-number>",
		Short: "Show one order with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}

			order, err := client.Order(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(order)
			}
			a.printer.OrderPanel(order)
			return nil
		},
	}
}
