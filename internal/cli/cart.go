package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

func (a *App) newCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and modify the shopping cart",
	}
	cmd.AddCommand(
		a.newCartListCommand(),
		a.newCartAddCommand(),
		a.newCartRemoveCommand(),
		a.newCartClearCommand(),
	)
	return cmd
}

func (a *App) newCartListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current cart contents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}

			cart, err := client.CheckCart(cmd.Context())
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(cart)
			}
			if len(cart.Items) == 0 {
				a.printer.Info("🛒 Cart is empty")
				return nil
			}
			a.printer.CartTable(cart)
			return nil
		},
	}
}

func (a *App) newCartAddCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			productID, err := parsePositiveInt(args[0], "product id")
			if err != nil {
				return err
			}
			if quantity < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
			}

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			cart, err := client.CheckCart(ctx)
			if err != nil {
				return err
			}

			// An existing line is bumped in place, the add endpoint would
			// otherwise create a duplicate line for the same product.
			if item := cart.Item(productID); item != nil {
				newQuantity := item.Quantity + quantity
				if err := client.SetCartItemQuantity(ctx, item.OrderFieldID, newQuantity); err != nil {
					return err
				}
				a.printer.Success(fmt.Sprintf("Updated %s (%dx → %dx)", item.Name, item.Quantity, newQuantity))
				return nil
			}

			if err := client.AddCartItem(ctx, productID, quantity); err != nil {
				return err
			}

			name := fmt.Sprintf("product %d", productID)
			if cart, err := client.CheckCart(ctx); err == nil {
				if item := cart.Item(productID); item != nil {
					name = item.Name
				}
			}
			a.printer.Success(fmt.Sprintf("Added %s (%dx) to cart", name, quantity))
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of units to add")
	return cmd
}

func (a *App) newCartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			productID, err := parsePositiveInt(args[0], "product id")
			if err != nil {
				return err
			}

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			cart, err := client.CheckCart(ctx)
			if err != nil {
				return err
			}

			item := cart.Item(productID)
			if item == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d is not in the cart", productID))
			}

			if err := client.RemoveCartItem(ctx, item.OrderFieldID); err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Removed %s from cart", item.Name))
			return nil
		},
	}
}

func (a *App) newCartClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Confirm before touching the API, a declined prompt makes no
			// requests at all.
			if !force && !a.confirm("Remove all items from the cart?") {
				a.printer.Info("Cart clear cancelled")
				return nil
			}

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			cart, err := client.CheckCart(ctx)
			if err != nil {
				return err
			}
			if len(cart.Items) == 0 {
				a.printer.Info("🛒 Cart is already empty")
				return nil
			}

			var errs error
			removed := 0
			for _, item := range cart.Items {
				if err := client.RemoveCartItem(ctx, item.OrderFieldID); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("remove %s: %w", item.Name, err))
					continue
				}
				removed++
			}
			if errs != nil {
				a.printer.Warn(fmt.Sprintf("Removed %d of %d items", removed, len(cart.Items)))
				return pkgerrors.Wrap(pkgerrors.CodeAPI, errs, "cart clear incomplete")
			}

			a.printer.Success(fmt.Sprintf("Cleared %d items from cart", removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
