package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
)

func (a *App) newListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage shopping lists",
	}
	cmd.AddCommand(
		a.newListsListCommand(),
		a.newListsShowCommand(),
		a.newListsCreateCommand(),
		a.newListsDeleteCommand(),
	)
	return cmd
}

func (a *App) newListsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all shopping lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			ids, err := client.ShoppingListIDs(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				a.printer.Info("No shopping lists found")
				return nil
			}

			lists := make([]gurkerl.ShoppingList, 0, len(ids))
			for _, id := range ids {
				list, err := client.ShoppingList(ctx, id)
				if err != nil {
					a.logg.Debugf(ctx, map[string]any{"list_id": id, "error": err.Error()}, "skipping unreadable shopping list")
					continue
				}
				lists = append(lists, *list)
			}
			if len(lists) == 0 {
				a.printer.Error("No readable shopping lists found")
				return nil
			}

			if a.jsonOut {
				return a.printer.JSON(lists)
			}
			a.printer.ListTable(lists)
			return nil
		},
	}
}

func (a *App) newListsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show one shopping list with its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "list id")
			if err != nil {
				return err
			}

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			list, err := client.ShoppingList(cmd.Context(), id)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(list)
			}
			a.printer.ListPanel(list)
			return nil
		},
	}
}

func (a *App) newListsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}

			list, err := client.CreateShoppingList(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(list)
			}
			a.printer.Success(fmt.Sprintf("Created shopping list %q (ID: %d)", list.Name, list.ID))
			return nil
		},
	}
}

func (a *App) newListsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "list id")
			if err != nil {
				return err
			}

			if !force && !a.confirm(fmt.Sprintf("Delete shopping list %d?", id)) {
				a.printer.Info("Delete cancelled")
				return nil
			}

			client, err := a.apiClient()
			if err != nil {
				return err
			}

			if err := client.DeleteShoppingList(cmd.Context(), id); err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Deleted shopping list %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
