package gurkerl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

const (
	shoppingListsComponentPath = "/api/v1/components/shopping-lists"
	shoppingListDetailPath     = "/api/v2/shopping-lists/id/%d"
	shoppingListsPath          = "/api/v1/shopping-lists"
	shoppingListDeletePath     = "/api/v1/shopping-lists/%d"
)

// ShoppingListProduct is one entry of a shopping list.
type ShoppingListProduct struct {
	ProductID int  `json:"productId"`
	Amount    int  `json:"amount"`
	Checked   bool `json:"checked"`
}

// ShoppingList mirrors the list detail endpoint.
type ShoppingList struct {
	ID       int                   `json:"id" validate:"required"`
	Name     string                `json:"name" validate:"required"`
	Type     string                `json:"type"`
	Products []ShoppingListProduct `json:"products"`
	ReadOnly bool                  `json:"readOnly"`
	Shared   bool                  `json:"shared"`
}

// ShoppingListIDs returns the ids of all shopping lists of the account.
func (c *Client) ShoppingListIDs(ctx context.Context) ([]int, error) {
	raw, err := c.do(ctx, http.MethodGet, shoppingListsComponentPath, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ShoppingLists []int `json:"shoppingLists"`
	}
	if err := c.decodeValid(raw, &resp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode shopping lists response")
	}
	return resp.ShoppingLists, nil
}

// ShoppingList fetches the full detail of one list.
func (c *Client) ShoppingList(ctx context.Context, id int) (*ShoppingList, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf(shoppingListDetailPath, id), nil, nil)
	if err != nil {
		return nil, err
	}

	var list ShoppingList
	if err := c.decodeValid(raw, &list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode shopping list detail")
	}
	return &list, nil
}

// CreateShoppingList creates a list with the given name and returns its full
// detail fetched back from the server.
func (c *Client) CreateShoppingList(ctx context.Context, name string) (*ShoppingList, error) {
	query := url.Values{"source": []string{"Shopping Lists"}}
	raw, err := c.do(ctx, http.MethodPost, shoppingListsPath, query, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := c.decodeValid(raw, &created); err != nil || created.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeAPI, "shopping list creation returned no id")
	}

	return c.ShoppingList(ctx, created.ID)
}

// DeleteShoppingList removes a list by id.
func (c *Client) DeleteShoppingList(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(shoppingListDeletePath, id), nil, nil)
	return err
}
