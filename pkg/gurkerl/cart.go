package gurkerl

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

const (
	cartReviewPath  = "/services/frontend-service/v2/cart-review/check-cart"
	cartReviewItem  = "/services/frontend-service/v2/cart-review/item/%d"
	cartAddItemPath = "/api/v1/cart/item"
)

// CartItem is one line of the shopping cart. Mutations address the line via
// OrderFieldID, not the product id.
type CartItem struct {
	ProductID     int              `json:"productId"`
	OrderFieldID  int              `json:"orderFieldId"`
	Name          string           `json:"name"`
	Brand         string           `json:"brand,omitempty"`
	Quantity      int              `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	SalePercents  int              `json:"salePercents"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Unit          string           `json:"unit"`
	TextualAmount string           `json:"textualAmount"`
	ImageURL      string           `json:"imageUrl"`
}

func (i CartItem) HasDiscount() bool {
	return i.SalePercents > 0
}

// Cart is the display model built from the cart-review response.
type Cart struct {
	CartID                int             `json:"cartId"`
	Items                 []CartItem      `json:"items"`
	Total                 decimal.Decimal `json:"total"`
	TotalSavings          decimal.Decimal `json:"totalSavings"`
	MinimalOrderPrice     decimal.Decimal `json:"minimalOrderPrice"`
	SubmitConditionPassed bool            `json:"submitConditionPassed"`
}

// Item returns the cart line for a product id, or nil when not present.
func (c *Cart) Item(productID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Remaining is the amount still missing to meet the minimum order threshold.
func (c *Cart) Remaining() decimal.Decimal {
	return c.MinimalOrderPrice.Sub(c.Total)
}

type cartItemDTO struct {
	ProductID     int              `json:"productId"`
	OrderFieldID  int              `json:"orderFieldId"`
	ProductName   string           `json:"productName"`
	Brand         *string          `json:"brand"`
	Quantity      int              `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	SalePercents  int              `json:"salePercents"`
	Unit          string           `json:"unit"`
	TextualAmount string           `json:"textualAmount"`
	ImgPath       string           `json:"imgPath"`
}

func (dto cartItemDTO) toItem(baseURL string) CartItem {
	brand := ""
	if dto.Brand != nil {
		brand = *dto.Brand
	}
	imageURL := ""
	if dto.ImgPath != "" {
		imageURL = baseURL + dto.ImgPath
	}
	return CartItem{
		ProductID:     dto.ProductID,
		OrderFieldID:  dto.OrderFieldID,
		Name:          dto.ProductName,
		Brand:         brand,
		Quantity:      dto.Quantity,
		Price:         dto.Price,
		OriginalPrice: dto.OriginalPrice,
		SalePercents:  dto.SalePercents,
		Subtotal:      dto.Price.Mul(decimal.NewFromInt(int64(dto.Quantity))),
		Unit:          dto.Unit,
		TextualAmount: dto.TextualAmount,
		ImageURL:      imageURL,
	}
}

type cartData struct {
	CartID                int                    `json:"cartId"`
	TotalPrice            decimal.Decimal        `json:"totalPrice"`
	TotalSavings          decimal.Decimal        `json:"totalSavings"`
	MinimalOrderPrice     decimal.Decimal        `json:"minimalOrderPrice"`
	SubmitConditionPassed bool                   `json:"submitConditionPassed"`
	Items                 map[string]cartItemDTO `json:"items"`
}

type cartEnvelope struct {
	Status   int      `json:"status"`
	Messages []string `json:"messages"`
	Data     cartData `json:"data"`
}

// CheckCart fetches the current cart and maps it to the display model.
func (c *Client) CheckCart(ctx context.Context) (*Cart, error) {
	raw, err := c.do(ctx, http.MethodGet, cartReviewPath, nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope cartEnvelope
	if err := c.decodeValid(raw, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode cart response")
	}

	data := envelope.Data
	items := make([]CartItem, 0, len(data.Items))
	for _, dto := range data.Items {
		items = append(items, dto.toItem(c.baseURL))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return &Cart{
		CartID:                data.CartID,
		Items:                 items,
		Total:                 data.TotalPrice,
		TotalSavings:          data.TotalSavings,
		MinimalOrderPrice:     data.MinimalOrderPrice,
		SubmitConditionPassed: data.SubmitConditionPassed,
	}, nil
}

// AddCartItem creates a new cart line for a product that is not in the cart.
func (c *Client) AddCartItem(ctx context.Context, productID, amount int) error {
	body := map[string]any{"amount": amount, "productId": productID}
	_, err := c.do(ctx, http.MethodPost, cartAddItemPath, nil, body)
	return err
}

// SetCartItemQuantity updates an existing cart line to an absolute quantity.
func (c *Client) SetCartItemQuantity(ctx context.Context, orderFieldID, quantity int) error {
	body := map[string]any{"quantity": quantity}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf(cartReviewItem, orderFieldID), nil, body)
	return err
}

// RemoveCartItem deletes one cart line by its order-field id.
func (c *Client) RemoveCartItem(ctx context.Context, orderFieldID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(cartReviewItem, orderFieldID), nil, nil)
	return err
}
