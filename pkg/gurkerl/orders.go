package gurkerl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

const (
	ordersPath      = "/services/frontend-service/v2/user-profile/orders"
	orderDetailPath = "/services/frontend-service/v2/orders/%s"
)

// OrderSummary is one row of the order history, without line items.
type OrderSummary struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Unit      string          `json:"unit,omitempty"`
}

// Order is the full order detail.
type Order struct {
	OrderSummary
	Items []OrderItem `json:"items"`
}

type orderRowDTO struct {
	ID          json.Number     `json:"id"`
	OrderNumber string          `json:"orderNumber" validate:"required"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

func (dto orderRowDTO) toSummary() OrderSummary {
	status := dto.Status
	if status == "" {
		status = "Unknown"
	}
	return OrderSummary{
		ID:          dto.ID.String(),
		OrderNumber: dto.OrderNumber,
		Date:        parseOrderDate(dto.Date),
		Status:      status,
		Total:       dto.Total,
	}
}

// Orders fetches the bounded order history. Entries that fail to decode or
// validate are skipped with a debug log, never failing the whole listing.
// Line items are not loaded here.
func (c *Client) Orders(ctx context.Context, limit int) ([]OrderSummary, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	raw, err := c.do(ctx, http.MethodGet, ordersPath, query, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Orders []json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode orders response")
	}

	orders := make([]OrderSummary, 0, len(resp.Orders))
	for _, row := range resp.Orders {
		var dto orderRowDTO
		if err := c.decodeValid(row, &dto); err != nil {
			c.logg.Debugf(ctx, map[string]any{"error": err.Error()}, "skipping unparseable order")
			continue
		}
		orders = append(orders, dto.toSummary())
	}
	return orders, nil
}

type orderDetailDTO struct {
	ID     json.Number     `json:"id"`
	Date   string          `json:"date"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Items  []orderItemDTO  `json:"items"`
}

type orderItemDTO struct {
	ProductID int              `json:"productId"`
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Unit      string           `json:"unit"`
}

// Order fetches one order's full detail by order number. Missing numeric
// fields decode to zero and a missing or unparseable date is substituted with
// the current time, the request never fails on incomplete detail rows.
func (c *Client) Order(ctx context.Context, orderNumber string) (*Order, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf(orderDetailPath, url.PathEscape(orderNumber)), nil, nil)
	if err != nil {
		return nil, err
	}

	var dto orderDetailDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode order detail")
	}

	status := dto.Status
	if status == "" {
		status = "Unknown"
	}

	order := &Order{
		OrderSummary: OrderSummary{
			ID:          dto.ID.String(),
			OrderNumber: orderNumber,
			Date:        parseOrderDate(dto.Date),
			Status:      status,
			Total:       dto.Total,
		},
		Items: make([]OrderItem, 0, len(dto.Items)),
	}

	for _, item := range dto.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		name := item.Name
		if name == "" {
			name = "Unknown"
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(quantity)))
		if item.Subtotal != nil {
			subtotal = *item.Subtotal
		}
		order.Items = append(order.Items, OrderItem{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  quantity,
			Price:     item.Price,
			Subtotal:  subtotal,
			Unit:      item.Unit,
		})
	}

	return order, nil
}

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseOrderDate falls back to the current time, the vendor occasionally
// omits the date field on older orders.
func parseOrderDate(value string) time.Time {
	for _, layout := range orderDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Now()
}
