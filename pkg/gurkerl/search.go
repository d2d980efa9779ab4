package gurkerl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

const (
	autocompletePath = "/services/frontend-service/autocomplete-suggestion"
	productCardPath  = "/api/v1/products/card"

	// staleResultsCookie makes the upstream search backend serve cached
	// results instead of live ones when it is present on the request, so
	// search traffic must never carry it.
	staleResultsCookie = "PHPSESSION"
)

// NewSearchClient builds a client for the search endpoints. It uses the same
// configuration as NewClient but drops the cookie that triggers the stale
// search cache upstream. The caller's cookie map is copied, never mutated.
func NewSearchClient(cookies map[string]string, opts ...Option) *Client {
	filtered := make(map[string]string, len(cookies))
	for name, value := range cookies {
		if name == staleResultsCookie {
			continue
		}
		filtered[name] = value
	}
	return NewClient(append(opts, WithCookies(filtered))...)
}

// ProductImage is the card image reference.
type ProductImage struct {
	Path string `json:"path"`
}

// ProductPrices splits the card price into original, sale and per-unit parts.
type ProductPrices struct {
	OriginalPrice decimal.Decimal  `json:"originalPrice"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unitPrice"`
	Currency      string           `json:"currency"`
}

// ProductStock is the card availability block.
type ProductStock struct {
	MaxAvailableAmount int    `json:"maxAvailableAmount"`
	AvailabilityStatus string `json:"availabilityStatus"`
}

// Product is one product card returned by the detail endpoint.
type Product struct {
	ProductID     int           `json:"productId" validate:"required"`
	Name          string        `json:"name" validate:"required"`
	Slug          string        `json:"slug"`
	Brand         string        `json:"brand,omitempty"`
	Unit          string        `json:"unit"`
	TextualAmount string        `json:"textualAmount"`
	Image         ProductImage  `json:"image"`
	Prices        ProductPrices `json:"prices"`
	Stock         ProductStock  `json:"stock"`
}

// Price returns the effective price: the sale price when there is one.
func (p Product) Price() decimal.Decimal {
	if p.Prices.SalePrice != nil {
		return *p.Prices.SalePrice
	}
	return p.Prices.OriginalPrice
}

func (p Product) InStock() bool {
	return p.Stock.AvailabilityStatus == "AVAILABLE"
}

// AutocompleteProductIDs queries the search-suggestion endpoint and returns
// at most limit candidate product ids. The endpoint has shipped three
// response shapes over time, all of them are tolerated.
func (c *Client) AutocompleteProductIDs(ctx context.Context, query string, limit int) ([]string, error) {
	raw, err := c.do(ctx, http.MethodGet, autocompletePath, url.Values{"q": []string{query}}, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ProductIDs []json.Number `json:"productIds"`
		Products   []struct {
			ID json.Number `json:"id"`
		} `json:"products"`
		Data struct {
			Products []struct {
				ID json.Number `json:"id"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode autocomplete response")
	}

	var ids []string
	switch {
	case len(resp.ProductIDs) > 0:
		for _, id := range resp.ProductIDs {
			ids = append(ids, id.String())
		}
	case len(resp.Products) > 0:
		for _, p := range resp.Products {
			ids = append(ids, p.ID.String())
		}
	default:
		for _, p := range resp.Data.Products {
			ids = append(ids, p.ID.String())
		}
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// ProductCards fetches full product and price details for the given ids.
// Rows that fail to decode or validate are skipped with a debug log, a single
// malformed card never fails the whole lookup.
func (c *Client) ProductCards(ctx context.Context, ids []string) ([]Product, error) {
	query := url.Values{
		"products":     ids,
		"categoryType": []string{"normal"},
	}
	raw, err := c.do(ctx, http.MethodGet, productCardPath, query, nil)
	if err != nil {
		return nil, err
	}

	rows, err := productRows(raw)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		var p Product
		if err := c.decodeValid(row, &p); err != nil {
			c.logg.Debugf(ctx, map[string]any{"error": err.Error()}, "skipping unparseable product card")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// productRows tolerates both the bare-array and the wrapped response shape.
func productRows(raw json.RawMessage) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows, nil
	}

	var wrapped struct {
		Products []json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode product card response")
	}
	return wrapped.Products, nil
}
