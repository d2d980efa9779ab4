package display

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
)

func (p *Printer) newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

// ProductTable renders search results with id, name, price, unit and a
// stock mark.
func (p *Printer) ProductTable(products []gurkerl.Product) {
	table := p.newTable()
	table.SetHeader([]string{"ID", "Name", "Price", "Unit", "Stock"})

	for _, product := range products {
		stock := red("✗")
		if product.InStock() {
			stock = green("✓")
		}
		unit := product.Unit
		if unit == "" {
			unit = "-"
		}
		table.Append([]string{
			strconv.Itoa(product.ProductID),
			product.Name,
			FormatPrice(product.Price()),
			unit,
			stock,
		})
	}

	table.Render()
	fmt.Fprintf(p.out, "\nFound %d products\n", len(products))
}

// CartTable renders the cart with per-item pricing and aggregate totals.
// Discounted lines show the struck-through original price next to the sale
// price. A shortfall warning follows when the minimum order is not met.
func (p *Printer) CartTable(cart *gurkerl.Cart) {
	fmt.Fprintf(p.out, "%s\n", bold(fmt.Sprintf("🛒 Shopping Cart (Cart ID: %d)", cart.CartID)))

	table := p.newTable()
	table.SetHeader([]string{"Product", "Brand", "Qty", "Price", "Subtotal"})

	for _, item := range cart.Items {
		price := FormatPrice(item.Price)
		if item.HasDiscount() && item.OriginalPrice != nil {
			price = fmt.Sprintf("%s → %s", red(FormatPrice(*item.OriginalPrice)), green(price))
		}
		brand := item.Brand
		if brand == "" {
			brand = "-"
		}
		table.Append([]string{
			item.Name,
			brand,
			fmt.Sprintf("%dx %s", item.Quantity, item.TextualAmount),
			price,
			FormatPrice(item.Subtotal),
		})
	}

	if cart.TotalSavings.IsPositive() {
		table.Append([]string{"", "", "", green("Savings:"), green("-" + FormatPrice(cart.TotalSavings))})
	}
	table.SetFooter([]string{"", "", "", "Total:", FormatPrice(cart.Total)})
	table.Render()

	if !cart.SubmitConditionPassed {
		p.Warn(fmt.Sprintf("Minimum order: %s (%s remaining)",
			FormatPrice(cart.MinimalOrderPrice), FormatPrice(cart.Remaining())))
	}
}

// OrderTable renders the order history summary, without line items.
func (p *Printer) OrderTable(orders []gurkerl.OrderSummary) {
	table := p.newTable()
	table.SetHeader([]string{"Order #", "Date", "Status", "Total"})

	for _, order := range orders {
		status := yellow(order.Status)
		if order.Status == "Delivered" {
			status = green(order.Status)
		}
		table.Append([]string{
			order.OrderNumber,
			order.Date.Format("2006-01-02"),
			status,
			FormatPrice(order.Total),
		})
	}

	table.Render()
	fmt.Fprintf(p.out, "\nShowing %d orders\n", len(orders))
}

// OrderPanel renders one order's full detail as a textual panel.
func (p *Printer) OrderPanel(order *gurkerl.Order) {
	fmt.Fprintf(p.out, "%s\n", bold(fmt.Sprintf("Order %s", order.OrderNumber)))
	fmt.Fprintf(p.out, "%s %s\n", bold("Date:"), order.Date.Format("2006-01-02 15:04"))
	fmt.Fprintf(p.out, "%s %s\n", bold("Status:"), order.Status)
	fmt.Fprintf(p.out, "%s %s\n", bold("Total:"), FormatPrice(order.Total))

	if len(order.Items) == 0 {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", bold("Items:"))
	for _, item := range order.Items {
		fmt.Fprintf(p.out, "  • %s (%dx) - %s\n", item.Name, item.Quantity, FormatPrice(item.Subtotal))
	}
}

// ListTable renders the shopping list overview.
func (p *Printer) ListTable(lists []gurkerl.ShoppingList) {
	table := p.newTable()
	table.SetHeader([]string{"ID", "Name", "Type", "Items", "Shared"})

	for _, list := range lists {
		shared := "✗"
		if list.Shared {
			shared = "✓"
		}
		table.Append([]string{
			strconv.Itoa(list.ID),
			list.Name,
			list.Type,
			strconv.Itoa(len(list.Products)),
			shared,
		})
	}

	table.Render()
	fmt.Fprintf(p.out, "\nFound %d shopping lists\n", len(lists))
}

// ListPanel renders one shopping list's detail including its products.
func (p *Printer) ListPanel(list *gurkerl.ShoppingList) {
	fmt.Fprintf(p.out, "%s\n", bold(fmt.Sprintf("Shopping List: %s", list.Name)))
	fmt.Fprintf(p.out, "ID: %d\n", list.ID)
	fmt.Fprintf(p.out, "Type: %s\n", list.Type)
	fmt.Fprintf(p.out, "Shared: %s\n", yesNo(list.Shared))
	fmt.Fprintf(p.out, "Read-only: %s\n", yesNo(list.ReadOnly))

	if len(list.Products) == 0 {
		fmt.Fprintf(p.out, "\nNo products in list\n")
		return
	}

	fmt.Fprintf(p.out, "\n%s\n", bold(fmt.Sprintf("Products (%d):", len(list.Products))))
	table := p.newTable()
	table.SetHeader([]string{"Product ID", "Amount", "Status"})
	for _, product := range list.Products {
		status := "○"
		if product.Checked {
			status = "✓"
		}
		table.Append([]string{
			strconv.Itoa(product.ProductID),
			strconv.Itoa(product.Amount),
			status,
		})
	}
	table.Render()
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
