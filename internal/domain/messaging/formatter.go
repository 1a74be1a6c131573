// Package messaging renders order summaries for hand-off to an external
// chat channel and builds the deep links that open them.
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// DefaultDeepLinkBase is the chat deep-link endpoint
const DefaultDeepLinkBase = "https://wa.me/"

// Formatter renders messages. Output depends only on the inputs and the
// configured currency label and country code.
type Formatter struct {
	currency     string
	countryCode  string
	deepLinkBase string
}

// NewFormatter creates a Formatter.
// An empty deepLinkBase selects DefaultDeepLinkBase.
func NewFormatter(currency, countryCode, deepLinkBase string) *Formatter {
	if deepLinkBase == "" {
		deepLinkBase = DefaultDeepLinkBase
	}
	return &Formatter{
		currency:     currency,
		countryCode:  digitsOnly(countryCode),
		deepLinkBase: deepLinkBase,
	}
}

// Money renders an amount as "<currency> <amount 2dp>"
func (f *Formatter) Money(amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", f.currency, pricing.Format2(amount))
}

// DisplayText describes what a line buys, e.g. "3x Loaf" or "350g x Cheese"
func (f *Formatter) DisplayText(li order.LineItem) string {
	switch sale := li.Sale.(type) {
	case order.WeightSale:
		return fmt.Sprintf("%s x %s", sale.Label(), li.ProductName)
	case order.ValueSale:
		if !sale.UnitsPerCurrency.IsPositive() {
			return fmt.Sprintf("%s x %s", f.Money(sale.Amount), li.ProductName)
		}
		count := pricing.EffectiveUnitCount(sale.Amount, sale.UnitsPerCurrency, li.Quantity)
		return fmt.Sprintf("%s x %s", pricing.ValueLabel(count, sale.UnitLabel), li.ProductName)
	default:
		return fmt.Sprintf("%dx %s", li.Quantity, li.ProductName)
	}
}

// FormatLine renders one item line
func (f *Formatter) FormatLine(li order.LineItem) string {
	return fmt.Sprintf("%s   %s", f.DisplayText(li), f.Money(li.Total()))
}

func (f *Formatter) itemBlock(lines []order.LineItem) string {
	rendered := make([]string, 0, len(lines))
	for _, li := range lines {
		rendered = append(rendered, f.FormatLine(li))
	}
	return strings.Join(rendered, "\n")
}

// FormatOrderMessage renders the vendor-facing order summary
func (f *Formatter) FormatOrderMessage(lines []order.LineItem, address string, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to place an order:\n\n")
	b.WriteString(f.itemBlock(lines))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %s\n", f.Money(total))
	fmt.Fprintf(&b, "Delivery address: %s\n\n", address)
	b.WriteString("Thank you!")
	return b.String()
}

// FormatConfirmation renders the shopper-facing confirmation message
func (f *Formatter) FormatConfirmation(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! Your order from %s has been confirmed.\n\n", o.ShopperName, o.VendorName)
	b.WriteString(f.itemBlock(o.Items))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %s\n", f.Money(o.Total))
	fmt.Fprintf(&b, "Delivery address: %s", o.DeliveryAddress)
	return b.String()
}

// FormatOutForDelivery renders the shopper-facing dispatch message
func (f *Formatter) FormatOutForDelivery(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! Your order from %s is out for delivery.\n\n", o.ShopperName, o.VendorName)
	fmt.Fprintf(&b, "Total: %s\n", f.Money(o.Total))
	fmt.Fprintf(&b, "Delivery address: %s", o.DeliveryAddress)
	return b.String()
}

// StatusMessage renders the outbound message for a status, if it has one
func (f *Formatter) StatusMessage(o *order.Order) (string, bool) {
	switch o.Status {
	case order.StatusConfirmed:
		return f.FormatConfirmation(o), true
	case order.StatusOutForDelivery:
		return f.FormatOutForDelivery(o), true
	default:
		return "", false
	}
}

// DeepLink builds the chat link for phone with text prefilled.
// Non-digits are stripped from phone and the country code is prefixed.
func (f *Formatter) DeepLink(phone, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("%s%s%s?text=%s", f.deepLinkBase, f.countryCode, digitsOnly(phone), encoded)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
