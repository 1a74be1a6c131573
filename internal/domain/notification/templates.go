package notification

import (
	"fmt"

	"github.com/localmarket/backend/internal/domain/order"
)

// StatusTemplate returns the title and body sent to a shopper when the
// order enters status. ok is false for statuses without a template.
func StatusTemplate(status order.Status, vendorName string) (title, body string, ok bool) {
	switch status {
	case order.StatusConfirmed:
		return "Order confirmed", fmt.Sprintf("%s confirmed your order.", vendorName), true
	case order.StatusPreparing:
		return "Order being prepared", fmt.Sprintf("%s is preparing your order.", vendorName), true
	case order.StatusOutForDelivery:
		return "Order out for delivery", fmt.Sprintf("Your order from %s is on its way.", vendorName), true
	case order.StatusDelivered:
		return "Order delivered", fmt.Sprintf("Your order from %s was delivered.", vendorName), true
	case order.StatusCancelled:
		return "Order cancelled", fmt.Sprintf("%s cancelled your order.", vendorName), true
	}
	return "", "", false
}

// NewOrderTemplate returns the title and body sent to a vendor owner
func NewOrderTemplate(shopperName, total string) (title, body string) {
	if shopperName == "" {
		shopperName = "A customer"
	}
	return "New order", fmt.Sprintf("%s placed an order of %s.", shopperName, total)
}
