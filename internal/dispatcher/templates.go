package dispatcher

import (
	"fmt"
	"strings"

	"saleor-tma-bot/internal/orders"
)

const (
	StartText = "*Let's get started* 🍟\n\nPlease tap the button below to order your perfect lunch!"
	TestText  = "Please tap the button below to open the web app!"
	HelpText  = "This is the help page. You can use the following commands:\n\n" +
		"/start - Start the bot\n" +
		"/order - Order a burger\n" +
		"/test - Test the web app\n" +
		"/help - Show this help page"
	PingText     = "`Pong!`"
	GreetingText = "Hello World!"

	UnknownMethodError = "Unknown method"

	orderButtonText   = "Order Food"
	testButtonText    = "Test"
	webviewButtonText = "Open WebApp"
	testPath          = "/demo"
)

// OrderConfirmation is the message sent to the customer after makeOrder.
func OrderConfirmation(receipt orders.Receipt) string {
	return "Your order has been placed successfully! 🍟\n\n" +
		"Your order is:\n`" + receipt.Body() + "`\n" +
		"Your order will be delivered to you in 30 minutes. 🚚"
}

// adminOrderText is the copy of an order sent to the admin chat.
func adminOrderText(order orders.Order) string {
	comment := strings.TrimSpace(order.Receipt.Comment)
	if comment == "" {
		comment = "-"
	}
	return fmt.Sprintf(`🚨 New order!

Number: %s
Customer: %d
Restaurant: %s
Order:
%s
Total: %s
Comment: %s
Time: %s`,
		order.ID, order.UserID, order.Receipt.Restaurant,
		strings.TrimRight(order.Receipt.Body(), "\n"), order.Receipt.FormattedTotal(),
		comment, order.CreatedAt.Format("15:04 02.01.2006"))
}
