package email

import (
	"context"
	"strconv"
)

func (c *Client) SendOrderConfirmationEmail(ctx context.Context, to, customerName, serviceTitle, orderID, date string, price float64) error {
	if customerName == "" {
		customerName = "there"
	}

	data := map[string]string{
		"CustomerName": customerName,
		"ServiceTitle": serviceTitle,
		"OrderID":      orderID,
		"Date":         date,
		"Price":        strconv.FormatFloat(price, 'f', 2, 64),
	}

	return c.SendEmail(
		ctx,
		to,
		"Your Car Doctor booking is confirmed",
		TemplateOrderConfirmation,
		data,
	)
}
