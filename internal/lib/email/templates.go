package email

type Template string

const (
	TemplateOrderConfirmation Template = "order_confirmation"
)

// PreviewData is sample data for rendering templates during development.
var PreviewData = map[Template]map[string]string{
	TemplateOrderConfirmation: {
		"CustomerName": "John",
		"ServiceTitle": "Engine Oil Change",
		"OrderID":      "650f1c2e9b1e8a0012345678",
		"Date":         "2026-10-21",
		"Price":        "20.00",
	},
}
