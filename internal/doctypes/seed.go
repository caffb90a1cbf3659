package doctypes

// Seed returns the built-in document types. The database migrations insert
// the same rows, so both repo flavors start from an identical registry.
func Seed() []DocumentType {
	return []DocumentType{
		{
			ID:          "invoice",
			Name:        "Invoice",
			Category:    "Financial",
			Description: "Standard invoice documents",
			ExtractionFields: []TemplateField{
				{ID: "invoice_num", Label: "Invoice Number", Type: "text", Required: true},
				{ID: "date", Label: "Invoice Date", Type: "date", Required: true},
				{ID: "vendor", Label: "Vendor Name", Type: "text", Required: true},
				{ID: "amount", Label: "Total Amount", Type: "currency", Required: true},
				{ID: "items", Label: "Line Items", Type: "array", Required: false},
			},
		},
		{
			ID:          "receipt",
			Name:        "Receipt",
			Category:    "Financial",
			Description: "Receipt documents",
			ExtractionFields: []TemplateField{
				{ID: "store_name", Label: "Store Name", Type: "text", Required: true},
				{ID: "purchase_date", Label: "Purchase Date", Type: "date", Required: true},
				{ID: "items", Label: "Items", Type: "array", Required: false},
				{ID: "total", Label: "Total Amount", Type: "currency", Required: true},
			},
		},
		{
			ID:          "contract",
			Name:        "Contract",
			Category:    "Legal",
			Description: "Contract documents",
			ExtractionFields: []TemplateField{
				{ID: "parties", Label: "Contract Parties", Type: "array", Required: true},
				{ID: "start_date", Label: "Start Date", Type: "date", Required: true},
				{ID: "end_date", Label: "End Date", Type: "date", Required: true},
				{ID: "terms", Label: "Key Terms", Type: "text", Required: false},
			},
		},
	}
}
