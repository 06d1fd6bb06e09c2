package entity

// ReceiptHeader holds the restaurant header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// Receipt is a printable view of a bill. It is composed from durable bill data
// at print time and never stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	BillID      string        `json:"bill_id"`
	Table       string        `json:"table"`
	Date        string        `json:"date"`
	Waiter      string        `json:"waiter,omitempty"`
	Items       []ReceiptItem `json:"items"`
	SubTotal    string        `json:"sub_total"`
	TaxPct      string        `json:"tax_pct"`
	Tax         string        `json:"tax"`
	DiscountPct string        `json:"discount_pct"`
	Discount    string        `json:"discount"`
	Total       string        `json:"total"`
	Status      string        `json:"status"`
	Customer    string        `json:"customer,omitempty"`
}
