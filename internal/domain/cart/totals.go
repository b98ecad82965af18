package cart

// Totals is the read-side projection of an owner's active cart lines.
// All money fields are integer cents.
type Totals struct {
	SubtotalCents   int64 `json:"subtotal_cents"`
	Quantity        int   `json:"quantity"`
	TaxCents        int64 `json:"tax_cents"`
	GrandTotalCents int64 `json:"grand_total_cents"`
}
