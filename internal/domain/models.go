package domain

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Subcategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
}

// Item is a sellable catalog entry. Qty is seed stock and is never
// decremented by a sale.
type Item struct {
	ID            int64  `json:"id"`
	SubcategoryID int64  `json:"subcategory_id"`
	Title         string `json:"title"`
	PriceCents    int64  `json:"price_cents"`
	Qty           int    `json:"qty"`
}

// LineItem is one row of an invoice. LineTotalCents is derived from
// Quantity and UnitPriceCents and is never stored stale.
type LineItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// Invoice is the aggregate the view renders from. All four aggregate
// figures are derived; the ledger recomputes them after every mutation.
type Invoice struct {
	Lines           []LineItem `json:"lines"`
	DiscountPercent float64    `json:"discount_percent"`
	GrandTotalCents int64      `json:"grand_total_cents"`
	DiscountCents   int64      `json:"discount_cents"`
	NetPayableCents int64      `json:"net_payable_cents"`
}

type AddLineRequest struct {
	ItemID int64 `json:"item_id"`
}

// UpdateLineRequest carries a row edit. Only the provided fields are
// applied; nil fields are left untouched.
type UpdateLineRequest struct {
	Quantity       *int64 `json:"quantity,omitempty"`
	UnitPriceCents *int64 `json:"unit_price_cents,omitempty"`
}

type SetDiscountRequest struct {
	Percent float64 `json:"percent"`
}

type LineResponse struct {
	Line    LineItem `json:"line"`
	Invoice Invoice  `json:"invoice"`
}

type InvoiceResponse struct {
	Invoice Invoice `json:"invoice"`
}
