package ledger

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"zafarpos/backend/internal/domain"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("line not found")
)

// Ledger owns one invoice for one session. It is the single source of
// truth for all numeric state; the view only ever renders a Snapshot.
//
// After every successful mutating call the invoice satisfies:
//   - line_total == quantity * unit_price for every line
//   - grand_total == sum of line totals in display order
//   - discount == round(grand_total * discount_percent / 100)
//   - net_payable == grand_total - discount
//
// Failed calls leave the invoice untouched. A Ledger is not safe for
// concurrent use; callers serialize access per session.
type Ledger struct {
	invoice domain.Invoice
	nextID  int64
}

func New() *Ledger {
	return &Ledger{
		invoice: domain.Invoice{Lines: []domain.LineItem{}},
		nextID:  1,
	}
}

// AddLine appends a row for the named item at quantity 1 and returns it.
// Line IDs are assigned from a per-invoice sequence and never reused.
func (l *Ledger) AddLine(name string, unitPriceCents int64) (domain.LineItem, error) {
	if name == "" || unitPriceCents < 0 {
		return domain.LineItem{}, ErrInvalidArgument
	}

	line := domain.LineItem{
		ID:             l.nextID,
		Name:           name,
		Quantity:       1,
		UnitPriceCents: unitPriceCents,
		LineTotalCents: unitPriceCents,
	}
	l.nextID++
	l.invoice.Lines = append(l.invoice.Lines, line)
	l.recompute()

	return line, nil
}

func (l *Ledger) UpdateLineQuantity(id int64, quantity int64) (domain.LineItem, error) {
	if quantity <= 0 {
		return domain.LineItem{}, ErrInvalidArgument
	}
	idx := l.lineIndex(id)
	if idx < 0 {
		return domain.LineItem{}, ErrNotFound
	}
	if mulOverflows(quantity, l.invoice.Lines[idx].UnitPriceCents) {
		return domain.LineItem{}, ErrInvalidArgument
	}

	l.invoice.Lines[idx].Quantity = quantity
	l.recompute()

	return l.invoice.Lines[idx], nil
}

func (l *Ledger) UpdateLineUnitPrice(id int64, unitPriceCents int64) (domain.LineItem, error) {
	if unitPriceCents < 0 {
		return domain.LineItem{}, ErrInvalidArgument
	}
	idx := l.lineIndex(id)
	if idx < 0 {
		return domain.LineItem{}, ErrNotFound
	}
	if mulOverflows(l.invoice.Lines[idx].Quantity, unitPriceCents) {
		return domain.LineItem{}, ErrInvalidArgument
	}

	l.invoice.Lines[idx].UnitPriceCents = unitPriceCents
	l.recompute()

	return l.invoice.Lines[idx], nil
}

func (l *Ledger) SetDiscountPercent(percent float64) (domain.Invoice, error) {
	// NaN compares false against both bounds, so reject it explicitly.
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return domain.Invoice{}, ErrInvalidArgument
	}

	l.invoice.DiscountPercent = percent
	l.recompute()

	return l.Snapshot(), nil
}

func (l *Ledger) RemoveLine(id int64) (domain.Invoice, error) {
	idx := l.lineIndex(id)
	if idx < 0 {
		return domain.Invoice{}, ErrNotFound
	}

	l.invoice.Lines = append(l.invoice.Lines[:idx], l.invoice.Lines[idx+1:]...)
	l.recompute()

	return l.Snapshot(), nil
}

// Snapshot returns a deep copy of the invoice for rendering. The copy is
// detached: mutating it never affects ledger state.
func (l *Ledger) Snapshot() domain.Invoice {
	snap := l.invoice
	snap.Lines = make([]domain.LineItem, len(l.invoice.Lines))
	copy(snap.Lines, l.invoice.Lines)
	return snap
}

func (l *Ledger) lineIndex(id int64) int {
	for i := range l.invoice.Lines {
		if l.invoice.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

// recompute rebuilds every derived figure from its inputs. Line totals are
// summed in display order so rounding behavior is reproducible.
func (l *Ledger) recompute() {
	var grand int64
	for i := range l.invoice.Lines {
		line := &l.invoice.Lines[i]
		line.LineTotalCents = line.Quantity * line.UnitPriceCents
		grand += line.LineTotalCents
	}

	l.invoice.GrandTotalCents = grand
	l.invoice.DiscountCents = discountCents(grand, l.invoice.DiscountPercent)
	l.invoice.NetPayableCents = grand - l.invoice.DiscountCents
}

// mulOverflows reports whether qty * priceCents exceeds math.MaxInt64.
// Both arguments are non-negative at every call site.
func mulOverflows(qty, priceCents int64) bool {
	return priceCents > 0 && qty > math.MaxInt64/priceCents
}

// discountCents applies the one rounding rule used across the backend:
// grand * percent / 100, rounded half away from zero to the nearest cent.
func discountCents(grandTotalCents int64, percent float64) int64 {
	if grandTotalCents == 0 || percent == 0 {
		return 0
	}
	return decimal.NewFromInt(grandTotalCents).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
