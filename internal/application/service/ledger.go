package service

import (
	"sort"
	"sync"

	"github.com/sangkips/billbuddy-api/pkg/money"
	"github.com/shopspring/decimal"
)

// MenuItem is the catalog view of an item, as the ledger receives it.
type MenuItem struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Price     decimal.Decimal     `json:"price"`
	HalfPrice decimal.NullDecimal `json:"half_price"`
	Category  string              `json:"category,omitempty"`
}

// OrderLine is one item and its quantity on an open order.
type OrderLine struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Amount returns price × quantity.
func (l OrderLine) Amount() decimal.Decimal {
	return money.LineAmount(l.Price, l.Quantity)
}

// TableSnapshot is a copy of one table's open order with its derived totals.
type TableSnapshot struct {
	TableID     string          `json:"table_id"`
	Open        bool            `json:"open"`
	Lines       []OrderLine     `json:"lines"`
	TaxPct      decimal.Decimal `json:"tax_pct"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Totals      money.Totals    `json:"totals"`

	// Version changes on every mutation of the table; zero means not open.
	Version uint64 `json:"version"`
}

type tableOrder struct {
	lines       []OrderLine // insertion order
	taxPct      decimal.Decimal
	discountPct decimal.Decimal
	version     uint64
}

func (o *tableOrder) find(itemID string) int {
	for i := range o.lines {
		if o.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func (o *tableOrder) remove(i int) {
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
}

// Ledger holds the open, not yet billed order of every table.
// Every stored line has a quantity strictly above zero; a mutation that would
// bring a line to zero or below removes it.
type Ledger struct {
	mu            sync.RWMutex
	tables        map[string]*tableOrder
	defaultTaxPct decimal.Decimal
	seq           uint64

	subMu  sync.Mutex
	subs   map[int]func(TableSnapshot)
	nextID int
}

// NewLedger creates an empty ledger. Tables opened on demand start with
// defaultTaxPct and no discount.
func NewLedger(defaultTaxPct decimal.Decimal) *Ledger {
	return &Ledger{
		tables:        make(map[string]*tableOrder),
		defaultTaxPct: defaultTaxPct,
		subs:          make(map[int]func(TableSnapshot)),
	}
}

// Subscribe registers fn to receive the table's snapshot after every
// mutation. fn runs on the mutating goroutine and must not block.
// The returned func removes the subscription.
func (l *Ledger) Subscribe(fn func(TableSnapshot)) func() {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Ledger) notify(tableID string) {
	l.subMu.Lock()
	fns := make([]func(TableSnapshot), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := l.Snapshot(tableID)
	for _, fn := range fns {
		fn(snap)
	}
}

// touch gives o a version never used before. Caller holds mu.
func (l *Ledger) touch(o *tableOrder) {
	l.seq++
	o.version = l.seq
}

// open returns the table's order, creating it if needed. Caller holds mu.
func (l *Ledger) open(tableID string) *tableOrder {
	o, ok := l.tables[tableID]
	if !ok {
		o = &tableOrder{taxPct: l.defaultTaxPct, discountPct: decimal.Zero}
		l.tables[tableID] = o
		l.touch(o)
	}
	return o
}

// AddQuantity adds delta (possibly negative or fractional) to the item's line,
// rounded to two places. The line takes the item's current name and price.
func (l *Ledger) AddQuantity(tableID string, item MenuItem, delta decimal.Decimal) {
	l.mu.Lock()
	o := l.open(tableID)
	i := o.find(item.ID)

	prev := decimal.Zero
	if i >= 0 {
		prev = o.lines[i].Quantity
	}
	next := money.RoundQuantity(prev.Add(delta))

	switch {
	case !next.IsPositive() && i >= 0:
		o.remove(i)
	case !next.IsPositive():
	case i >= 0:
		o.lines[i] = OrderLine{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: next}
	default:
		o.lines = append(o.lines, OrderLine{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: next})
	}
	l.touch(o)
	l.mu.Unlock()

	l.notify(tableID)
}

// AddItem adds one whole unit of item.
func (l *Ledger) AddItem(tableID string, item MenuItem) {
	l.AddQuantity(tableID, item, decimal.NewFromInt(1))
}

// RemoveItem takes one unit off the line. No-op for an unknown table or line.
func (l *Ledger) RemoveItem(tableID, itemID string) {
	l.mu.Lock()
	o, ok := l.tables[tableID]
	if !ok {
		l.mu.Unlock()
		return
	}
	i := o.find(itemID)
	if i < 0 {
		l.mu.Unlock()
		return
	}

	next := o.lines[i].Quantity.Sub(decimal.NewFromInt(1))
	if next.IsPositive() {
		o.lines[i].Quantity = next
	} else {
		o.remove(i)
	}
	l.touch(o)
	l.mu.Unlock()

	l.notify(tableID)
}

// SetQuantity overwrites an existing line's quantity; zero or below removes
// it. It never creates a line: unknown tables and items are left untouched.
func (l *Ledger) SetQuantity(tableID, itemID string, quantity decimal.Decimal) {
	l.mu.Lock()
	o, ok := l.tables[tableID]
	if !ok {
		l.mu.Unlock()
		return
	}
	i := o.find(itemID)
	if i < 0 {
		l.mu.Unlock()
		return
	}

	quantity = money.RoundQuantity(quantity)
	if quantity.IsPositive() {
		o.lines[i].Quantity = quantity
	} else {
		o.remove(i)
	}
	l.touch(o)
	l.mu.Unlock()

	l.notify(tableID)
}

// SetBillAdjustments overwrites the tax and discount percentages, opening the
// table if needed.
func (l *Ledger) SetBillAdjustments(tableID string, taxPct, discountPct decimal.Decimal) {
	l.mu.Lock()
	o := l.open(tableID)
	o.taxPct = taxPct
	o.discountPct = discountPct
	l.touch(o)
	l.mu.Unlock()

	l.notify(tableID)
}

// ClearTable drops the table's whole open order.
func (l *Ledger) ClearTable(tableID string) {
	l.mu.Lock()
	_, ok := l.tables[tableID]
	delete(l.tables, tableID)
	l.mu.Unlock()

	if ok {
		l.notify(tableID)
	}
}

// ClearBilled removes an order once it is billed. When the table is still at
// version, or version is zero, the whole order goes like ClearTable. When the
// table changed in between, only the billed quantities are taken off, so
// lines added while the bill was being written stay open.
func (l *Ledger) ClearBilled(tableID string, version uint64, billed []OrderLine) {
	l.mu.Lock()
	o, ok := l.tables[tableID]
	if !ok {
		l.mu.Unlock()
		return
	}

	if version == 0 || o.version == version {
		delete(l.tables, tableID)
	} else {
		for _, b := range billed {
			i := o.find(b.ItemID)
			if i < 0 {
				continue
			}
			next := o.lines[i].Quantity.Sub(b.Quantity)
			if next.IsPositive() {
				o.lines[i].Quantity = next
			} else {
				o.remove(i)
			}
		}
		if len(o.lines) == 0 {
			delete(l.tables, tableID)
		} else {
			l.touch(o)
		}
	}
	l.mu.Unlock()

	l.notify(tableID)
}

// Lines returns a copy of the table's lines in the order they were added.
func (l *Ledger) Lines(tableID string) []OrderLine {
	l.mu.RLock()
	defer l.mu.RUnlock()

	o, ok := l.tables[tableID]
	if !ok {
		return []OrderLine{}
	}
	return append([]OrderLine{}, o.lines...)
}

// Totals prices the table's current lines. A table with no open order uses
// the default tax and no discount.
func (l *Ledger) Totals(tableID string) money.Totals {
	snap := l.Snapshot(tableID)
	return snap.Totals
}

// Snapshot returns the table's lines, percentages and totals read together.
func (l *Ledger) Snapshot(tableID string) TableSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked(tableID)
}

func (l *Ledger) snapshotLocked(tableID string) TableSnapshot {
	snap := TableSnapshot{
		TableID:     tableID,
		Lines:       []OrderLine{},
		TaxPct:      l.defaultTaxPct,
		DiscountPct: decimal.Zero,
	}
	if o, ok := l.tables[tableID]; ok {
		snap.Open = true
		snap.Lines = append(snap.Lines, o.lines...)
		snap.TaxPct = o.taxPct
		snap.DiscountPct = o.discountPct
		snap.Version = o.version
	}

	subtotal := decimal.Zero
	for _, line := range snap.Lines {
		subtotal = subtotal.Add(line.Amount())
	}
	snap.Totals = money.Compute(subtotal, snap.TaxPct, snap.DiscountPct)
	return snap
}

// OpenTables returns every table that currently has at least one line,
// sorted by table id.
func (l *Ledger) OpenTables() []TableSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.tables))
	for id, o := range l.tables {
		if len(o.lines) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]TableSnapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.snapshotLocked(id))
	}
	return out
}
