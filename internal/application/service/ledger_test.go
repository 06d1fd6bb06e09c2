package service

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paneer  = MenuItem{ID: "paneer", Name: "Paneer", Price: decimal.NewFromInt(180)}
	rice    = MenuItem{ID: "rice", Name: "Rice", Price: decimal.NewFromInt(70)}
	chapati = MenuItem{ID: "chapati", Name: "Chapati", Price: decimal.NewFromInt(15)}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger() *Ledger {
	return NewLedger(decimal.NewFromInt(5))
}

func TestLedgerTotalsScenario(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	l.AddItem("T1", rice)
	l.AddItem("T1", rice)

	totals := l.Totals("T1")
	assert.Equal(t, "320.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "16.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "0.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "336.00", totals.Total.StringFixed(2))

	lines := l.Lines("T1")
	require.Len(t, lines, 2)
	assert.Equal(t, "paneer", lines[0].ItemID)
	assert.Equal(t, "rice", lines[1].ItemID)
	assert.True(t, d("2").Equal(lines[1].Quantity))
}

func TestLedgerHalfPortionsCancelOut(t *testing.T) {
	l := newTestLedger()
	l.AddQuantity("T2", chapati, d("0.5"))
	l.AddQuantity("T2", chapati, d("0.5"))
	require.Len(t, l.Lines("T2"), 1)
	assert.True(t, d("1").Equal(l.Lines("T2")[0].Quantity))

	l.AddQuantity("T2", chapati, d("-1"))
	assert.Empty(t, l.Lines("T2"))
}

func TestLedgerAddQuantityRounds(t *testing.T) {
	l := newTestLedger()
	l.AddQuantity("T1", chapati, d("0.333"))
	assert.Equal(t, "0.33", l.Lines("T1")[0].Quantity.String())

	l.AddQuantity("T1", chapati, d("-0.004"))
	assert.Equal(t, "0.33", l.Lines("T1")[0].Quantity.String())
}

func TestLedgerNegativeDeltaOnMissingLineCreatesNothing(t *testing.T) {
	l := newTestLedger()
	l.AddQuantity("T3", paneer, d("-1"))
	assert.Empty(t, l.Lines("T3"))
	assert.True(t, l.Snapshot("T3").Open)
}

func TestLedgerAddQuantityRefreshesNameAndPrice(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	repriced := paneer
	repriced.Price = decimal.NewFromInt(200)
	l.AddItem("T1", repriced)

	lines := l.Lines("T1")
	require.Len(t, lines, 1)
	assert.True(t, d("200").Equal(lines[0].Price))
	assert.True(t, d("2").Equal(lines[0].Quantity))
}

func TestLedgerRemoveItem(t *testing.T) {
	l := newTestLedger()
	l.RemoveItem("T9", "paneer")
	assert.False(t, l.Snapshot("T9").Open)

	l.AddQuantity("T1", paneer, d("1.5"))
	l.RemoveItem("T1", "paneer")
	assert.True(t, d("0.5").Equal(l.Lines("T1")[0].Quantity))

	l.RemoveItem("T1", "paneer")
	assert.Empty(t, l.Lines("T1"))

	l.RemoveItem("T1", "paneer")
	assert.Empty(t, l.Lines("T1"))
}

func TestLedgerSetQuantityNeverCreatesLines(t *testing.T) {
	l := newTestLedger()
	l.SetQuantity("T1", "paneer", d("3"))
	assert.False(t, l.Snapshot("T1").Open)

	l.AddItem("T1", rice)
	l.SetQuantity("T1", "paneer", d("3"))
	require.Len(t, l.Lines("T1"), 1)

	l.SetQuantity("T1", "rice", d("4"))
	assert.True(t, d("4").Equal(l.Lines("T1")[0].Quantity))

	l.SetQuantity("T1", "rice", decimal.Zero)
	assert.Empty(t, l.Lines("T1"))
}

func TestLedgerAdjustmentsAndDefaults(t *testing.T) {
	l := newTestLedger()
	totals := l.Totals("T5")
	assert.True(t, totals.Total.IsZero())
	assert.True(t, d("5").Equal(l.Snapshot("T5").TaxPct))

	l.SetBillAdjustments("T5", d("0"), d("10"))
	snap := l.Snapshot("T5")
	assert.True(t, snap.Open)
	assert.True(t, d("10").Equal(snap.DiscountPct))

	l.AddItem("T5", paneer)
	assert.Equal(t, "162.00", l.Totals("T5").Total.StringFixed(2))

	l.SetBillAdjustments("T5", d("0"), d("150"))
	assert.True(t, l.Totals("T5").Total.IsZero())
}

func TestLedgerClearTable(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	l.SetBillAdjustments("T1", d("12"), d("0"))
	l.ClearTable("T1")

	snap := l.Snapshot("T1")
	assert.False(t, snap.Open)
	assert.Empty(t, snap.Lines)
	assert.True(t, d("5").Equal(snap.TaxPct))
}

func TestLedgerClearBilled(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	l.AddItem("T1", rice)
	snap := l.Snapshot("T1")

	l.ClearBilled("T1", snap.Version, snap.Lines)
	assert.False(t, l.Snapshot("T1").Open)
}

func TestLedgerClearBilledKeepsLinesAddedAfterSnapshot(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	l.AddItem("T1", rice)
	snap := l.Snapshot("T1")

	l.AddItem("T1", rice)
	l.AddItem("T1", chapati)
	require.NotEqual(t, snap.Version, l.Snapshot("T1").Version)

	l.ClearBilled("T1", snap.Version, snap.Lines)

	lines := l.Lines("T1")
	require.Len(t, lines, 2)
	assert.Equal(t, "rice", lines[0].ItemID)
	assert.True(t, d("1").Equal(lines[0].Quantity))
	assert.Equal(t, "chapati", lines[1].ItemID)
}

func TestLedgerClearBilledWithoutVersion(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	l.ClearBilled("T1", 0, nil)
	assert.False(t, l.Snapshot("T1").Open)
}

func TestLedgerVersionChangesOnEveryMutation(t *testing.T) {
	l := newTestLedger()
	assert.Zero(t, l.Snapshot("T1").Version)

	seen := map[uint64]bool{}
	record := func() {
		v := l.Snapshot("T1").Version
		require.False(t, seen[v], "version %d reused", v)
		seen[v] = true
	}
	l.AddItem("T1", paneer)
	record()
	l.SetQuantity("T1", "paneer", d("3"))
	record()
	l.RemoveItem("T1", "paneer")
	record()
	l.SetBillAdjustments("T1", d("5"), d("1"))
	record()
	l.ClearTable("T1")
	l.AddItem("T1", paneer)
	record()
}

func TestLedgerLinesAreCopies(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T1", paneer)
	lines := l.Lines("T1")
	lines[0].Quantity = d("99")
	assert.True(t, d("1").Equal(l.Lines("T1")[0].Quantity))
}

func TestLedgerQuantityInvariant(t *testing.T) {
	l := newTestLedger()
	items := []MenuItem{paneer, rice, chapati}
	deltas := []string{"0.5", "1", "-0.5", "-1", "2", "-2.25", "0.25"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		item := items[rng.Intn(len(items))]
		switch rng.Intn(4) {
		case 0:
			l.AddQuantity("T1", item, d(deltas[rng.Intn(len(deltas))]))
		case 1:
			l.AddItem("T1", item)
		case 2:
			l.RemoveItem("T1", item.ID)
		case 3:
			l.SetQuantity("T1", item.ID, d(deltas[rng.Intn(len(deltas))]))
		}
		for _, line := range l.Lines("T1") {
			require.True(t, line.Quantity.IsPositive(), "step %d: %s has %s", i, line.ItemID, line.Quantity)
		}
		require.False(t, l.Totals("T1").Total.IsNegative())
	}
}

func TestLedgerSubscribe(t *testing.T) {
	l := newTestLedger()
	var got []TableSnapshot
	unsubscribe := l.Subscribe(func(s TableSnapshot) { got = append(got, s) })

	l.AddItem("T1", paneer)
	l.SetQuantity("T2", "paneer", d("2")) // no-op, no notification
	l.ClearTable("T1")

	require.Len(t, got, 2)
	assert.Len(t, got[0].Lines, 1)
	assert.Equal(t, "180", got[0].Totals.Subtotal.String())
	assert.False(t, got[1].Open)

	unsubscribe()
	l.AddItem("T1", paneer)
	assert.Len(t, got, 2)
}

func TestLedgerOpenTables(t *testing.T) {
	l := newTestLedger()
	l.AddItem("T3", paneer)
	l.AddItem("T1", rice)
	l.SetBillAdjustments("T2", d("5"), d("0"))

	open := l.OpenTables()
	require.Len(t, open, 2)
	assert.Equal(t, "T1", open[0].TableID)
	assert.Equal(t, "T3", open[1].TableID)
}
