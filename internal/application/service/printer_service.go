package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/money"
	"github.com/sangkips/billbuddy-api/pkg/printer"
	"github.com/sirupsen/logrus"
)

// PrinterService formats bills as receipts and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	history     *HistoryService
	header      entity.ReceiptHeader
	width       int
	printerType string
	log         *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	history *HistoryService,
	header entity.ReceiptHeader,
	width int,
	printerType string,
	log *logrus.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		history:     history,
		header:      header,
		width:       width,
		printerType: printerType,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildReceipt composes the printable view of a stored bill.
func (s *PrinterService) BuildReceipt(ctx context.Context, billID string) (*entity.Receipt, error) {
	detail, err := s.history.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return NewReceipt(s.header, detail), nil
}

// PrintBillReceipt prints a stored bill. The receipt is returned even when the
// printer fails so the caller can show it on screen.
func (s *PrinterService) PrintBillReceipt(ctx context.Context, billID string) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.WithField("bill_id", billID).WithError(err).Error("Printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// NewReceipt maps a bill detail onto a receipt.
func NewReceipt(header entity.ReceiptHeader, d *repository.BillDetail) *entity.Receipt {
	totals := money.Compute(d.Bill.Subtotal, d.Bill.TaxPct, d.Bill.DiscountPct)

	receipt := &entity.Receipt{
		Header:      header,
		BillID:      d.Bill.ID,
		Table:       d.Order.TableID,
		Date:        d.Bill.CreatedTime().Format("2006-01-02 15:04"),
		SubTotal:    d.Bill.Subtotal.StringFixed(money.Places),
		TaxPct:      d.Bill.TaxPct.String(),
		Tax:         totals.Tax.StringFixed(money.Places),
		DiscountPct: d.Bill.DiscountPct.String(),
		Discount:    totals.Discount.StringFixed(money.Places),
		Total:       d.Bill.Total.StringFixed(money.Places),
		Status:      d.Bill.Status.String(),
		Items:       make([]entity.ReceiptItem, 0, len(d.Items)),
	}
	if d.Order.WaiterID != nil {
		receipt.Waiter = *d.Order.WaiterID
	}
	if d.Due != nil && d.Due.Name != nil {
		receipt.Customer = *d.Due.Name
	}

	for _, item := range d.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity.String(),
			UnitPrice: item.Price.StringFixed(money.Places),
			Total:     item.Amount().StringFixed(money.Places),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Bill:", r.BillID).
		KeyValue("Table:", r.Table).
		KeyValue("Date:", r.Date)

	if r.Waiter != "" {
		doc.KeyValue("Waiter:", r.Waiter)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Quantity != "1" {
			doc.Text("  @ " + item.UnitPrice + " each")
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal:", r.SubTotal).
		KeyValue("Tax ("+r.TaxPct+"%):", r.Tax)
	if r.Discount != "0.00" {
		doc.KeyValue("Discount ("+r.DiscountPct+"%):", "-"+r.Discount)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if r.Status == enum.BillStatusDue.String() {
		doc.SetAlign(printer.AlignCenter).
			Text("*** " + strings.ToUpper(r.Status) + " ***").
			SetAlign(printer.AlignLeft)
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you, visit again!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
