package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
	"github.com/LokeshN1/bill-master/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	billRepo    repository.BillRepository
	infoRepo    repository.InfoRepository
	printerType string
	width       int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	infoRepo repository.InfoRepository,
	printerType string,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 48 // 80mm paper
	}
	return &PrinterService{
		printer:     p,
		billRepo:    billRepo,
		infoRepo:    infoRepo,
		printerType: printerType,
		width:       width,
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

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			CafeName: "PRINTER TEST",
			Address:  "Test Address",
			Contact:  "000-000-0000",
		},
		BillNumber:  "TEST-001",
		TableNumber: "0",
		Date:        time.Now().Format("2006-01-02 15:04"),
		Format:      enum.ReceiptFormatDetailed,
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Total: 20.00,
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintBillReceipt fetches a bill and prints it in its stored format, or the
// format override if one is given.
func (s *PrinterService) PrintBillReceipt(ctx context.Context, billID uuid.UUID, formatOverride enum.ReceiptFormat) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if err != nil {
		return nil, err
	}

	receipt := s.composeReceipt(ctx, bill, formatOverride)
	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Warn().Err(err).Str("bill_number", bill.BillNumber).Msg("printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

func (s *PrinterService) composeReceipt(ctx context.Context, bill *entity.Bill, formatOverride enum.ReceiptFormat) *entity.Receipt {
	receipt := &entity.Receipt{
		BillNumber:  bill.BillNumber,
		TableNumber: bill.TableNumber,
		Date:        bill.CreatedAt.Format("2006-01-02 15:04"),
		Format:      bill.ReceiptFormat,
		Total:       bill.TotalAmount,
	}
	if formatOverride != "" && formatOverride.IsValid() {
		receipt.Format = formatOverride
	}

	// The receipt prints with whatever profile exists; a missing profile
	// falls back to a bare header.
	if info, err := s.infoRepo.Get(ctx); err == nil {
		receipt.Header = entity.ReceiptHeader{
			CafeName:  info.Name,
			Address:   info.Address,
			Contact:   info.Contact,
			GSTNumber: info.GSTNumber,
		}
	} else {
		receipt.Header = entity.ReceiptHeader{CafeName: "Cafe"}
	}

	for _, l := range bill.Lines {
		name := l.Name
		if name == "" {
			name = "Item"
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Total:     l.Price * float64(l.Quantity),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes, choosing the template
// from the receipt's format: detailed carries prices and totals, simple is
// the kitchen ticket with quantities only.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	if r.Format == enum.ReceiptFormatSimple {
		return s.formatKitchenTicket(r)
	}
	return s.formatDetailed(r)
}

func (s *PrinterService) formatDetailed(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.CafeName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Contact != "" {
		doc.TextF("Tel: %s", r.Header.Contact)
	}
	if r.Header.GSTNumber != "" {
		doc.TextF("GST: %s", r.Header.GSTNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNumber).
		KeyValue("Table:", r.TableNumber).
		KeyValue("Date:", r.Date)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you, visit again!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// formatKitchenTicket renders the KOT: table, bill number and quantities,
// no prices anywhere.
func (s *PrinterService) formatKitchenTicket(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		TextF("TABLE %s", r.TableNumber).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNumber).
		KeyValue("Time:", r.Date)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.QtyLine(item.Quantity, item.Name)
	}

	doc.Separator('-')

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
