package export

import (
	"fmt"
	"io"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Bookings"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateTimeLayout = "2006-01-02 15:04:05"
)

var header = []any{
	"ID", "Hotel", "Room", "Category", "Check-in", "Check-out", "Nights",
	"Guests", "Total", "Customer", "Email", "Status", "Booked at",
}

// WriteBookings renders bookings as a single-sheet workbook, one row per
// booking in the given order.
func WriteBookings(w io.Writer, bookings []booking.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("header column name: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2) //nolint:gomnd
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+2, err)
		}

		row := []any{
			b.ID,
			b.HotelName,
			b.RoomName,
			string(b.RoomCategory),
			b.CheckIn.String(),
			b.CheckOut.String(),
			booking.Nights(b.CheckIn, b.CheckOut),
			b.Guests,
			b.TotalPrice.InexactFloat64(),
			b.CustomerName,
			b.CustomerEmail,
			string(b.Status),
			b.BookingDate.UTC().Format(dateTimeLayout),
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write booking %s: %w", b.ID, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 32); err != nil { //nolint:gomnd
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}
