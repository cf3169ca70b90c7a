package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/domain/booking"
)

const bookingsSheet = "Bookings"

var bookingHeaders = []string{
	"ID", "Guest", "Email", "Hotel", "Room", "Check-in", "Check-out",
	"Nights", "Total", "Status", "Created",
}

// BookingLister returns the bookings in the hotels an actor manages.
type BookingLister interface {
	ListManaged(ctx context.Context, actor access.Actor, f booking.ListFilter) ([]domain.Booking, error)
}

type Exporter struct {
	bookings BookingLister
}

func NewExporter(bookings BookingLister) *Exporter {
	return &Exporter{bookings: bookings}
}

// BookingsWorkbook renders the bookings of the actor's hotels as a
// single-sheet workbook with a trailing revenue row. Every status is listed;
// only confirmed and completed bookings are summed.
func (e *Exporter) BookingsWorkbook(ctx context.Context, actor access.Actor, f booking.ListFilter) (*excelize.File, error) {
	list, err := e.bookings.ListManaged(ctx, actor, f)
	if err != nil {
		return nil, err
	}

	x := excelize.NewFile()
	if err := x.SetSheetName("Sheet1", bookingsSheet); err != nil {
		x.Close()
		return nil, err
	}
	if err := writeBookings(x, list); err != nil {
		x.Close()
		return nil, fmt.Errorf("write bookings sheet: %w", err)
	}
	return x, nil
}

func writeBookings(x *excelize.File, list []domain.Booking) error {
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, header := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := x.SetCellValue(bookingsSheet, cell, header); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	if err := x.SetCellStyle(bookingsSheet, "A1", last, bold); err != nil {
		return err
	}

	var revenue float64
	for i := range list {
		b := &list[i]
		row := i + 2
		values := []any{
			b.ID,
			guestName(b),
			guestEmail(b),
			hotelName(b),
			roomNumber(b),
			b.CheckIn.Format(time.DateOnly),
			b.CheckOut.Format(time.DateOnly),
			booking.Range{CheckIn: b.CheckIn, CheckOut: b.CheckOut}.Nights(),
			b.TotalPrice,
			string(b.Status),
			b.CreatedAt.UTC().Format(time.DateTime),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := x.SetSheetRow(bookingsSheet, start, &values); err != nil {
			return err
		}
		if b.Status.EarnsRevenue() {
			revenue += b.TotalPrice
		}
	}

	totalRow := len(list) + 2
	if err := x.SetCellValue(bookingsSheet, fmt.Sprintf("H%d", totalRow), "Revenue"); err != nil {
		return err
	}
	if err := x.SetCellValue(bookingsSheet, fmt.Sprintf("I%d", totalRow), revenue); err != nil {
		return err
	}
	if err := x.SetCellStyle(bookingsSheet, fmt.Sprintf("H%d", totalRow), fmt.Sprintf("I%d", totalRow), bold); err != nil {
		return err
	}

	return x.SetColWidth(bookingsSheet, "B", "E", 22)
}

func guestName(b *domain.Booking) string {
	if b.User == nil {
		return ""
	}
	return b.User.FullName
}

func guestEmail(b *domain.Booking) string {
	if b.User == nil {
		return ""
	}
	return b.User.Email
}

func hotelName(b *domain.Booking) string {
	if b.Room == nil || b.Room.Hotel == nil {
		return ""
	}
	return b.Room.Hotel.Name
}

func roomNumber(b *domain.Booking) string {
	if b.Room == nil {
		return ""
	}
	return b.Room.RoomNumber
}
