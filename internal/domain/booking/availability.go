package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

const day = 24 * time.Hour

// Range is a half-open stay [CheckIn, CheckOut) at day granularity.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewRange keeps the calendar date of each end as read in its own location,
// stores it as UTC midnight and requires at least one night between them.
func NewRange(checkIn, checkOut time.Time) (Range, error) {
	r := Range{CheckIn: truncateDay(checkIn), CheckOut: truncateDay(checkOut)}
	if !r.CheckIn.Before(r.CheckOut) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Overlaps uses the half-open rule: a checkout on the day of another
// check-in is not an overlap.
func (r Range) Overlaps(o Range) bool {
	return r.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(r.CheckOut)
}

func (r Range) Nights() int {
	return nightsBetween(r.CheckIn, r.CheckOut)
}

// CountOverlapping counts the ranges in existing that overlap candidate.
func CountOverlapping(existing []Range, candidate Range) int {
	n := 0
	for _, e := range existing {
		if e.Overlaps(candidate) {
			n++
		}
	}
	return n
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(truncateDay(checkOut).Sub(truncateDay(checkIn)) / day)
}

// Evaluator answers whether a room has capacity left for a stay.
type Evaluator struct {
	store Store
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// IsRoomAvailable counts confirmed bookings of the room overlapping
// [checkIn, checkOut) and compares against the room's booking limit. It does
// not look at the room's manual availability flag; the guard does.
func (e *Evaluator) IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	r, err := NewRange(checkIn, checkOut)
	if err != nil {
		return false, err
	}

	room, err := e.store.FindRoomByID(ctx, roomID)
	if err != nil {
		return false, err
	}

	return e.hasCapacity(ctx, room, r)
}

func (e *Evaluator) hasCapacity(ctx context.Context, room *domain.Room, r Range) (bool, error) {
	limit := room.BookingLimit()
	if limit == 0 {
		return false, nil
	}

	n, err := e.store.CountOverlappingConfirmed(ctx, room.ID, r)
	if err != nil {
		return false, err
	}
	return n < int64(limit), nil
}
