package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

// Store is the persistence the availability and creation path depends on.
type Store interface {
	FindRoomByID(ctx context.Context, roomID int64) (*domain.Room, error)
	CountOverlappingConfirmed(ctx context.Context, roomID int64, r Range) (int64, error)
	InsertBooking(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) error
}

type BookingRepository interface {
	Store
	// Reserve runs fn in a transaction holding a lock on the room row.
	Reserve(ctx context.Context, roomID int64, fn func(Store) error) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, pred access.Predicate, f ListFilter) ([]domain.Booking, error)
}

type NotificationSender interface {
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error
}

// OutcomeRecorder counts booking attempts by outcome.
type OutcomeRecorder interface {
	RecordBookingOutcome(outcome string)
}
