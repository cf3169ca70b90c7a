package notification

import (
	"context"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/mailer"
	"hotelbooking/internal/pkg/validator"
)

type EmailSender interface {
	SendBookingConfirmed(ctx context.Context, to string, d mailer.BookingDetails) error
	SendBookingCancelled(ctx context.Context, to string, d mailer.BookingDetails) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service turns booking lifecycle events into guest emails.
type Service struct {
	users UserLookup
	email EmailSender
}

func NewService(users UserLookup, email EmailSender) *Service {
	return &Service{users: users, email: email}
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	to, details, err := s.details(ctx, b)
	if err != nil {
		return err
	}
	return s.email.SendBookingConfirmed(ctx, to, details)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	to, details, err := s.details(ctx, b)
	if err != nil {
		return err
	}
	return s.email.SendBookingCancelled(ctx, to, details)
}

func (s *Service) details(ctx context.Context, b *domain.Booking) (string, mailer.BookingDetails, error) {
	guest := b.User
	if guest == nil {
		u, err := s.users.GetByID(ctx, b.UserID)
		if err != nil {
			return "", mailer.BookingDetails{}, fmt.Errorf("load guest %d: %w", b.UserID, err)
		}
		guest = u
	}

	d := mailer.BookingDetails{
		BookingID:  b.ID,
		GuestName:  guest.FullName,
		CheckIn:    b.CheckIn.UTC().Format(validator.DateLayout),
		CheckOut:   b.CheckOut.UTC().Format(validator.DateLayout),
		Nights:     int(b.CheckOut.Sub(b.CheckIn).Hours() / 24),
		TotalPrice: b.TotalPrice,
	}
	if d.GuestName == "" {
		d.GuestName = guest.Email
	}
	if b.Room != nil {
		d.RoomNumber = b.Room.RoomNumber
		if b.Room.Hotel != nil {
			d.HotelName = b.Room.Hotel.Name
		}
	}
	return guest.Email, d, nil
}
