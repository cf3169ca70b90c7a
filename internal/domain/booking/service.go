package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

type CreateInput struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
}

type AvailabilityResult struct {
	RoomID     int64
	Range      Range
	Available  bool
	Nights     int
	TotalPrice float64
}

// transitions lists the statuses each status may move to.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:   {domain.BookingConfirmed, domain.BookingCancelled},
	domain.BookingConfirmed: {domain.BookingCancelled, domain.BookingCompleted},
}

func canTransition(from, to domain.BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	repo     BookingRepository
	policy   access.Policy
	locks    *roomLocks
	notifier NotificationSender
	outcomes OutcomeRecorder
	logger   log.Logger
	now      func() time.Time
}

// NewService wires the booking service. notifier and outcomes may be nil.
func NewService(repo BookingRepository, notifier NotificationSender, outcomes OutcomeRecorder, logger log.Logger) *Service {
	return &Service{
		repo:     repo,
		policy:   access.NewPolicy(),
		locks:    &roomLocks{},
		notifier: notifier,
		outcomes: outcomes,
		logger:   log.With(logger, "component", "booking"),
		now:      time.Now,
	}
}

// Create books a room for the actor. The availability check and the insert
// happen under the room lock and inside one transaction, so concurrent
// requests for the last slot cannot both succeed.
func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (*domain.Booking, error) {
	unlock := s.locks.lock(in.RoomID)
	defer unlock()

	var created *domain.Booking
	err := s.repo.Reserve(ctx, in.RoomID, func(st Store) error {
		room, err := st.FindRoomByID(ctx, in.RoomID)
		if err != nil {
			return err
		}

		r, err := NewGuard(NewEvaluator(st)).AuthorizeCreate(ctx, room, in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}

		total, err := ComputeTotalPrice(room.Price, r.CheckIn, r.CheckOut)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			UserID:     actor.UserID,
			RoomID:     room.ID,
			CheckIn:    r.CheckIn,
			CheckOut:   r.CheckOut,
			TotalPrice: total,
			Status:     domain.BookingConfirmed,
		}
		if err := st.InsertBooking(ctx, b); err != nil {
			return err
		}
		b.Room = room
		created = b
		return nil
	})
	s.recordOutcome(err)
	if err != nil {
		return nil, err
	}

	level.Info(s.logger).Log("msg", "booking created", "booking_id", created.ID, "room_id", created.RoomID, "user_id", created.UserID)
	if s.notifier != nil {
		if err := s.notifier.NotifyBookingConfirmed(ctx, created); err != nil {
			level.Warn(s.logger).Log("msg", "booking confirmation not sent", "booking_id", created.ID, "err", err)
		}
	}
	return created, nil
}

// Availability reports whether the room can be booked for the dates and
// what the stay would cost. A disabled room is reported as unavailable.
func (s *Service) Availability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	r, err := NewRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	free := false
	if room.IsAvailable {
		free, err = NewEvaluator(s.repo).hasCapacity(ctx, room, r)
		if err != nil {
			return nil, err
		}
	}

	total, err := ComputeTotalPrice(room.Price, r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		RoomID:     room.ID,
		Range:      r,
		Available:  free,
		Nights:     r.Nights(),
		TotalPrice: total,
	}, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Predicate(actor, access.Booking, access.Read).Check(ownershipOf(b)); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the bookings visible to the actor. Never ErrForbidden.
func (s *Service) List(ctx context.Context, actor access.Actor, f ListFilter) ([]domain.Booking, error) {
	return s.repo.List(ctx, s.policy.Predicate(actor, access.Booking, access.Read), f)
}

// ListManaged returns the bookings in hotels the actor manages. A manager's
// own stays elsewhere are excluded. Guests get an empty list.
func (s *Service) ListManaged(ctx context.Context, actor access.Actor, f ListFilter) ([]domain.Booking, error) {
	return s.repo.List(ctx, s.policy.Predicate(actor, access.Hotel, access.Write), f)
}

func (s *Service) Cancel(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, actor, id, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCancelled(ctx, b); err != nil {
			level.Warn(s.logger).Log("msg", "cancellation notice not sent", "booking_id", b.ID, "err", err)
		}
	}
	return b, nil
}

// Complete is reserved for managers and admins.
func (s *Service) Complete(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error) {
	if !actor.IsAdmin() && !actor.IsManager() {
		return nil, ErrForbidden
	}
	return s.transition(ctx, actor, id, domain.BookingCompleted)
}

// Confirm promotes a pending booking. Capacity is checked again because a
// pending booking never held a slot.
func (s *Service) Confirm(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error) {
	if !actor.IsAdmin() && !actor.IsManager() {
		return nil, ErrForbidden
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeModify(s.policy, actor, b); err != nil {
		return nil, err
	}
	if !canTransition(b.Status, domain.BookingConfirmed) {
		return nil, ErrInvalidStatusTransition
	}

	unlock := s.locks.lock(b.RoomID)
	defer unlock()

	now := s.now()
	err = s.repo.Reserve(ctx, b.RoomID, func(st Store) error {
		room, err := st.FindRoomByID(ctx, b.RoomID)
		if err != nil {
			return err
		}
		if _, err := NewGuard(NewEvaluator(st)).AuthorizeCreate(ctx, room, b.CheckIn, b.CheckOut); err != nil {
			return err
		}
		return st.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed, now)
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingConfirmed
	b.UpdatedAt = now
	return b, nil
}

func (s *Service) transition(ctx context.Context, actor access.Actor, id int64, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeModify(s.policy, actor, b); err != nil {
		return nil, err
	}
	if !canTransition(b.Status, to) {
		return nil, ErrInvalidStatusTransition
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to, now); err != nil {
		return nil, err
	}

	level.Info(s.logger).Log("msg", "booking status changed", "booking_id", b.ID, "from", b.Status, "to", to, "actor_id", actor.UserID)
	b.Status = to
	b.UpdatedAt = now
	if to == domain.BookingCancelled {
		b.CancelledAt = &now
	}
	return b, nil
}

func (s *Service) recordOutcome(err error) {
	if s.outcomes == nil {
		return
	}
	s.outcomes.RecordBookingOutcome(outcomeLabel(err))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRoomDisabled):
		return "room_disabled"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrRoomUnavailableForDates):
		return "unavailable"
	default:
		return "error"
	}
}
