package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

type Guard struct {
	eval *Evaluator
}

func NewGuard(eval *Evaluator) *Guard {
	return &Guard{eval: eval}
}

// AuthorizeCreate checks, in order: the room exists, its manual flag is on,
// the range is valid, and capacity remains. The first failure wins.
func (g *Guard) AuthorizeCreate(ctx context.Context, room *domain.Room, checkIn, checkOut time.Time) (Range, error) {
	if room == nil {
		return Range{}, ErrNotFound
	}
	if !room.IsAvailable {
		return Range{}, ErrRoomDisabled
	}

	r, err := NewRange(checkIn, checkOut)
	if err != nil {
		return Range{}, err
	}

	ok, err := g.eval.hasCapacity(ctx, room, r)
	if err != nil {
		return Range{}, err
	}
	if !ok {
		return Range{}, ErrRoomUnavailableForDates
	}
	return r, nil
}

// AuthorizeModify allows the booking's guest, the manager of the owning
// hotel and admins.
func AuthorizeModify(policy access.Policy, actor access.Actor, b *domain.Booking) error {
	return policy.Predicate(actor, access.Booking, access.Write).Check(ownershipOf(b))
}

func ownershipOf(b *domain.Booking) access.Ownership {
	o := access.Ownership{BookerID: b.UserID}
	if b.Room != nil && b.Room.Hotel != nil {
		o.ManagerID = b.Room.Hotel.ManagerID
	}
	return o
}
