package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestPolicy_Admin(t *testing.T) {
	p := NewPolicy()
	admin := Actor{UserID: 1, Role: RoleAdmin}

	for _, e := range []Entity{Hotel, Room, Booking} {
		for _, a := range []Action{Read, Write} {
			pred := p.Predicate(admin, e, a)
			assert.True(t, pred.MatchesAll())
			assert.True(t, pred.Allows(Ownership{ManagerID: ptr(99), BookerID: 98}))
		}
	}
}

func TestPolicy_Manager(t *testing.T) {
	p := NewPolicy()
	mgr := Actor{UserID: 7, Role: RoleManager}

	own := Ownership{ManagerID: ptr(7)}
	other := Ownership{ManagerID: ptr(8)}
	unmanaged := Ownership{}

	for _, e := range []Entity{Hotel, Room} {
		for _, a := range []Action{Read, Write} {
			pred := p.Predicate(mgr, e, a)
			assert.True(t, pred.Allows(own))
			assert.False(t, pred.Allows(other))
			assert.False(t, pred.Allows(unmanaged))
			assert.ErrorIs(t, pred.Check(other), ErrForbidden)
		}
	}

	bookings := p.Predicate(mgr, Booking, Write)
	assert.True(t, bookings.Allows(Ownership{ManagerID: ptr(7), BookerID: 50}))
	assert.True(t, bookings.Allows(Ownership{ManagerID: ptr(8), BookerID: 7}), "own booking elsewhere")
	assert.False(t, bookings.Allows(Ownership{ManagerID: ptr(8), BookerID: 50}))
}

func TestPolicy_Guest(t *testing.T) {
	p := NewPolicy()
	guest := Actor{UserID: 3, Role: RoleGuest}

	assert.True(t, p.Predicate(guest, Hotel, Read).MatchesAll())
	assert.True(t, p.Predicate(guest, Room, Read).MatchesAll())
	assert.True(t, p.Predicate(guest, Hotel, Write).MatchesNone())
	assert.ErrorIs(t, p.Predicate(guest, Room, Write).Check(Ownership{ManagerID: ptr(3)}), ErrForbidden)

	bookings := p.Predicate(guest, Booking, Write)
	assert.NoError(t, bookings.Check(Ownership{BookerID: 3}))
	assert.ErrorIs(t, bookings.Check(Ownership{BookerID: 4}), ErrForbidden)
}

func TestPolicy_UnknownRoleGetsNothing(t *testing.T) {
	pred := NewPolicy().Predicate(Actor{UserID: 1, Role: "superuser"}, Hotel, Read)
	assert.True(t, pred.MatchesNone())
	assert.False(t, pred.Allows(Ownership{ManagerID: ptr(1), BookerID: 1}))
}

func TestZeroPredicateMatchesNothing(t *testing.T) {
	var pred Predicate
	assert.False(t, pred.Allows(Ownership{ManagerID: ptr(1)}))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleGuest.Valid())
	assert.False(t, Role("owner").Valid())
}
