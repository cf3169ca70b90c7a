// Package access decides which hotels, rooms and bookings an actor may see
// or change. Handlers never check roles inline; they ask the Policy for a
// Predicate and either test a single entity against it or turn it into a
// query scope.
package access

import "errors"

var ErrForbidden = errors.New("forbidden")

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleGuest   Role = "guest"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleGuest:
		return true
	}
	return false
}

// Actor is the authenticated caller.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
func (a Actor) IsManager() bool { return a.Role == RoleManager }

type Entity int

const (
	Hotel Entity = iota
	Room
	Booking
)

type Action int

const (
	Read Action = iota
	Write
)

// Ownership carries the identities an entity is owned through. ManagerID is
// the manager of the hotel the entity belongs to; BookerID is set for
// bookings only.
type Ownership struct {
	ManagerID *int64
	BookerID  int64
}

type predicateKind int

const (
	matchNone predicateKind = iota
	matchAll
	matchManagedBy
	matchBookedBy
	matchManagedOrBookedBy
)

// Predicate is the restriction an actor's access puts on one entity class.
// The zero value matches nothing.
type Predicate struct {
	kind   predicateKind
	userID int64
}

func All() Predicate { return Predicate{kind: matchAll} }
func None() Predicate { return Predicate{kind: matchNone} }
func ManagedBy(id int64) Predicate { return Predicate{kind: matchManagedBy, userID: id} }
func BookedBy(id int64) Predicate { return Predicate{kind: matchBookedBy, userID: id} }
func ManagedOrBookedBy(id int64) Predicate { return Predicate{kind: matchManagedOrBookedBy, userID: id} }
func (p Predicate) MatchesAll() bool { return p.kind == matchAll }
func (p Predicate) MatchesNone() bool { return p.kind == matchNone }

func (p Predicate) Allows(o Ownership) bool {
	switch p.kind {
	case matchAll:
		return true
	case matchManagedBy:
		return managedBy(o, p.userID)
	case matchBookedBy:
		return o.BookerID == p.userID
	case matchManagedOrBookedBy:
		return managedBy(o, p.userID) || o.BookerID == p.userID
	default:
		return false
	}
}

// Check is Allows turned into an error.
func (p Predicate) Check(o Ownership) error {
	if !p.Allows(o) {
		return ErrForbidden
	}
	return nil
}

func managedBy(o Ownership, userID int64) bool {
	return o.ManagerID != nil && *o.ManagerID == userID
}

type Policy struct{}

func NewPolicy() Policy { return Policy{} }

// Predicate returns the restriction for actor on entity when performing
// action. Unknown roles get nothing.
func (Policy) Predicate(actor Actor, entity Entity, action Action) Predicate {
	switch actor.Role {
	case RoleAdmin:
		return All()

	case RoleManager:
		if entity == Booking {
			return ManagedOrBookedBy(actor.UserID)
		}
		return ManagedBy(actor.UserID)

	case RoleGuest:
		switch entity {
		case Booking:
			return BookedBy(actor.UserID)
		default:
			if action == Read {
				return All()
			}
			return None()
		}
	}
	return None()
}
