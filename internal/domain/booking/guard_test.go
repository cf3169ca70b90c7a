package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

func TestGuard_RoomMissing(t *testing.T) {
	store := new(MockStore)
	_, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(context.Background(), nil, date(2024, 1, 2), date(2024, 1, 1))

	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "CountOverlappingConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_DisabledBeforeRange(t *testing.T) {
	store := new(MockStore)
	room := &domain.Room{ID: 1, IsAvailable: false}

	// reversed dates on a disabled room still report the disabled room
	_, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(context.Background(), room, date(2024, 1, 2), date(2024, 1, 1))

	assert.ErrorIs(t, err, ErrRoomDisabled)
	store.AssertNotCalled(t, "CountOverlappingConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_RangeBeforeCapacity(t *testing.T) {
	store := new(MockStore)
	room := &domain.Room{ID: 1, IsAvailable: true}

	_, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(context.Background(), room, date(2024, 1, 1), date(2024, 1, 1))

	assert.ErrorIs(t, err, ErrInvalidRange)
	store.AssertNotCalled(t, "CountOverlappingConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_CapacityExhausted(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	room := &domain.Room{ID: 1, IsAvailable: true}
	store.On("CountOverlappingConfirmed", ctx, int64(1), mock.AnythingOfType("booking.Range")).Return(int64(1), nil)

	_, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(ctx, room, date(2024, 1, 1), date(2024, 1, 3))
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)
}

func TestGuard_StoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	room := &domain.Room{ID: 1, IsAvailable: true}
	boom := errors.New("connection reset")
	store.On("CountOverlappingConfirmed", ctx, int64(1), mock.Anything).Return(int64(0), boom)

	_, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(ctx, room, date(2024, 1, 1), date(2024, 1, 3))
	assert.ErrorIs(t, err, boom)
}

func TestGuard_Success(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	room := &domain.Room{ID: 1, IsAvailable: true}
	store.On("CountOverlappingConfirmed", ctx, int64(1), mock.Anything).Return(int64(0), nil)

	r, err := NewGuard(NewEvaluator(store)).AuthorizeCreate(ctx, room, date(2024, 1, 1), date(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Nights())
	store.AssertExpectations(t)
}

func TestAuthorizeModify(t *testing.T) {
	policy := access.NewPolicy()
	managerID := int64(5)
	b := &domain.Booking{
		ID:     1,
		UserID: 10,
		Room:   &domain.Room{Hotel: &domain.Hotel{ManagerID: &managerID}},
	}

	assert.NoError(t, AuthorizeModify(policy, access.Actor{UserID: 10, Role: access.RoleGuest}, b))
	assert.ErrorIs(t, AuthorizeModify(policy, access.Actor{UserID: 11, Role: access.RoleGuest}, b), ErrForbidden)
	assert.NoError(t, AuthorizeModify(policy, access.Actor{UserID: 5, Role: access.RoleManager}, b))
	assert.ErrorIs(t, AuthorizeModify(policy, access.Actor{UserID: 6, Role: access.RoleManager}, b), ErrForbidden)
	assert.NoError(t, AuthorizeModify(policy, access.Actor{UserID: 99, Role: access.RoleAdmin}, b))
}
