package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	klog "hotelbooking/internal/pkg/logger"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	hotel    *domain.Hotel
	room     *domain.Room
	manager  access.Actor
	stranger access.Actor
	guest    access.Actor
	other    access.Actor
	admin    access.Actor
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role access.Role) access.Actor {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", FullName: email, Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return access.Actor{UserID: u.ID, Role: role}
}

func setupFixture(t *testing.T, maxBookings *int) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db}

	f.manager = createUser(t, db, "manager@hotel.com", access.RoleManager)
	f.stranger = createUser(t, db, "other-manager@hotel.com", access.RoleManager)
	f.guest = createUser(t, db, "guest@hotel.com", access.RoleGuest)
	f.other = createUser(t, db, "guest2@hotel.com", access.RoleGuest)
	f.admin = createUser(t, db, "admin@hotel.com", access.RoleAdmin)

	f.hotel = &domain.Hotel{Name: "Grand", Location: "Almaty", ManagerID: &f.manager.UserID}
	require.NoError(t, db.Create(f.hotel).Error)

	f.room = &domain.Room{HotelID: f.hotel.ID, RoomNumber: "101", Price: 100, Capacity: 2, MaxBookings: maxBookings, IsAvailable: true}
	require.NoError(t, db.Create(f.room).Error)

	f.svc = NewService(NewRepository(db), nil, nil, klog.Nop())
	return f
}

func (f *fixture) book(actor access.Actor, in, out int) (*domain.Booking, error) {
	return f.svc.Create(context.Background(), actor, CreateInput{
		RoomID:   f.room.ID,
		CheckIn:  date(2024, 1, in),
		CheckOut: date(2024, 1, out),
	})
}

func TestCreate_PersistsConfirmedWithPrice(t *testing.T) {
	f := setupFixture(t, nil)

	b, err := f.book(f.guest, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, f.guest.UserID, b.UserID)

	var stored domain.Booking
	require.NoError(t, f.db.First(&stored, b.ID).Error)
	assert.Equal(t, 300.0, stored.TotalPrice)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.True(t, stored.CheckIn.Equal(date(2024, 1, 1)))
	assert.True(t, stored.CheckOut.Equal(date(2024, 1, 4)))
}

func TestCreate_SingleSlotRejectsOverlapAcceptsDisjoint(t *testing.T) {
	f := setupFixture(t, nil)

	_, err := f.book(f.guest, 10, 15)
	require.NoError(t, err)

	_, err = f.book(f.other, 12, 13)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)
	_, err = f.book(f.other, 8, 11)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)

	_, err = f.book(f.other, 20, 22)
	assert.NoError(t, err)
}

func TestCreate_HalfOpenBoundary(t *testing.T) {
	f := setupFixture(t, intPtr(1))

	_, err := f.book(f.guest, 1, 5)
	require.NoError(t, err)

	_, err = f.book(f.other, 5, 8)
	assert.NoError(t, err, "checkout on Jan 5 frees the room for a Jan 5 check-in")
}

func TestCreate_MaxBookingsTwo(t *testing.T) {
	f := setupFixture(t, intPtr(2))

	_, err := f.book(f.guest, 1, 5)
	require.NoError(t, err)
	_, err = f.book(f.other, 3, 6)
	require.NoError(t, err)

	_, err = f.book(f.admin, 4, 5)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)
}

func TestCreate_ZeroMaxBookingsNeverBookable(t *testing.T) {
	f := setupFixture(t, intPtr(0))

	_, err := f.book(f.guest, 1, 2)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)
}

func TestCreate_OnlyConfirmedBookingsBlock(t *testing.T) {
	f := setupFixture(t, nil)

	for _, status := range []domain.BookingStatus{domain.BookingCancelled, domain.BookingPending, domain.BookingCompleted} {
		require.NoError(t, f.db.Create(&domain.Booking{
			UserID: f.other.UserID, RoomID: f.room.ID,
			CheckIn: date(2024, 1, 1), CheckOut: date(2024, 1, 10),
			TotalPrice: 900, Status: status,
		}).Error)
	}

	_, err := f.book(f.guest, 2, 4)
	assert.NoError(t, err)
}

func TestCreate_Errors(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.guest, CreateInput{RoomID: 9999, CheckIn: date(2024, 1, 1), CheckOut: date(2024, 1, 2)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.book(f.guest, 3, 3)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = f.book(f.guest, 4, 3)
	assert.ErrorIs(t, err, ErrInvalidRange)

	require.NoError(t, f.db.Model(f.room).Update("is_available", false).Error)
	_, err = f.book(f.guest, 1, 2)
	assert.ErrorIs(t, err, ErrRoomDisabled)

	var n int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Count(&n).Error)
	assert.Zero(t, n, "failed checks never write")
}

func TestCreate_ConcurrentRequestsForLastSlot(t *testing.T) {
	f := setupFixture(t, intPtr(1))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.book(f.guest, 1, 3)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrRoomUnavailableForDates)
	}
	assert.Equal(t, 1, created)

	var n int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Where("status = ?", domain.BookingConfirmed).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

type MockOutcomes struct {
	mock.Mock
}

func (m *MockOutcomes) RecordBookingOutcome(outcome string) {
	m.Called(outcome)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockNotifier) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func TestCreate_RecordsOutcomeAndNotifies(t *testing.T) {
	f := setupFixture(t, nil)
	outcomes := new(MockOutcomes)
	notifier := new(MockNotifier)
	f.svc = NewService(NewRepository(f.db), notifier, outcomes, klog.Nop())

	outcomes.On("RecordBookingOutcome", "created").Once()
	outcomes.On("RecordBookingOutcome", "unavailable").Once()
	notifier.On("NotifyBookingConfirmed", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(fmt.Errorf("smtp down")).Once()

	_, err := f.book(f.guest, 1, 3)
	require.NoError(t, err, "notification failures do not fail the booking")
	_, err = f.book(f.other, 2, 3)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)

	outcomes.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCancel_Authorization(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	b, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.other, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Cancel(ctx, f.stranger, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.Cancel(ctx, f.guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = f.svc.Cancel(ctx, f.guest, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	// the slot is free again
	_, err = f.book(f.other, 1, 3)
	assert.NoError(t, err)
}

func TestCancel_ManagerAndAdmin(t *testing.T) {
	f := setupFixture(t, intPtr(2))
	ctx := context.Background()

	b1, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)
	b2, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.manager, b1.ID)
	assert.NoError(t, err)
	_, err = f.svc.Cancel(ctx, f.admin, b2.ID)
	assert.NoError(t, err)
}

func TestCancel_NotFound(t *testing.T) {
	f := setupFixture(t, nil)
	_, err := f.svc.Cancel(context.Background(), f.admin, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplete(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	b, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, f.guest, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.Complete(ctx, f.stranger, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	done, err := f.svc.Complete(ctx, f.manager, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, done.Status)

	_, err = f.svc.Cancel(ctx, f.guest, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition, "completed is terminal")
}

func TestConfirm_PendingRechecksCapacity(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	pending := &domain.Booking{
		UserID: f.other.UserID, RoomID: f.room.ID,
		CheckIn: date(2024, 1, 2), CheckOut: date(2024, 1, 4),
		TotalPrice: 200, Status: domain.BookingPending,
	}
	require.NoError(t, f.db.Create(pending).Error)

	_, err := f.svc.Confirm(ctx, f.other, pending.ID)
	assert.ErrorIs(t, err, ErrForbidden, "guests cannot confirm")

	_, err = f.book(f.guest, 1, 3)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, f.manager, pending.ID)
	assert.ErrorIs(t, err, ErrRoomUnavailableForDates)

	free := &domain.Booking{
		UserID: f.other.UserID, RoomID: f.room.ID,
		CheckIn: date(2024, 1, 10), CheckOut: date(2024, 1, 12),
		TotalPrice: 200, Status: domain.BookingPending,
	}
	require.NoError(t, f.db.Create(free).Error)
	confirmed, err := f.svc.Confirm(ctx, f.admin, free.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, confirmed.Status)
}

func TestGetAndList_Scoped(t *testing.T) {
	f := setupFixture(t, intPtr(5))
	ctx := context.Background()

	mine, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)
	theirs, err := f.book(f.other, 1, 3)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, f.guest, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand", got.Room.Hotel.Name)

	_, err = f.svc.Get(ctx, f.guest, theirs.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := f.svc.List(ctx, f.guest, ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	list, err = f.svc.List(ctx, f.manager, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.svc.List(ctx, f.stranger, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "a manager of no hotel sees nothing, without error")

	list, err = f.svc.List(ctx, f.admin, ListFilter{Status: domain.BookingCancelled})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListManaged_ExcludesOwnStaysElsewhere(t *testing.T) {
	f := setupFixture(t, intPtr(5))
	ctx := context.Background()

	elsewhere := &domain.Hotel{Name: "Rival", Location: "Astana", ManagerID: &f.stranger.UserID}
	require.NoError(t, f.db.Create(elsewhere).Error)
	rivalRoom := &domain.Room{HotelID: elsewhere.ID, RoomNumber: "7", Price: 80, Capacity: 1, IsAvailable: true}
	require.NoError(t, f.db.Create(rivalRoom).Error)

	guestStay, err := f.book(f.guest, 1, 3)
	require.NoError(t, err)
	ownStay, err := f.svc.Create(ctx, f.manager, CreateInput{RoomID: rivalRoom.ID, CheckIn: date(2024, 1, 1), CheckOut: date(2024, 1, 2)})
	require.NoError(t, err)

	visible, err := f.svc.List(ctx, f.manager, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	managed, err := f.svc.ListManaged(ctx, f.manager, ListFilter{})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, guestStay.ID, managed[0].ID)

	managed, err = f.svc.ListManaged(ctx, f.stranger, ListFilter{})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, ownStay.ID, managed[0].ID)

	managed, err = f.svc.ListManaged(ctx, f.guest, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, managed)

	managed, err = f.svc.ListManaged(ctx, f.admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, managed, 2)
}

func TestAvailability(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.Availability(ctx, f.room.ID, date(2024, 1, 1), date(2024, 1, 4))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 300.0, res.TotalPrice)

	_, err = f.book(f.guest, 2, 3)
	require.NoError(t, err)

	res, err = f.svc.Availability(ctx, f.room.ID, date(2024, 1, 1), date(2024, 1, 4))
	require.NoError(t, err)
	assert.False(t, res.Available)

	_, err = f.svc.Availability(ctx, 999, date(2024, 1, 1), date(2024, 1, 4))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_CountOverlappingConfirmed(t *testing.T) {
	f := setupFixture(t, intPtr(3))
	repo := NewRepository(f.db)
	ctx := context.Background()

	_, err := f.book(f.guest, 1, 5)
	require.NoError(t, err)
	_, err = f.book(f.guest, 5, 8)
	require.NoError(t, err)

	n, err := repo.CountOverlappingConfirmed(ctx, f.room.ID, mustRange(t, date(2024, 1, 4), date(2024, 1, 6)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountOverlappingConfirmed(ctx, f.room.ID, mustRange(t, date(2024, 1, 8), date(2024, 1, 9)))
	require.NoError(t, err)
	assert.Zero(t, n)
}
