package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	klog "hotelbooking/internal/pkg/logger"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	admin   access.Actor
	manager access.Actor
	rival   access.Actor
	guest   access.Actor
	hotel   *domain.Hotel
	other   *domain.Hotel
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role access.Role) access.Actor {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return access.Actor{UserID: u.ID, Role: role}
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db, svc: NewService(NewRepository(db), klog.Nop())}

	f.admin = createUser(t, db, "admin@hotel.com", access.RoleAdmin)
	f.manager = createUser(t, db, "manager@hotel.com", access.RoleManager)
	f.rival = createUser(t, db, "rival@hotel.com", access.RoleManager)
	f.guest = createUser(t, db, "guest@hotel.com", access.RoleGuest)

	f.hotel = &domain.Hotel{Name: "Grand", Location: "Almaty", ManagerID: &f.manager.UserID}
	f.other = &domain.Hotel{Name: "Rival Inn", Location: "Astana", ManagerID: &f.rival.UserID}
	require.NoError(t, db.Create(f.hotel).Error)
	require.NoError(t, db.Create(f.other).Error)

	for _, r := range []domain.Room{
		{HotelID: f.hotel.ID, RoomNumber: "101", Price: 120, Capacity: 2, IsAvailable: true},
		{HotelID: f.hotel.ID, RoomNumber: "102", Price: 80, Capacity: 1, IsAvailable: true},
		{HotelID: f.other.ID, RoomNumber: "1", Price: 50, Capacity: 1, IsAvailable: true},
	} {
		room := r
		require.NoError(t, db.Create(&room).Error)
	}
	return f
}

func (f *fixture) roomOf(t *testing.T, hotelID int64, number string) *domain.Room {
	t.Helper()
	var room domain.Room
	require.NoError(t, f.db.Where("hotel_id = ? AND room_number = ?", hotelID, number).First(&room).Error)
	return &room
}

func TestPublicHotels_PricePerNight(t *testing.T) {
	f := setupFixture(t)
	empty := &domain.Hotel{Name: "Empty", Location: "Shymkent"}
	require.NoError(t, f.db.Create(empty).Error)

	hotels, total, err := f.svc.PublicHotels(context.Background(), HotelFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, hotels, 3)

	byName := map[string]HotelResponse{}
	for _, h := range hotels {
		byName[h.Name] = h
	}
	assert.Equal(t, 80.0, byName["Grand"].PricePerNight)
	assert.Equal(t, 50.0, byName["Rival Inn"].PricePerNight)
	assert.Equal(t, 0.0, byName["Empty"].PricePerNight)
}

func TestPublicHotels_FiltersAndPaging(t *testing.T) {
	f := setupFixture(t)

	hotels, total, err := f.svc.PublicHotels(context.Background(), HotelFilters{Location: "alma", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Grand", hotels[0].Name)

	hotels, total, err = f.svc.PublicHotels(context.Background(), HotelFilters{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Rival Inn", hotels[0].Name)
}

func TestPublicHotel_IncludesRooms(t *testing.T) {
	f := setupFixture(t)

	h, err := f.svc.PublicHotel(context.Background(), f.hotel.ID)
	require.NoError(t, err)
	require.Len(t, h.Rooms, 2)
	assert.Equal(t, "101", h.Rooms[0].RoomNumber)
	assert.Equal(t, 80.0, h.PricePerNight)

	_, err = f.svc.PublicHotel(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrHotelNotFound)

	_, err = f.svc.PublicHotelRooms(context.Background(), 9999, 0, 10)
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestManagedHotels_Scoped(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	hotels, _, err := f.svc.ManagedHotels(ctx, f.manager, HotelFilters{})
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, f.hotel.ID, hotels[0].ID)

	hotels, _, err = f.svc.ManagedHotels(ctx, f.admin, HotelFilters{})
	require.NoError(t, err)
	assert.Len(t, hotels, 2)

	hotels, _, err = f.svc.ManagedHotels(ctx, f.guest, HotelFilters{})
	require.NoError(t, err)
	assert.Empty(t, hotels)

	_, err = f.svc.ManagedHotel(ctx, f.manager, f.other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateHotel(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("manager owns what they create", func(t *testing.T) {
		h, err := f.svc.CreateHotel(ctx, f.manager, HotelRequest{Name: "New", Location: "X", ManagerID: &f.rival.UserID})
		require.NoError(t, err)
		require.NotNil(t, h.ManagerID)
		assert.Equal(t, f.manager.UserID, *h.ManagerID)
	})

	t.Run("admin assigns manager", func(t *testing.T) {
		h, err := f.svc.CreateHotel(ctx, f.admin, HotelRequest{Name: "Assigned", Location: "X", ManagerID: &f.rival.UserID})
		require.NoError(t, err)
		assert.Equal(t, f.rival.UserID, *h.ManagerID)
	})

	t.Run("admin without manager", func(t *testing.T) {
		h, err := f.svc.CreateHotel(ctx, f.admin, HotelRequest{Name: "Orphan", Location: "X"})
		require.NoError(t, err)
		assert.Nil(t, h.ManagerID)
	})

	t.Run("admin assigns guest", func(t *testing.T) {
		_, err := f.svc.CreateHotel(ctx, f.admin, HotelRequest{Name: "Bad", Location: "X", ManagerID: &f.guest.UserID})
		assert.ErrorIs(t, err, ErrInvalidManager)
	})

	t.Run("guest", func(t *testing.T) {
		_, err := f.svc.CreateHotel(ctx, f.guest, HotelRequest{Name: "Nope", Location: "X"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdateHotel(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	name := "Grand Plaza"

	h, err := f.svc.UpdateHotel(ctx, f.manager, f.hotel.ID, UpdateHotelRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza", h.Name)
	assert.Equal(t, "Almaty", h.Location)

	_, err = f.svc.UpdateHotel(ctx, f.rival, f.hotel.ID, UpdateHotelRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.UpdateHotel(ctx, f.manager, f.hotel.ID, UpdateHotelRequest{ManagerID: &f.rival.UserID})
	assert.ErrorIs(t, err, ErrForbidden)

	h, err = f.svc.UpdateHotel(ctx, f.admin, f.hotel.ID, UpdateHotelRequest{ManagerID: &f.rival.UserID})
	require.NoError(t, err)
	assert.Equal(t, f.rival.UserID, *h.ManagerID)
}

func TestDeleteHotel_Cascades(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	room := f.roomOf(t, f.hotel.ID, "101")

	b := &domain.Booking{UserID: f.guest.UserID, RoomID: room.ID, CheckIn: day(1), CheckOut: day(3), TotalPrice: 240, Status: domain.BookingConfirmed}
	require.NoError(t, f.db.Create(b).Error)

	assert.ErrorIs(t, f.svc.DeleteHotel(ctx, f.rival, f.hotel.ID), ErrForbidden)
	require.NoError(t, f.svc.DeleteHotel(ctx, f.manager, f.hotel.ID))

	var n int64
	f.db.Model(&domain.Room{}).Where("hotel_id = ?", f.hotel.ID).Count(&n)
	assert.Zero(t, n)
	f.db.Model(&domain.Booking{}).Where("id = ?", b.ID).Count(&n)
	assert.Zero(t, n)
	f.db.Model(&domain.Room{}).Where("hotel_id = ?", f.other.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, f.svc.DeleteHotel(ctx, f.admin, f.hotel.ID), ErrHotelNotFound)
}

func TestManagedRooms_Scoped(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rooms, err := f.svc.ManagedRooms(ctx, f.manager, RoomFilters{})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	rooms, err = f.svc.ManagedRooms(ctx, f.manager, RoomFilters{HotelID: f.other.ID})
	require.NoError(t, err)
	assert.Empty(t, rooms)

	rooms, err = f.svc.ManagedRooms(ctx, f.admin, RoomFilters{HotelID: f.other.ID})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = f.svc.ManagedRoom(ctx, f.manager, f.roomOf(t, f.other.ID, "1").ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateRoom(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, f.manager, f.hotel.ID, RoomRequest{RoomNumber: "201", Type: domain.RoomSuite, Price: priceOf(300)})
	require.NoError(t, err)
	assert.Equal(t, 300.0, room.Price)
	assert.Equal(t, 1, room.Capacity)
	assert.True(t, room.IsAvailable)
	assert.Equal(t, f.hotel.ID, room.HotelID)

	_, err = f.svc.CreateRoom(ctx, f.manager, f.hotel.ID, RoomRequest{RoomNumber: "201", Price: priceOf(100)})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	_, err = f.svc.CreateRoom(ctx, f.manager, f.other.ID, RoomRequest{RoomNumber: "2", Price: priceOf(100)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.CreateRoom(ctx, f.manager, 9999, RoomRequest{RoomNumber: "2", Price: priceOf(100)})
	assert.ErrorIs(t, err, ErrHotelNotFound)

	closed := false
	room, err = f.svc.CreateRoom(ctx, f.admin, f.other.ID, RoomRequest{RoomNumber: "2", Price: priceOf(100), IsAvailable: &closed})
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)
}

func TestUpdateRoomAndAvailability(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	room := f.roomOf(t, f.hotel.ID, "101")
	price := 150.0

	updated, err := f.svc.UpdateRoom(ctx, f.manager, room.ID, UpdateRoomRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
	assert.Equal(t, "101", updated.RoomNumber)

	taken := "102"
	_, err = f.svc.UpdateRoom(ctx, f.manager, room.ID, UpdateRoomRequest{RoomNumber: &taken})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	_, err = f.svc.SetRoomAvailability(ctx, f.rival, room.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err = f.svc.SetRoomAvailability(ctx, f.manager, room.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	var stored domain.Room
	require.NoError(t, f.db.First(&stored, room.ID).Error)
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, 150.0, stored.Price)
}

func TestDeleteRoom(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	room := f.roomOf(t, f.hotel.ID, "102")

	assert.ErrorIs(t, f.svc.DeleteRoom(ctx, f.rival, room.ID), ErrForbidden)
	require.NoError(t, f.svc.DeleteRoom(ctx, f.manager, room.ID))
	assert.ErrorIs(t, f.svc.DeleteRoom(ctx, f.manager, room.ID), ErrRoomNotFound)
}
