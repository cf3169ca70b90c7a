package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/pkg/paging"
)

type HotelFilters struct {
	Location string
	Search   string
	Skip     int
	Limit    int
}

type RoomFilters struct {
	HotelID int64
	Skip    int
	Limit   int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListHotels returns the hotels visible under pred together with the total
// count before pagination.
func (r *Repository) ListHotels(ctx context.Context, pred access.Predicate, f HotelFilters) ([]domain.Hotel, int64, error) {
	var hotels []domain.Hotel
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Hotel{}).
		Scopes(access.HotelScope(pred))

	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(f.Location))+"%")
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+s+"%")
	}

	// count on a clone so pagination does not leak into it
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("id ASC").
		Offset(f.Skip).
		Limit(limitOrDefault(f.Limit)).
		Find(&hotels).Error
	return hotels, total, err
}

// MinRoomPrices maps hotel id to its cheapest room price. Hotels without
// rooms are absent from the map.
func (r *Repository) MinRoomPrices(ctx context.Context, hotelIDs []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(hotelIDs))
	if len(hotelIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		HotelID  int64
		MinPrice float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Select("hotel_id, MIN(price) AS min_price").
		Where("hotel_id IN ?", hotelIDs).
		Group("hotel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.HotelID] = row.MinPrice
	}
	return out, nil
}

func (r *Repository) GetHotel(ctx context.Context, id int64, withRooms bool) (*domain.Hotel, error) {
	q := r.db.WithContext(ctx)
	if withRooms {
		q = q.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_number ASC")
		})
	}

	var hotel domain.Hotel
	if err := q.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *Repository) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *Repository) UpdateHotel(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(h).Error
}

// DeleteHotel removes the hotel with its rooms and their bookings.
func (r *Repository) DeleteHotel(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := tx.Model(&domain.Room{}).Select("id").Where("hotel_id = ?", id)
		if err := tx.Where("room_id IN (?)", rooms).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", id).Delete(&domain.Room{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Hotel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrHotelNotFound
		}
		return nil
	})
}

func (r *Repository) ListRooms(ctx context.Context, pred access.Predicate, f RoomFilters) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Scopes(access.RoomScope(pred))

	if f.HotelID > 0 {
		q = q.Where("rooms.hotel_id = ?", f.HotelID)
	}

	var rooms []domain.Room
	err := q.Order("rooms.hotel_id ASC, rooms.room_number ASC").
		Offset(f.Skip).
		Limit(limitOrDefault(f.Limit)).
		Find(&rooms).Error
	return rooms, err
}

func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *Repository) CreateRoom(ctx context.Context, room *domain.Room) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrRoomNumberTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateRoom(ctx context.Context, room *domain.Room) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(room).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrRoomNumberTaken
		}
		return err
	}
	return nil
}

// DeleteRoom removes the room and its bookings.
func (r *Repository) DeleteRoom(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}

// IsActiveManager reports whether userID can be assigned to a hotel.
func (r *Repository) IsActiveManager(ctx context.Context, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND is_active = ? AND role = ?", userID, true, access.RoleManager).
		Count(&n).Error
	return n > 0, err
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return paging.DefaultLimit
	}
	return limit
}
