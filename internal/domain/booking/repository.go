package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

type ListFilter struct {
	Status  domain.BookingStatus
	HotelID int64
	RoomID  int64
	Skip    int
	Limit   int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindRoomByID(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CountOverlappingConfirmed counts confirmed bookings of the room with
// check_in < r.CheckOut and check_out > r.CheckIn.
func (r *Repository) CountOverlappingConfirmed(ctx context.Context, roomID int64, rg Range) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ? AND status = ?", roomID, domain.BookingConfirmed).
		Where("check_in < ? AND check_out > ?", rg.CheckOut, rg.CheckIn).
		Count(&n).Error
	return n, err
}

func (r *Repository) InsertBooking(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

// Reserve locks the room row for the duration of fn. On PostgreSQL this is
// SELECT ... FOR UPDATE; SQLite has a single writer and ignores the clause.
func (r *Repository) Reserve(ctx context.Context, roomID int64, fn func(Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&room, roomID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Room.Hotel").
		Preload("User").
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) List(ctx context.Context, pred access.Predicate, f ListFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Scopes(access.BookingScope(pred)).
		Preload("Room.Hotel").
		Preload("User")

	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.RoomID > 0 {
		q = q.Where("bookings.room_id = ?", f.RoomID)
	}
	if f.HotelID > 0 {
		q = q.Where("bookings.room_id IN (SELECT id FROM rooms WHERE hotel_id = ?)", f.HotelID)
	}
	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []domain.Booking
	if err := q.Order("bookings.created_at DESC, bookings.id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a booking from one status to another. It fails with
// ErrInvalidStatusTransition when the stored status is no longer from.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) error {
	updates := map[string]any{
		"status":     to,
		"updated_at": at,
	}
	if to == domain.BookingCancelled {
		updates["cancelled_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatusTransition
	}
	return nil
}
