package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)


type Totals struct {
	Hotels           int64
	Rooms            int64
	Bookings         int64
	Revenue          float64
	ActiveToday      int64
	BookingsByStatus map[string]int64
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountUsers(ctx context.Context) (total, active int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&domain.User{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// Totals aggregates hotels, rooms and bookings visible under pred. A booking
// is active today when it is confirmed and check_in <= today < check_out.
func (r *Repository) Totals(ctx context.Context, pred access.Predicate, today time.Time) (*Totals, error) {
	db := r.db.WithContext(ctx)
	t := &Totals{BookingsByStatus: make(map[string]int64)}

	if err := db.Model(&domain.Hotel{}).Scopes(access.HotelScope(pred)).Count(&t.Hotels).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Room{}).Scopes(access.RoomScope(pred)).Count(&t.Rooms).Error; err != nil {
		return nil, err
	}

	bookings := func() *gorm.DB {
		return db.Model(&domain.Booking{}).Scopes(access.BookingScope(pred))
	}

	if err := bookings().Count(&t.Bookings).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Revenue float64 `gorm:"column:revenue"`
	}
	if err := bookings().
		Select("COALESCE(SUM(total_price), 0) AS revenue").
		Where("status IN ?", domain.RevenueStatuses()).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	t.Revenue = revenue.Revenue

	if err := bookings().
		Where("status = ?", domain.BookingConfirmed).
		Where("check_in <= ? AND check_out > ?", today, today).
		Count(&t.ActiveToday).Error; err != nil {
		return nil, err
	}

	var statusCounts []struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	if err := bookings().
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		t.BookingsByStatus[sc.Status] = sc.Count
	}

	return t, nil
}

// RecentBookings returns the newest n bookings visible under pred.
func (r *Repository) RecentBookings(ctx context.Context, pred access.Predicate, n int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Scopes(access.BookingScope(pred)).
		Preload("Room.Hotel").
		Preload("User").
		Order("bookings.id DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}
