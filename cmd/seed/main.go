package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/domain/auth"
	applog "hotelbooking/internal/pkg/logger"
)

type seedUser struct {
	email    string
	password string
	name     string
	role     access.Role
}

var users = []seedUser{
	{"admin@hotel.local", "admin123", "Administrator", access.RoleAdmin},
	{"manager@hotel.local", "manager123", "Hotel Manager", access.RoleManager},
	{"guest@hotel.local", "guest123", "Demo Guest", access.RoleGuest},
}

type seedHotel struct {
	name     string
	location string
	desc     string
	rooms    []domain.Room
}

var hotels = []seedHotel{
	{
		name:     "Grand Plaza",
		location: "Almaty",
		desc:     "City center hotel with mountain views.",
		rooms: []domain.Room{
			{RoomNumber: "101", Type: domain.RoomSingle, Price: 60, Capacity: 1, IsAvailable: true},
			{RoomNumber: "102", Type: domain.RoomDouble, Price: 95, Capacity: 2, IsAvailable: true},
			{RoomNumber: "201", Type: domain.RoomSuite, Price: 210, Capacity: 4, IsAvailable: true},
		},
	},
	{
		name:     "Seaside Inn",
		location: "Aktau",
		desc:     "Small family hotel on the Caspian shore.",
		rooms: []domain.Room{
			{RoomNumber: "1", Type: domain.RoomDouble, Price: 70, Capacity: 2, IsAvailable: true},
			{RoomNumber: "2", Type: domain.RoomDeluxe, Price: 130, Capacity: 3, IsAvailable: true},
		},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := applog.New(cfg.LogLevel)

	if err := seed(context.Background(), cfg, logger); err != nil {
		level.Error(logger).Log("msg", "seed failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "seed completed")
}

func seed(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, domain.Models()...); err != nil {
		return err
	}

	var managerID int64
	for _, su := range users {
		u, err := ensureUser(ctx, db, su)
		if err != nil {
			return fmt.Errorf("user %s: %w", su.email, err)
		}
		if su.role == access.RoleManager {
			managerID = u.ID
		}
		level.Info(logger).Log("msg", "user ready", "email", u.Email, "role", u.Role)
	}

	for _, sh := range hotels {
		h, err := ensureHotel(ctx, db, sh, managerID)
		if err != nil {
			return fmt.Errorf("hotel %s: %w", sh.name, err)
		}
		level.Info(logger).Log("msg", "hotel ready", "hotel_id", h.ID, "name", h.Name)
	}
	return nil
}

// ensureUser is idempotent on email.
func ensureUser(ctx context.Context, db *gorm.DB, su seedUser) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("email = ?", su.email).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(su.password)
	if err != nil {
		return nil, err
	}
	u = domain.User{
		Email:        su.email,
		PasswordHash: hash,
		FullName:     su.name,
		Role:         su.role,
		IsActive:     true,
	}
	return &u, db.WithContext(ctx).Create(&u).Error
}

// ensureHotel is idempotent on name; rooms are only created with the hotel.
func ensureHotel(ctx context.Context, db *gorm.DB, sh seedHotel, managerID int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := db.WithContext(ctx).Where("name = ?", sh.name).First(&h).Error
	if err == nil {
		return &h, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	h = domain.Hotel{Name: sh.name, Location: sh.location, Description: sh.desc}
	if managerID != 0 {
		h.ManagerID = &managerID
	}
	rooms := append([]domain.Room(nil), sh.rooms...)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		for i := range rooms {
			rooms[i].HotelID = h.ID
		}
		return tx.Create(&rooms).Error
	})
	return &h, err
}
