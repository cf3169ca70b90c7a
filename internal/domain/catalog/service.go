package catalog

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

// Service owns hotels and rooms. Public reads are unrestricted; managed
// operations go through the access policy for the calling actor.
type Service struct {
	repo   *Repository
	policy access.Policy
	logger log.Logger
}

func NewService(repo *Repository, logger log.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: access.NewPolicy(),
		logger: log.With(logger, "component", "catalog"),
	}
}

/* ---------- public ---------- */

func (s *Service) PublicHotels(ctx context.Context, f HotelFilters) ([]HotelResponse, int64, error) {
	return s.listHotels(ctx, access.All(), f)
}

func (s *Service) PublicHotel(ctx context.Context, id int64) (*HotelResponse, error) {
	hotel, err := s.repo.GetHotel(ctx, id, true)
	if err != nil {
		return nil, err
	}
	resp := toHotelResponse(hotel, minPrice(hotel.Rooms))
	return &resp, nil
}

func (s *Service) PublicHotelRooms(ctx context.Context, hotelID int64, skip, limit int) ([]domain.Room, error) {
	if _, err := s.repo.GetHotel(ctx, hotelID, false); err != nil {
		return nil, err
	}
	return s.repo.ListRooms(ctx, access.All(), RoomFilters{HotelID: hotelID, Skip: skip, Limit: limit})
}

/* ---------- hotels ---------- */

// ManagedHotels lists the hotels the actor may modify.
func (s *Service) ManagedHotels(ctx context.Context, actor access.Actor, f HotelFilters) ([]HotelResponse, int64, error) {
	return s.listHotels(ctx, s.policy.Predicate(actor, access.Hotel, access.Write), f)
}

func (s *Service) ManagedHotel(ctx context.Context, actor access.Actor, id int64) (*HotelResponse, error) {
	hotel, err := s.repo.GetHotel(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkHotel(actor, hotel); err != nil {
		return nil, err
	}
	resp := toHotelResponse(hotel, minPrice(hotel.Rooms))
	return &resp, nil
}

func (s *Service) CreateHotel(ctx context.Context, actor access.Actor, req HotelRequest) (*domain.Hotel, error) {
	if s.policy.Predicate(actor, access.Hotel, access.Write).MatchesNone() {
		return nil, ErrForbidden
	}

	managerID := &actor.UserID
	if actor.IsAdmin() {
		managerID = req.ManagerID
		if managerID != nil {
			if err := s.ensureManager(ctx, *managerID); err != nil {
				return nil, err
			}
		}
	}

	hotel := &domain.Hotel{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ManagerID:   managerID,
	}
	if err := s.repo.CreateHotel(ctx, hotel); err != nil {
		return nil, err
	}

	level.Info(s.logger).Log("msg", "hotel created", "hotel_id", hotel.ID, "by", actor.UserID)
	return hotel, nil
}

func (s *Service) UpdateHotel(ctx context.Context, actor access.Actor, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	hotel, err := s.repo.GetHotel(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkHotel(actor, hotel); err != nil {
		return nil, err
	}

	if req.ManagerID != nil && !sameID(req.ManagerID, hotel.ManagerID) {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		if err := s.ensureManager(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
		hotel.ManagerID = req.ManagerID
	}
	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Location != nil {
		hotel.Location = *req.Location
	}
	if req.Description != nil {
		hotel.Description = *req.Description
	}
	if req.ImageURL != nil {
		hotel.ImageURL = *req.ImageURL
	}

	if err := s.repo.UpdateHotel(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *Service) DeleteHotel(ctx context.Context, actor access.Actor, id int64) error {
	hotel, err := s.repo.GetHotel(ctx, id, false)
	if err != nil {
		return err
	}
	if err := s.checkHotel(actor, hotel); err != nil {
		return err
	}
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}

	level.Info(s.logger).Log("msg", "hotel deleted", "hotel_id", id, "by", actor.UserID)
	return nil
}

/* ---------- rooms ---------- */

// ManagedRooms lists rooms the actor may modify, optionally within one hotel.
func (s *Service) ManagedRooms(ctx context.Context, actor access.Actor, f RoomFilters) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx, s.policy.Predicate(actor, access.Room, access.Write), f)
}

func (s *Service) ManagedRoom(ctx context.Context, actor access.Actor, id int64) (*domain.Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoom(actor, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, actor access.Actor, hotelID int64, req RoomRequest) (*domain.Room, error) {
	hotel, err := s.repo.GetHotel(ctx, hotelID, false)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Predicate(actor, access.Room, access.Write).Check(access.Ownership{ManagerID: hotel.ManagerID}); err != nil {
		return nil, err
	}

	room := &domain.Room{
		HotelID:     hotel.ID,
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		Description: req.Description,
		Capacity:    req.Capacity,
		MaxBookings: req.MaxBookings,
		IsAvailable: true,
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if room.Capacity == 0 {
		room.Capacity = 1
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, actor access.Actor, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.ManagedRoom(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.MaxBookings != nil {
		room.MaxBookings = req.MaxBookings
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetRoomAvailability enables or disables a room for new bookings. Existing
// bookings are left untouched.
func (s *Service) SetRoomAvailability(ctx context.Context, actor access.Actor, id int64, available bool) (*domain.Room, error) {
	room, err := s.ManagedRoom(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	room.IsAvailable = available
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, actor access.Actor, id int64) error {
	if _, err := s.ManagedRoom(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.DeleteRoom(ctx, id)
}

/* ---------- helpers ---------- */

func (s *Service) listHotels(ctx context.Context, pred access.Predicate, f HotelFilters) ([]HotelResponse, int64, error) {
	hotels, total, err := s.repo.ListHotels(ctx, pred, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(hotels))
	for i := range hotels {
		ids[i] = hotels[i].ID
	}
	prices, err := s.repo.MinRoomPrices(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]HotelResponse, len(hotels))
	for i := range hotels {
		out[i] = toHotelResponse(&hotels[i], prices[hotels[i].ID])
	}
	return out, total, nil
}

func (s *Service) checkHotel(actor access.Actor, h *domain.Hotel) error {
	return s.policy.Predicate(actor, access.Hotel, access.Write).Check(access.Ownership{ManagerID: h.ManagerID})
}

func (s *Service) checkRoom(actor access.Actor, r *domain.Room) error {
	var managerID *int64
	if r.Hotel != nil {
		managerID = r.Hotel.ManagerID
	}
	return s.policy.Predicate(actor, access.Room, access.Write).Check(access.Ownership{ManagerID: managerID})
}

func (s *Service) ensureManager(ctx context.Context, userID int64) error {
	ok, err := s.repo.IsActiveManager(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidManager
	}
	return nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
