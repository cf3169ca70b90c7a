package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

const recentLimit = 5

type RecentBooking struct {
	ID       int64   `json:"id"`
	Hotel    string  `json:"hotel"`
	Guest    string  `json:"guest"`
	Room     string  `json:"room"`
	CheckIn  string  `json:"check_in"`
	CheckOut string  `json:"check_out"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

type AdminDashboard struct {
	TotalUsers       int64            `json:"total_users"`
	ActiveUsers      int64            `json:"active_users"`
	TotalHotels      int64            `json:"total_hotels"`
	TotalBookings    int64            `json:"total_bookings"`
	Revenue          float64          `json:"revenue"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	RecentBookings   []RecentBooking  `json:"recent_bookings"`
}

type ManagerDashboard struct {
	TotalHotels      int64            `json:"total_hotels"`
	TotalRooms       int64            `json:"total_rooms"`
	TotalBookings    int64            `json:"total_bookings"`
	Revenue          float64          `json:"revenue"`
	Occupancy        string           `json:"occupancy"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	RecentBookings   []RecentBooking  `json:"recent_bookings"`
}

type Service struct {
	repo   *Repository
	policy access.Policy
	now    func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, policy: access.NewPolicy(), now: time.Now}
}

func (s *Service) Admin(ctx context.Context) (*AdminDashboard, error) {
	users, active, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.Totals(ctx, access.All(), s.today())
	if err != nil {
		return nil, err
	}
	recent, err := s.recent(ctx, access.All())
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalUsers:       users,
		ActiveUsers:      active,
		TotalHotels:      totals.Hotels,
		TotalBookings:    totals.Bookings,
		Revenue:          totals.Revenue,
		BookingsByStatus: totals.BookingsByStatus,
		RecentBookings:   recent,
	}, nil
}

// Manager covers the hotels the actor manages; admins see every hotel.
func (s *Service) Manager(ctx context.Context, actor access.Actor) (*ManagerDashboard, error) {
	pred := s.policy.Predicate(actor, access.Hotel, access.Write)

	totals, err := s.repo.Totals(ctx, pred, s.today())
	if err != nil {
		return nil, err
	}
	recent, err := s.recent(ctx, pred)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		TotalHotels:      totals.Hotels,
		TotalRooms:       totals.Rooms,
		TotalBookings:    totals.Bookings,
		Revenue:          totals.Revenue,
		Occupancy:        occupancy(totals.ActiveToday, totals.Rooms),
		BookingsByStatus: totals.BookingsByStatus,
		RecentBookings:   recent,
	}, nil
}

func (s *Service) recent(ctx context.Context, pred access.Predicate) ([]RecentBooking, error) {
	bookings, err := s.repo.RecentBookings(ctx, pred, recentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]RecentBooking, 0, len(bookings))
	for i := range bookings {
		out = append(out, toRecent(&bookings[i]))
	}
	return out, nil
}

func (s *Service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// occupancy is the share of rooms with a stay covering today, as "NN%".
func occupancy(active, rooms int64) string {
	if rooms == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", active*100/rooms)
}

func toRecent(b *domain.Booking) RecentBooking {
	r := RecentBooking{
		ID:       b.ID,
		Hotel:    "Unknown",
		Guest:    "Unknown",
		Room:     "Unknown",
		CheckIn:  b.CheckIn.Format(time.DateOnly),
		CheckOut: b.CheckOut.Format(time.DateOnly),
		Amount:   b.TotalPrice,
		Status:   capitalize(string(b.Status)),
	}
	if b.Room != nil {
		r.Room = b.Room.RoomNumber
		if b.Room.Hotel != nil {
			r.Hotel = b.Room.Hotel.Name
		}
	}
	if b.User != nil {
		r.Guest = b.User.FullName
		if r.Guest == "" {
			r.Guest = b.User.Email
		}
	}
	return r
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
