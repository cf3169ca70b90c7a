package access

import "gorm.io/gorm"

// HotelScope restricts a query on the hotels table.
func HotelScope(p Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch p.kind {
		case matchAll:
			return db
		case matchManagedBy, matchManagedOrBookedBy:
			return db.Where("hotels.manager_id = ?", p.userID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// RoomScope restricts a query on the rooms table.
func RoomScope(p Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch p.kind {
		case matchAll:
			return db
		case matchManagedBy, matchManagedOrBookedBy:
			return db.Where("rooms.hotel_id IN (SELECT hotels.id FROM hotels WHERE hotels.manager_id = ?)", p.userID)
		default:
			return db.Where("1 = 0")
		}
	}
}

const managedBookingRooms = "SELECT rooms.id FROM rooms JOIN hotels ON hotels.id = rooms.hotel_id WHERE hotels.manager_id = ?"

// BookingScope restricts a query on the bookings table.
func BookingScope(p Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch p.kind {
		case matchAll:
			return db
		case matchBookedBy:
			return db.Where("bookings.user_id = ?", p.userID)
		case matchManagedBy:
			return db.Where("bookings.room_id IN ("+managedBookingRooms+")", p.userID)
		case matchManagedOrBookedBy:
			return db.Where("(bookings.user_id = ? OR bookings.room_id IN ("+managedBookingRooms+"))", p.userID, p.userID)
		default:
			return db.Where("1 = 0")
		}
	}
}
