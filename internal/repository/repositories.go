package repository

import (
	"github.com/deppfellow/tourism/internal/database"
)

// Repositories groups every repository built on the same connection.
type Repositories struct {
	User         *UserRepository
	Hotel        *HotelRepository
	Car          *CarRepository
	Tour         *TourRepository
	Booking      *BookingRepository
	Notification *NotificationRepository
	Contact      *ContactRepository
	Umrah        *UmrahRepository
	Blog         *BlogRepository
	Setting      *SettingRepository
	Report       *ReportRepository
}

func NewRepositories(db database.DBTX) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Hotel:        NewHotelRepository(db),
		Car:          NewCarRepository(db),
		Tour:         NewTourRepository(db),
		Booking:      NewBookingRepository(db),
		Notification: NewNotificationRepository(db),
		Contact:      NewContactRepository(db),
		Umrah:        NewUmrahRepository(db),
		Blog:         NewBlogRepository(db),
		Setting:      NewSettingRepository(db),
		Report:       NewReportRepository(db),
	}
}
