package service

import (
	"github.com/deppfellow/tourism/internal/config"
	"github.com/deppfellow/tourism/internal/lib/cache"
	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/lib/storage"
	"github.com/deppfellow/tourism/internal/lib/token"
	"github.com/deppfellow/tourism/internal/repository"
	"github.com/deppfellow/tourism/internal/server"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	Hotel        *HotelService
	Car          *CarService
	Tour         *TourService
	Booking      *BookingService
	Notification *NotificationService
	Contact      *ContactService
	Umrah        *UmrahService
	Blog         *BlogService
	Setting      *SettingService
	Upload       *UploadService
	Report       *ReportService
	Job          *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cfg := s.Config
	logger := s.Logger

	var (
		tokens    TokenManager
		directory Directory
	)
	switch cfg.Auth.Provider {
	case config.AuthProviderClerk:
		directory = NewClerkDirectory(cfg.Auth.SecretKey)
	default:
		tokens = token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	}

	var jobs job.Enqueuer
	if s.Job != nil {
		jobs = s.Job.Client
	}

	settingService := NewSettingService(repos.Setting, cache.New(s.Redis, config.ServiceName), logger)
	files := storage.NewLocal(cfg.Storage.UploadDir, cfg.Storage.PublicURL, cfg.Storage.MaxUploadBytes)

	return &Services{
		Auth:         NewAuthService(repos.User, tokens, directory, jobs, logger),
		User:         NewUserService(repos.User, logger),
		Hotel:        NewHotelService(repos.Hotel, logger),
		Car:          NewCarService(repos.Car, logger),
		Tour:         NewTourService(s.DB.Pool, repos.Tour, logger),
		Booking:      NewBookingService(s.DB.Pool, jobs, cfg.Booking.PendingTTL, settingService.Currency, logger),
		Notification: NewNotificationService(repos.Notification, repos.User, jobs, logger),
		Contact:      NewContactService(repos.Contact, jobs, logger),
		Umrah:        NewUmrahService(repos.Umrah, logger),
		Blog:         NewBlogService(repos.Blog, logger),
		Setting:      settingService,
		Upload:       NewUploadService(files, cfg.Storage.MaxUploadBytes, logger),
		Report:       NewReportService(repos.Report, logger),
		Job:          s.Job,
	}, nil
}
