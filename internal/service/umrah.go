package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UmrahStore interface {
	CreatePackage(ctx context.Context, in model.UmrahPackageInput) (*model.UmrahPackage, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*model.UmrahPackage, error)
	ListPackages(ctx context.Context, q model.ListUmrahPackagesQuery) ([]model.UmrahPackage, int64, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, in model.UmrahPackageInput) (*model.UmrahPackage, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
	CreateRequest(ctx context.Context, req *model.UmrahRequest) error
	ListRequests(ctx context.Context, userID *uuid.UUID, q model.ListUmrahRequestsQuery) ([]model.UmrahRequest, int64, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status model.UmrahRequestStatus) (*model.UmrahRequest, error)
}

type UmrahService struct {
	umrah  UmrahStore
	logger *zerolog.Logger
}

func NewUmrahService(umrah UmrahStore, logger *zerolog.Logger) *UmrahService {
	return &UmrahService{umrah: umrah, logger: logger}
}

func (s *UmrahService) ListPackages(ctx context.Context, q *model.ListUmrahPackagesQuery, admin bool) (*model.PaginatedResponse[model.UmrahPackage], error) {
	q.IncludeInactive = admin
	items, total, err := s.umrah.ListPackages(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *UmrahService) GetPackage(ctx context.Context, id uuid.UUID, admin bool) (*model.UmrahPackage, error) {
	pkg, err := s.umrah.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive && !admin {
		return nil, errs.NewNotFoundError("Umrah package not found", true, nil)
	}
	return pkg, nil
}

func (s *UmrahService) CreatePackage(ctx context.Context, req *model.CreateUmrahPackageRequest) (*model.UmrahPackage, error) {
	pkg, err := s.umrah.CreatePackage(ctx, req.UmrahPackageInput)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("package_id", pkg.ID.String()).Msg("umrah package created")
	return pkg, nil
}

func (s *UmrahService) UpdatePackage(ctx context.Context, req *model.UpdateUmrahPackageRequest) (*model.UmrahPackage, error) {
	return s.umrah.UpdatePackage(ctx, req.UUID(), req.UmrahPackageInput)
}

func (s *UmrahService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.umrah.DeletePackage(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("package_id", id.String()).Msg("umrah package deleted")
	return nil
}

// CreateRequest records an enquiry. Guests may submit one; userID is
// attached when the caller is signed in. A referenced package must be
// active.
func (s *UmrahService) CreateRequest(ctx context.Context, userID *uuid.UUID, req *model.CreateUmrahRequestRequest) (*model.UmrahRequest, error) {
	if id := req.PackageUUID(); id != nil {
		if _, err := s.GetPackage(ctx, *id, false); err != nil {
			return nil, err
		}
	}

	r := &model.UmrahRequest{
		PackageID:     req.PackageUUID(),
		UserID:        userID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Travelers:     req.Travelers,
		PreferredDate: req.PreferredDateValue(),
		Notes:         req.Notes,
		Status:        model.UmrahRequestStatusNew,
	}
	if err := s.umrah.CreateRequest(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info().Str("request_id", r.ID.String()).Int("travelers", r.Travelers).Msg("umrah request received")
	return r, nil
}

func (s *UmrahService) ListMyRequests(ctx context.Context, userID uuid.UUID, q *model.ListUmrahRequestsQuery) (*model.PaginatedResponse[model.UmrahRequest], error) {
	items, total, err := s.umrah.ListRequests(ctx, &userID, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *UmrahService) ListRequests(ctx context.Context, q *model.ListUmrahRequestsQuery) (*model.PaginatedResponse[model.UmrahRequest], error) {
	items, total, err := s.umrah.ListRequests(ctx, nil, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *UmrahService) UpdateRequestStatus(ctx context.Context, req *model.UpdateUmrahRequestStatusRequest) (*model.UmrahRequest, error) {
	return s.umrah.UpdateRequestStatus(ctx, req.UUID(), req.Status)
}
