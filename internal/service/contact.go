package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type ContactStore interface {
	Create(ctx context.Context, req model.CreateContactRequest) (*model.ContactForm, error)
	List(ctx context.Context, q model.ListContactQuery) ([]model.ContactForm, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContactStatus) (*model.ContactForm, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactService struct {
	forms  ContactStore
	jobs   job.Enqueuer
	logger *zerolog.Logger
}

func NewContactService(forms ContactStore, jobs job.Enqueuer, logger *zerolog.Logger) *ContactService {
	return &ContactService{forms: forms, jobs: jobs, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.ContactForm, error) {
	form, err := s.forms.Create(ctx, *req)
	if err != nil {
		return nil, err
	}
	enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewContactAckTask(form.Email, form.Name, form.Subject)
	})
	return form, nil
}

func (s *ContactService) List(ctx context.Context, q *model.ListContactQuery) (*model.PaginatedResponse[model.ContactForm], error) {
	items, total, err := s.forms.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, req *model.UpdateContactRequest) (*model.ContactForm, error) {
	return s.forms.UpdateStatus(ctx, req.UUID(), req.Status)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.forms.Delete(ctx, id)
}
