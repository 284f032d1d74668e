package model

import (
	"strings"
)

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusResolved ContactStatus = "resolved"
)

type ContactForm struct {
	Base
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   *string       `json:"phone"`
	Subject string        `json:"subject"`
	Message string        `json:"message"`
	Status  ContactStatus `json:"status"`
}

type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	Email   string  `json:"email" validate:"required,email,max=254"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Subject string  `json:"subject" validate:"required,max=200"`
	Message string  `json:"message" validate:"required,min=10,max=5000"`
}

func (r *CreateContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	return validate.Struct(r)
}

type ListContactQuery struct {
	PaginationQuery
	Status ContactStatus `query:"status" validate:"omitempty,oneof=new read resolved"`
}

func (q *ListContactQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type UpdateContactRequest struct {
	IDParam
	Status ContactStatus `json:"status" validate:"required,oneof=new read resolved"`
}

func (r *UpdateContactRequest) Validate() error {
	return validate.Struct(r)
}
