package domain

import (
	"context"
	"errors"
	"time"

	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IBAN      *string `json:"iban,omitempty"`
	BIC       *string `json:"bic,omitempty"`
}

type UpdateRequest struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IBAN      *string `json:"iban,omitempty"`
	BIC       *string `json:"bic,omitempty"`
}

type ListRequest struct {
	Search    string
	SortBy    string
	OrderBy   string
	PageToken string
	PageSize  int32
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Tenants  []Response          `json:"tenants"`
}

type Response struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IBAN      *string   `json:"iban,omitempty"`
	BIC       *string   `json:"bic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidIBAN    = errors.New("invalid_iban")
	ErrInvalidBIC     = errors.New("invalid_bic")
	ErrNotFound       = errors.New("not_found")
)
