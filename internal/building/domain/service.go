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
	Count(ctx context.Context) (int64, error)
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
	PostalCode  string  `json:"postal_code"`
	City        string  `json:"city"`
	TotalArea   float64 `json:"total_area"`
}

type UpdateRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Street      *string  `json:"street,omitempty"`
	HouseNumber *string  `json:"house_number,omitempty"`
	PostalCode  *string  `json:"postal_code,omitempty"`
	City        *string  `json:"city,omitempty"`
	TotalArea   *float64 `json:"total_area,omitempty"`
}

type ListRequest struct {
	City      string
	SortBy    string
	OrderBy   string
	PageToken string
	PageSize  int32
}

type ListResponse struct {
	PageInfo  pagination.PageInfo `json:"page_info"`
	Buildings []Response          `json:"buildings"`
}

type Response struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Street      string    `json:"street"`
	HouseNumber string    `json:"house_number"`
	PostalCode  string    `json:"postal_code"`
	City        string    `json:"city"`
	TotalArea   float64   `json:"total_area"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrInvalidAccount    = errors.New("invalid_account")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidAddress    = errors.New("invalid_address")
	ErrInvalidPostalCode = errors.New("invalid_postal_code")
	ErrInvalidTotalArea  = errors.New("invalid_total_area")
	ErrNotFound          = errors.New("not_found")
)
