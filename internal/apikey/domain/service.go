package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Create issues a new key. The response carries the raw key exactly
	// once.
	Create(ctx context.Context, req CreateRequest) (*CreatedResponse, error)
	List(ctx context.Context) ([]Response, error)
	Revoke(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name      string     `json:"name" binding:"required"`
	Scopes    []string   `json:"scopes,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type Response struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	Scopes    []string   `json:"scopes,omitempty"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CreatedResponse struct {
	Response
	Key string `json:"key"`
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrNotFound       = errors.New("not_found")
)
