package domain

import (
	"context"
	"errors"
)

// Location is a forward-geocoding hit for a postal address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"place_name"`
}

type Service interface {
	Forward(ctx context.Context, address string) (*Location, error)
}

// Provider is the upstream geocoding API the service caches over.
type Provider interface {
	Forward(ctx context.Context, address string) (*Location, error)
}

var (
	ErrInvalidAddress = errors.New("invalid_address")
	ErrNotFound       = errors.New("not_found")
)
