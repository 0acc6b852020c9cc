package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	BuildingID      string   `json:"building_id"`
	Name            string   `json:"name"`
	Area            float64  `json:"area"`
	Floor           *int     `json:"floor,omitempty"`
	Rooms           *float64 `json:"rooms,omitempty"`
	HasHeatingMeter bool     `json:"has_heating_meter"`
}

type UpdateRequest struct {
	ID              string   `json:"id"`
	Name            *string  `json:"name,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Floor           *int     `json:"floor,omitempty"`
	Rooms           *float64 `json:"rooms,omitempty"`
	HasHeatingMeter *bool    `json:"has_heating_meter,omitempty"`
}

type Response struct {
	ID              string    `json:"id"`
	BuildingID      string    `json:"building_id"`
	Name            string    `json:"name"`
	Area            float64   `json:"area"`
	Floor           *int      `json:"floor,omitempty"`
	Rooms           *float64  `json:"rooms,omitempty"`
	HasHeatingMeter bool      `json:"has_heating_meter"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var (
	ErrInvalidAccount  = errors.New("invalid_account")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidBuilding = errors.New("invalid_building")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidArea     = errors.New("invalid_area")
	ErrNotFound        = errors.New("not_found")
)
