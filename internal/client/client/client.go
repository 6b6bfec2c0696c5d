package client

import (
	"context"
	"encoding/json"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
)

// Client is the contract with the events backend: collection-style CRUD
// over users, events and bookings.
type Client interface {
	Ping(ctx context.Context) error

	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error)

	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, e models.Event) (*models.Event, error)
	// PatchEvent returns the raw response so callers can merge a partial
	// document without losing fields the server left out.
	PatchEvent(ctx context.Context, id string, patch map[string]any) (json.RawMessage, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error)
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent without Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
