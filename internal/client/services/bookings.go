package services

import (
	"context"
	"fmt"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
)

// BookingService keeps the client-side booking ledger. The ledger is a
// record of what this client booked; attendance is always read from the
// event's attendees.
type BookingService interface {
	Record(ctx context.Context, b models.Booking) (*models.Booking, error)
}

type bookingService struct {
	client client.Client
	store  *store.Store
}

func NewBookingService(c client.Client, st *store.Store) BookingService {
	return &bookingService{client: c, store: st}
}

// Record posts b and appends the server's copy to the ledger. Nothing is
// appended when the post fails.
func (s *bookingService) Record(ctx context.Context, b models.Booking) (*models.Booking, error) {
	s.store.Dispatch(store.BookingLoading{})

	saved, err := s.client.CreateBooking(ctx, b)
	if err != nil {
		err = fmt.Errorf("record booking: %w", err)
		s.store.Dispatch(store.BookingFailed{Err: err})
		return nil, err
	}

	s.store.Dispatch(store.BookingRecorded{Booking: *saved})
	return saved, nil
}

// BookingFor builds the ledger row for u attending e.
func BookingFor(e models.Event, u models.User) models.Booking {
	return models.Booking{
		EventID:    e.ID,
		UserID:     u.ID,
		UserName:   u.Name,
		EventTitle: e.Title,
		Date:       e.Date,
	}
}
