package service

import (
	"context"
	"fmt"
	"net/http"

	"espejo-admin/internal/domain"
)

// NoTablesMessage is the business failure returned by the composite create
// flow when the table search comes back empty.
const NoTablesMessage = "no tables available for that time"

type ReservationService struct {
	api Doer
}

func NewReservationService(api Doer) *ReservationService {
	return &ReservationService{api: api}
}

func (s *ReservationService) SearchTable(ctx context.Context, date, timeSlot string, partySize int) (*domain.TableSearchResponse, error) {
	body := map[string]any{
		"date":      date,
		"time":      timeSlot,
		"partySize": partySize,
	}
	var resp domain.TableSearchResponse
	if err := s.api.Request(ctx, http.MethodPost, "/buscar-mesa", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ReservationService) Create(ctx context.Context, req domain.CreateReservationRequest) (*domain.ReservationResponse, error) {
	var resp domain.ReservationResponse
	if err := s.api.Request(ctx, http.MethodPost, "/crear-reserva", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateWithTableSearch is the composite flow: search for a table first and
// only create the reservation once a concrete table id is in hand. When the
// search yields nothing the create call never happens, so a failed search
// can never leave a partial reservation behind.
func (s *ReservationService) CreateWithTableSearch(ctx context.Context, req domain.CreateReservationRequest) (*domain.ReservationResponse, error) {
	search, err := s.SearchTable(ctx, req.Date, req.Time, req.PartySize)
	if err != nil {
		return nil, err
	}
	if !search.Success || search.AvailableTable == nil {
		return &domain.ReservationResponse{Success: false, Message: NoTablesMessage}, nil
	}

	req.TableID = &search.AvailableTable.ID
	return s.Create(ctx, req)
}

func (s *ReservationService) Cancel(ctx context.Context, id int, reason string) (*domain.Result, error) {
	body := map[string]string{"reason": reason}
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodDelete, fmt.Sprintf("/cancelar-reserva/%d", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ReservationService) Confirm(ctx context.Context, id int) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("/admin/reservas/%d/confirmar", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
