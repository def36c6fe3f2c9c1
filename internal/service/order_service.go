package service

import (
	"context"
	"fmt"
	"net/http"

	"espejo-admin/internal/domain"
)

// Orders are not part of the mirror snapshot; the dashboard reads them on
// demand.
type OrderService struct {
	api Doer
}

func NewOrderService(api Doer) *OrderService {
	return &OrderService{api: api}
}

func (s *OrderService) List(ctx context.Context) (*domain.OrdersResponse, error) {
	var resp domain.OrdersResponse
	if err := s.api.Request(ctx, http.MethodGet, "/admin/ordenes", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Result, error) {
	body := map[string]string{"status": status}
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("/admin/ordenes/%d/estado", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
