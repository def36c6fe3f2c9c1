package service

import (
	"context"
	"net/http"

	"espejo-admin/internal/domain"
)

type InfoService struct {
	api Doer
}

func NewInfoService(api Doer) *InfoService {
	return &InfoService{api: api}
}

func (s *InfoService) SystemStatus(ctx context.Context) (*domain.StatusResponse, error) {
	var resp domain.StatusResponse
	if err := s.api.Request(ctx, http.MethodGet, "/admin/estado-sistema", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *InfoService) UpdateRestaurant(ctx context.Context, info *domain.RestaurantInfo) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, "/admin/restaurante", info, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ InfoServiceInterface = (*InfoService)(nil)
