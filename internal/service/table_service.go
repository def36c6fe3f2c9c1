package service

import (
	"context"
	"fmt"
	"net/http"

	"espejo-admin/internal/domain"
)

type TableService struct {
	api Doer
}

func NewTableService(api Doer) *TableService {
	return &TableService{api: api}
}

func (s *TableService) Create(ctx context.Context, table *domain.Table) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPost, "/admin/mesas", table, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *TableService) Update(ctx context.Context, table *domain.Table) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("/admin/mesas/%d", table.ID), table, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *TableService) Delete(ctx context.Context, id int) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodDelete, fmt.Sprintf("/admin/mesas/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ TableServiceInterface = (*TableService)(nil)
