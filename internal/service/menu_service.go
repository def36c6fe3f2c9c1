package service

import (
	"context"
	"fmt"
	"net/http"

	"espejo-admin/internal/domain"
)

type MenuService struct {
	api Doer
}

func NewMenuService(api Doer) *MenuService {
	return &MenuService{api: api}
}

func (s *MenuService) CreateDish(ctx context.Context, dish *domain.Dish) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPost, "/admin/menu/plato", dish, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) UpdateDish(ctx context.Context, dish *domain.Dish) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("/admin/menu/plato/%d", dish.ID), dish, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) DeleteDish(ctx context.Context, id int) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodDelete, fmt.Sprintf("/admin/menu/plato/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) ToggleDishAvailability(ctx context.Context, id int) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPatch, fmt.Sprintf("/admin/menu/plato/%d/disponibilidad", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPost, "/admin/menu/categoria", category, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("/admin/menu/categoria/%d", category.ID), category, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCategory removes a category. Deleting one that still owns dishes
// fails server-side unless force cascades the delete to its dishes.
func (s *MenuService) DeleteCategory(ctx context.Context, id int, force bool) (*domain.Result, error) {
	path := fmt.Sprintf("/admin/menu/categoria/%d", id)
	if force {
		path += "?forzar=true"
	}
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MenuService) ToggleCategoryVisibility(ctx context.Context, id int) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPatch, fmt.Sprintf("/admin/menu/categoria/%d/visibilidad", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
