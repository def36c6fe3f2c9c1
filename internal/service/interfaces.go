package service

import (
	"context"

	"espejo-admin/internal/domain"
)

// Doer is the transport the services run on, satisfied by api.Client.
type Doer interface {
	Request(ctx context.Context, method, path string, body, out any) error
}

type ReservationServiceInterface interface {
	SearchTable(ctx context.Context, date, timeSlot string, partySize int) (*domain.TableSearchResponse, error)
	Create(ctx context.Context, req domain.CreateReservationRequest) (*domain.ReservationResponse, error)
	CreateWithTableSearch(ctx context.Context, req domain.CreateReservationRequest) (*domain.ReservationResponse, error)
	Cancel(ctx context.Context, id int, reason string) (*domain.Result, error)
	Confirm(ctx context.Context, id int) (*domain.Result, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, table *domain.Table) (*domain.Result, error)
	Update(ctx context.Context, table *domain.Table) (*domain.Result, error)
	Delete(ctx context.Context, id int) (*domain.Result, error)
}

type MenuServiceInterface interface {
	CreateDish(ctx context.Context, dish *domain.Dish) (*domain.Result, error)
	UpdateDish(ctx context.Context, dish *domain.Dish) (*domain.Result, error)
	DeleteDish(ctx context.Context, id int) (*domain.Result, error)
	ToggleDishAvailability(ctx context.Context, id int) (*domain.Result, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Result, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Result, error)
	DeleteCategory(ctx context.Context, id int, force bool) (*domain.Result, error)
	ToggleCategoryVisibility(ctx context.Context, id int) (*domain.Result, error)
}

type PolicyServiceInterface interface {
	Save(ctx context.Context, policies domain.Policies) (*domain.Result, error)
}

type InfoServiceInterface interface {
	SystemStatus(ctx context.Context) (*domain.StatusResponse, error)
	UpdateRestaurant(ctx context.Context, info *domain.RestaurantInfo) (*domain.Result, error)
}

type OrderServiceInterface interface {
	List(ctx context.Context) (*domain.OrdersResponse, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Result, error)
}

// SnapshotFetcher is what the synchronizer needs from the mirror service.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*domain.Snapshot, error)
}
