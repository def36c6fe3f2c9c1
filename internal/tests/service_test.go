package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"espejo-admin/internal/api"
	"espejo-admin/internal/domain"
	"espejo-admin/internal/mocks"
	"espejo-admin/internal/service"
)

func TestCreateWithTableSearch_HappyPath(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewReservationService(apiMock)

	apiMock.On("Request", mock.Anything, http.MethodPost, "/buscar-mesa", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body := args.Get(3).(map[string]any)
			assert.Equal(t, "2024-06-01", body["date"])
			assert.Equal(t, "20:00", body["time"])
			assert.Equal(t, 2, body["partySize"])

			out := args.Get(4).(*domain.TableSearchResponse)
			out.Success = true
			out.AvailableTable = &domain.Table{ID: 7, Number: 7, Capacity: 4, Status: domain.TableFree}
		}).
		Return(nil).Once()

	apiMock.On("Request", mock.Anything, http.MethodPost, "/crear-reserva", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			req := args.Get(3).(domain.CreateReservationRequest)
			require.NotNil(t, req.TableID)
			assert.Equal(t, 7, *req.TableID)

			out := args.Get(4).(*domain.ReservationResponse)
			out.Success = true
			out.Reservation = &domain.Reservation{
				ID: 1, Name: req.Name, Phone: req.Phone, Date: req.Date, Time: req.Time,
				PartySize: req.PartySize, TableID: req.TableID, Status: domain.ReservationPending,
			}
		}).
		Return(nil).Once()

	resp, err := svc.CreateWithTableSearch(context.Background(), domain.CreateReservationRequest{
		Name: "Ana", Phone: "+34600000000", Date: "2024-06-01", Time: "20:00", PartySize: 2,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Reservation)
	require.NotNil(t, resp.Reservation.TableID)
	assert.Equal(t, 7, *resp.Reservation.TableID)
	assert.Equal(t, domain.ReservationPending, resp.Reservation.Status)
}

func TestCreateWithTableSearch_NoTableShortCircuits(t *testing.T) {
	tests := []struct {
		name     string
		populate func(out *domain.TableSearchResponse)
	}{
		{
			name: "search succeeds but finds nothing",
			populate: func(out *domain.TableSearchResponse) {
				out.Success = true
			},
		},
		{
			name: "search rejected by backend",
			populate: func(out *domain.TableSearchResponse) {
				out.Success = false
				out.Message = "restaurant closed"
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			apiMock := mocks.NewDoer(t)
			svc := service.NewReservationService(apiMock)

			// Only the search is expected; the create call must never fire.
			apiMock.On("Request", mock.Anything, http.MethodPost, "/buscar-mesa", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					testCase.populate(args.Get(4).(*domain.TableSearchResponse))
				}).
				Return(nil).Once()

			resp, err := svc.CreateWithTableSearch(context.Background(), domain.CreateReservationRequest{
				Name: "Ana", Date: "2024-06-01", Time: "20:00", PartySize: 8,
			})
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, service.NoTablesMessage, resp.Message)
		})
	}
}

func TestCreateWithTableSearch_SearchTransportErrorPropagates(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewReservationService(apiMock)

	transportErr := &api.Error{Kind: api.KindTimeout, Message: "request timed out after 10s"}
	apiMock.On("Request", mock.Anything, http.MethodPost, "/buscar-mesa", mock.Anything, mock.Anything).
		Return(transportErr).Once()

	resp, err := svc.CreateWithTableSearch(context.Background(), domain.CreateReservationRequest{PartySize: 2})
	assert.Nil(t, resp)
	require.ErrorAs(t, err, new(*api.Error))
}

func TestCancelReservation_SendsReason(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewReservationService(apiMock)

	apiMock.On("Request", mock.Anything, http.MethodDelete, "/cancelar-reserva/42", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body := args.Get(3).(map[string]string)
			assert.Equal(t, "customer called", body["reason"])
			args.Get(4).(*domain.Result).Success = true
		}).
		Return(nil).Once()

	resp, err := svc.Cancel(context.Background(), 42, "customer called")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestDeleteCategory_ForceFlag(t *testing.T) {
	tests := []struct {
		name     string
		force    bool
		wantPath string
		result   domain.Result
	}{
		{
			name:     "without force reports dependents",
			force:    false,
			wantPath: "/admin/menu/categoria/3",
			result:   domain.Result{Success: false, Message: "category has dependent dishes"},
		},
		{
			name:     "force cascades",
			force:    true,
			wantPath: "/admin/menu/categoria/3?forzar=true",
			result:   domain.Result{Success: true},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			apiMock := mocks.NewDoer(t)
			svc := service.NewMenuService(apiMock)

			apiMock.On("Request", mock.Anything, http.MethodDelete, testCase.wantPath, nil, mock.Anything).
				Run(func(args mock.Arguments) {
					*args.Get(4).(*domain.Result) = testCase.result
				}).
				Return(nil).Once()

			resp, err := svc.DeleteCategory(context.Background(), 3, testCase.force)
			require.NoError(t, err)
			assert.Equal(t, testCase.result, *resp)
		})
	}
}

func TestMenuToggles_HitPatchEndpoints(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewMenuService(apiMock)

	apiMock.On("Request", mock.Anything, http.MethodPatch, "/admin/menu/plato/5/disponibilidad", nil, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(4).(*domain.Result).Success = true }).
		Return(nil).Once()
	apiMock.On("Request", mock.Anything, http.MethodPatch, "/admin/menu/categoria/2/visibilidad", nil, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(4).(*domain.Result).Success = true }).
		Return(nil).Once()

	resp, err := svc.ToggleDishAvailability(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	resp, err = svc.ToggleCategoryVisibility(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestPolicyService_ReplacesWholeSet(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewPolicyService(apiMock)

	policies := domain.Policies{"cancellationLeadHours": 24, "tableTurnMinutes": 90}
	apiMock.On("Request", mock.Anything, http.MethodPut, "/admin/politicas", policies, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(4).(*domain.Result).Success = true }).
		Return(nil).Once()

	resp, err := svc.Save(context.Background(), policies)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestMirrorService_FetchSnapshot(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewMirrorService(apiMock)

	apiMock.On("Request", mock.Anything, http.MethodGet, "/espejo", nil, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(4).(*domain.SnapshotResponse)
			out.Success = true
			out.Data = &domain.Snapshot{
				Reservations: []domain.Reservation{{ID: 1, Name: "Ana"}},
				AgeSeconds:   4,
			}
		}).
		Return(nil).Once()

	snapshot, err := svc.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Reservations, 1)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestMirrorService_RejectsUnusableBody(t *testing.T) {
	tests := []struct {
		name     string
		populate func(out *domain.SnapshotResponse)
	}{
		{
			name:     "success flag false",
			populate: func(out *domain.SnapshotResponse) { out.Success = false; out.Message = "maintenance" },
		},
		{
			name:     "missing data",
			populate: func(out *domain.SnapshotResponse) { out.Success = true },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			apiMock := mocks.NewDoer(t)
			svc := service.NewMirrorService(apiMock)

			apiMock.On("Request", mock.Anything, http.MethodGet, "/espejo", nil, mock.Anything).
				Run(func(args mock.Arguments) { testCase.populate(args.Get(4).(*domain.SnapshotResponse)) }).
				Return(nil).Once()

			snapshot, err := svc.FetchSnapshot(context.Background())
			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, service.ErrInvalidSnapshot)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	apiMock := mocks.NewDoer(t)
	svc := service.NewOrderService(apiMock)

	apiMock.On("Request", mock.Anything, http.MethodPut, "/admin/ordenes/8/estado", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body := args.Get(3).(map[string]string)
			assert.Equal(t, "served", body["status"])
			args.Get(4).(*domain.Result).Success = true
		}).
		Return(nil).Once()

	resp, err := svc.UpdateStatus(context.Background(), 8, "served")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
