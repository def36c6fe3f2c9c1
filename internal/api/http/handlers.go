package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"espejo-admin/internal/api"
	"espejo-admin/internal/domain"
	"espejo-admin/internal/notify"
	"espejo-admin/internal/service"
	"espejo-admin/internal/store"
)

// Refresher is the slice of the synchronizer the handlers need: every
// successful mutation triggers exactly one refresh through it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Handler struct {
	Reservations service.ReservationServiceInterface
	Tables       service.TableServiceInterface
	Menu         service.MenuServiceInterface
	Policies     service.PolicyServiceInterface
	Info         service.InfoServiceInterface
	Orders       service.OrderServiceInterface
	Store        *store.Store
	Syncer       Refresher
	Notifier     *notify.Queue
	QR           service.QRGenerator
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/mirror", h.getMirror).Methods("GET")
	r.HandleFunc("/api/refresh", h.triggerRefresh).Methods("POST")
	r.HandleFunc("/api/status", h.getStatus).Methods("GET")
	r.HandleFunc("/api/notifications", h.getNotifications).Methods("GET")
	r.HandleFunc("/api/notifications/dismiss", h.dismissNotification).Methods("POST")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", h.cancelReservation).Methods("DELETE")
	r.HandleFunc("/api/reservations/{id}/confirm", h.confirmReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/qrcode", h.getReservationQRCode).Methods("GET")

	r.HandleFunc("/api/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/tables/{id}", h.updateTable).Methods("PUT")
	r.HandleFunc("/api/tables/{id}", h.deleteTable).Methods("DELETE")

	r.HandleFunc("/api/menu/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/menu/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/api/menu/dishes/{id}", h.deleteDish).Methods("DELETE")
	r.HandleFunc("/api/menu/dishes/{id}/toggle", h.toggleDish).Methods("POST")

	r.HandleFunc("/api/menu/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/menu/categories/{id}", h.updateCategory).Methods("PUT")
	r.HandleFunc("/api/menu/categories/{id}", h.deleteCategory).Methods("DELETE")
	r.HandleFunc("/api/menu/categories/{id}/toggle", h.toggleCategory).Methods("POST")

	r.HandleFunc("/api/policies", h.savePolicies).Methods("PUT")
	r.HandleFunc("/api/restaurant", h.updateRestaurant).Methods("PUT")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "espejo-admin",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type mirrorView struct {
	Snapshot        *domain.Snapshot `json:"snapshot"`
	IsFresh         bool             `json:"isFresh"`
	AgeSeconds      float64          `json:"ageSeconds"`
	Loading         bool             `json:"loading"`
	LastRefreshedAt *time.Time       `json:"lastRefreshedAt,omitempty"`
	Error           string           `json:"error,omitempty"`
}

func (h *Handler) getMirror(w http.ResponseWriter, r *http.Request) {
	view := mirrorView{
		IsFresh: h.Store.IsFresh(),
		Loading: h.Store.Loading(),
	}
	if snapshot, ok := h.Store.Snapshot(); ok {
		view.Snapshot = &snapshot
	}
	if age, ok := h.Store.Age(); ok {
		view.AgeSeconds = age.Seconds()
	}
	if at := h.Store.LastRefreshedAt(); !at.IsZero() {
		view.LastRefreshedAt = &at
	}
	if err := h.Store.Err(); err != nil {
		view.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) triggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Syncer.Refresh(r.Context()); err != nil {
		h.Notifier.Error("failed to refresh dashboard: " + err.Error())
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, domain.Result{Success: true})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Info.SystemStatus(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	current, backlog := h.Notifier.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"current": current,
		"backlog": backlog,
	})
}

func (h *Handler) dismissNotification(w http.ResponseWriter, r *http.Request) {
	h.Notifier.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Reservations.CreateWithTableSearch(r.Context(), req)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "reservation created")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid reservation id", http.StatusBadRequest)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	resp, err := h.Reservations.Cancel(r.Context(), id, body.Reason)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "reservation cancelled")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) confirmReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid reservation id", http.StatusBadRequest)
		return
	}
	resp, err := h.Reservations.Confirm(r.Context(), id)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "reservation confirmed")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getReservationQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid reservation id", http.StatusBadRequest)
		return
	}
	png, err := h.QR.Generate(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var table domain.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Tables.Create(r.Context(), &table)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "table created")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}
	var table domain.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	table.ID = id
	resp, err := h.Tables.Update(r.Context(), &table)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "table updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}
	resp, err := h.Tables.Delete(r.Context(), id)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "table deleted")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Menu.CreateDish(r.Context(), &dish)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "dish created")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid dish id", http.StatusBadRequest)
		return
	}
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dish.ID = id
	resp, err := h.Menu.UpdateDish(r.Context(), &dish)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "dish updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid dish id", http.StatusBadRequest)
		return
	}
	resp, err := h.Menu.DeleteDish(r.Context(), id)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "dish deleted")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) toggleDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid dish id", http.StatusBadRequest)
		return
	}
	resp, err := h.Menu.ToggleDishAvailability(r.Context(), id)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "dish availability updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Menu.CreateCategory(r.Context(), &category)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "category created")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category.ID = id
	resp, err := h.Menu.UpdateCategory(r.Context(), &category)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "category updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	force := r.URL.Query().Get("force") == "true"
	resp, err := h.Menu.DeleteCategory(r.Context(), id, force)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "category deleted")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) toggleCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	resp, err := h.Menu.ToggleCategoryVisibility(r.Context(), id)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "category visibility updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) savePolicies(w http.ResponseWriter, r *http.Request) {
	var policies domain.Policies
	if err := json.NewDecoder(r.Body).Decode(&policies); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Policies.Save(r.Context(), policies)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "policies saved")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var info domain.RestaurantInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Info.UpdateRestaurant(r.Context(), &info)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "restaurant info updated")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Orders.List(r.Context())
	if err != nil {
		h.transportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		h.transportError(w, err)
		return
	}
	h.finishMutation(r.Context(), resp.Success, resp.Message, "order status updated")
	writeJSON(w, http.StatusOK, resp)
}

// finishMutation is the shared tail of every mutation flow: exactly one
// notification per outcome, and a refresh only after a successful write.
// A business failure changed nothing server-side, so there is nothing to
// pull.
func (h *Handler) finishMutation(ctx context.Context, success bool, message, successText string) {
	if !success {
		if message == "" {
			message = "operation failed"
		}
		h.Notifier.Error(message)
		return
	}
	h.Notifier.Success(successText)
	if err := h.Syncer.Refresh(ctx); err != nil {
		log.Printf("Warning: post-mutation refresh failed: %v", err)
	}
}

// transportError surfaces a transport failure as one notification and a
// gateway error. Business failures never reach here.
func (h *Handler) transportError(w http.ResponseWriter, err error) {
	h.Notifier.Error(err.Error())
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		http.Error(w, apiErr.Message, http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
