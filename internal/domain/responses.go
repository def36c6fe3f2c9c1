package domain

// The backend wraps every response in the same envelope: success plus an
// optional message, with a payload field that depends on the endpoint.
// Business failures come back as success=false with a 2xx status; only
// transport failures surface as errors.

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SnapshotResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    *Snapshot `json:"data,omitempty"`
}

type TableSearchResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	AvailableTable *Table `json:"availableTable,omitempty"`
}

type ReservationResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

type StatusResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message,omitempty"`
	Statistics *SystemStatus `json:"statistics,omitempty"`
}

type OrdersResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Orders  []Order `json:"orders"`
}

// CreateReservationRequest is the body of POST /crear-reserva. TableID is
// attached by the composite search-then-create flow before the create call.
type CreateReservationRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"partySize"`
	Notes     string `json:"notes,omitempty"`
	TableID   *int   `json:"tableId,omitempty"`
}
