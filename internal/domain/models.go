package domain

import "time"

// Reservation statuses as reported by the backend. Transitions are one-way:
// pending -> confirmed, and any status -> cancelled.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Table occupancy is computed server-side from active reservations.
const (
	TableFree     = "free"
	TableOccupied = "occupied"
)

type Reservation struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"partySize"`
	TableID   *int   `json:"tableId"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

type Table struct {
	ID       int    `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone,omitempty"`
	Status   string `json:"status"`
}

type Dish struct {
	ID          int      `json:"id"`
	CategoryID  int      `json:"categoryId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Available   bool     `json:"available"`
	Vegetarian  bool     `json:"vegetarian"`
	Vegan       bool     `json:"vegan"`
	GlutenFree  bool     `json:"glutenFree"`
	Spicy       bool     `json:"spicy"`
	Recommended bool     `json:"recommended"`
	Allergens   []string `json:"allergens,omitempty"`
}

type Category struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
	Dishes  []Dish `json:"dishes"`
}

// Policies is the flat policy configuration object. It has replace-on-save
// semantics; the client never merges partial updates into it.
type Policies map[string]any

// Snapshot is the consolidated mirror of server-side restaurant state.
// It is immutable once fetched: the synchronizer installs whole snapshots
// into the store and no other component mutates one in place.
type Snapshot struct {
	Reservations []Reservation `json:"reservations"`
	Tables       []Table       `json:"tables"`
	Menu         []Category    `json:"menu"`
	Policies     Policies      `json:"policies"`
	AgeSeconds   float64       `json:"ageSeconds"`
	LastUpdated  string        `json:"lastUpdated"`
	FetchedAt    time.Time     `json:"fetchedAt"`
}

type SystemStatus struct {
	ReservationsToday    int           `json:"reservationsToday"`
	TablesOccupied       int           `json:"tablesOccupied"`
	TablesTotal          int           `json:"tablesTotal"`
	UpcomingReservations []Reservation `json:"upcomingReservations"`
}

type RestaurantInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
}

type Order struct {
	ID          int         `json:"id"`
	TableID     int         `json:"tableId"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	DishID   int     `json:"dishId"`
	DishName string  `json:"dishName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
