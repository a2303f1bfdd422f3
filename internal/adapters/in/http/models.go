package http

import (
	"encoding/json"
	"fmt"
	"time"
)

// Error is the body of every non-success response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ID is an identifier sent either as a JSON string or as a JSON number.
// The dispatch authority and the check-in desks use numeric IDs; everything
// inside the service treats them as strings.
type ID string

// UnmarshalJSON accepts "17" and 17 alike.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	ID       ID     `json:"id"`
	FlightID string `json:"flightId"`
	// Kind is "load" or "discharge". When empty it is derived from Passengers.
	Kind string `json:"kind,omitempty"`
	// VehicleKind is "bus" (default) or "baggage-cart".
	VehicleKind string `json:"vehicleKind,omitempty"`
	Passengers  []ID   `json:"passengers"`
}

// Order is one entry of GET /api/v1/orders.
type Order struct {
	ID          string   `json:"id"`
	FlightID    string   `json:"flightId"`
	Kind        string   `json:"kind"`
	VehicleKind string   `json:"vehicleKind"`
	Passengers  []string `json:"passengers"`
	Attempts    int      `json:"attempts"`
	Status      string   `json:"status"`
	LastError   string   `json:"lastError,omitempty"`
}

// DeadLetter is one entry of GET /api/v1/dead-letters.
type DeadLetter struct {
	OrderID     string        `json:"orderId"`
	FlightID    string        `json:"flightId"`
	Kind        string        `json:"kind"`
	VehicleKind string        `json:"vehicleKind"`
	Attempts    int           `json:"attempts"`
	Reason      string        `json:"reason"`
	Journal     []JournalStep `json:"journal"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// JournalStep is one saga step of a dead letter.
type JournalStep struct {
	Step       string `json:"step"`
	Status     string `json:"status"`
	DurationMS int64  `json:"durationMs"`
	Detail     string `json:"detail,omitempty"`
}

// Vehicle is one entry of GET /api/v1/vehicles.
type Vehicle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Busy bool   `json:"busy"`
}

// PassengerTransport is the body of POST /transportation-pass.
type PassengerTransport struct {
	PassengerID ID     `json:"passengerId"`
	FlightID    string `json:"flightId"`
}

// BaggageTransport is the body of POST /transportation-bagg.
type BaggageTransport struct {
	BaggageID ID     `json:"baggageId"`
	FlightID  string `json:"flightId"`
}

// CargoAccepted answers the accumulator endpoints. OrderID is set when the
// item completed a batch and a load order was submitted for it.
type CargoAccepted struct {
	Dispatched bool   `json:"dispatched"`
	OrderID    string `json:"orderId,omitempty"`
}
