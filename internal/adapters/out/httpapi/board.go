package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"groundhandling/internal/core/ports"
)

var (
	_ ports.Board             = (*Board)(nil)
	_ ports.PassengerRegistry = (*PassengerRegistry)(nil)
	_ ports.Reporter          = (*GroundService)(nil)
	_ ports.AircraftDirectory = (*GroundService)(nil)
)

type passengersRequest struct {
	Passengers []string `json:"passengers"`
}

// Board talks to the aircraft board service.
type Board struct {
	client *Client
}

func NewBoard(client *Client) *Board {
	return &Board{client: client}
}

// NotifyUnload sends POST /unload/{flight}.
func (b *Board) NotifyUnload(ctx context.Context, flightID string) (bool, error) {
	return answer(b.client.post(ctx, "/unload/"+url.PathEscape(flightID), nil))
}

// NotifyLoad sends POST /load/{flight} with the delivered passengers.
func (b *Board) NotifyLoad(ctx context.Context, flightID string, passengers []string) (bool, error) {
	return answer(b.client.post(ctx, "/load/"+url.PathEscape(flightID), passengersRequest{Passengers: passengers}))
}

// PassengerRegistry talks to the passenger service.
type PassengerRegistry struct {
	client *Client
}

func NewPassengerRegistry(client *Client) *PassengerRegistry {
	return &PassengerRegistry{client: client}
}

// NotifyTransport sends POST /transport with the picked-up passengers.
func (p *PassengerRegistry) NotifyTransport(ctx context.Context, passengers []string) (bool, error) {
	return answer(p.client.post(ctx, "/transport", passengersRequest{Passengers: passengers}))
}

type reportRequest struct {
	OrderID string `json:"orderId"`
	Phase   string `json:"phase"`
}

type planeInfoResponse struct {
	PlaneID    string `json:"planeId"`
	GateNumber string `json:"gateNumber"`
}

// GroundService talks to the ground service that owns flight parking and
// receives completion reports.
//
//	GET  /api/plane-info/{flight}  aircraft serving the flight
//	POST /api/report               completion report
type GroundService struct {
	client *Client
}

func NewGroundService(client *Client) *GroundService {
	return &GroundService{client: client}
}

// ResolveAircraft sends GET /api/plane-info/{flight}.
func (s *GroundService) ResolveAircraft(ctx context.Context, flightID string) (ports.Aircraft, bool, error) {
	path := "/api/plane-info/" + url.PathEscape(flightID)
	resp, err := s.client.get(ctx, path)
	if err != nil {
		return ports.Aircraft{}, false, err
	}
	if !resp.ok() {
		return ports.Aircraft{}, false, nil
	}

	var info planeInfoResponse
	if err = json.Unmarshal(resp.body, &info); err != nil {
		return ports.Aircraft{}, false, fmt.Errorf("decode plane info %s: %w", path, err)
	}
	if info.PlaneID == "" {
		return ports.Aircraft{}, false, nil
	}
	return ports.Aircraft{PlaneID: info.PlaneID, Gate: info.GateNumber}, true, nil
}

// ReportCompletion sends POST /api/report.
func (s *GroundService) ReportCompletion(ctx context.Context, orderID, phase string) (bool, error) {
	return answer(s.client.post(ctx, "/api/report", reportRequest{OrderID: orderID, Phase: phase}))
}
