package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/ports"
)

var _ ports.GroundControl = (*GroundControl)(nil)

// GroundControl talks to the ground-control dispatcher.
//
//	POST /garage/{kind}          garage exit
//	GET  /plane/{from}/{plane}   route to an aircraft
//	GET  /route/{from}/{to}      route to any other point
//	POST /move/{from}/{to}       movement permission for one hop
//	POST /garage-free/{point}    vehicle is back, point is free
//
// Routes are JSON arrays of point IDs, e.g. ["taxi-1","plane-SU1402"].
type GroundControl struct {
	client *Client
}

func NewGroundControl(client *Client) *GroundControl {
	return &GroundControl{client: client}
}

func (g *GroundControl) RequestGarageExit(ctx context.Context, kind vehicle.Kind) (bool, error) {
	return answer(g.client.post(ctx, "/garage/"+url.PathEscape(kind.String()), nil))
}

func (g *GroundControl) RequestRoute(ctx context.Context, from, to kernel.Point) (kernel.Route, bool, error) {
	path := "/route/" + url.PathEscape(from.ID()) + "/" + url.PathEscape(to.ID())
	if to.IsAircraft() {
		path = "/plane/" + url.PathEscape(from.ID()) + "/" + url.PathEscape(to.ID())
	}

	resp, err := g.client.get(ctx, path)
	if err != nil {
		return kernel.Route{}, false, err
	}
	if !resp.ok() {
		return kernel.Route{}, false, nil
	}

	var ids []string
	if err = json.Unmarshal(resp.body, &ids); err != nil {
		return kernel.Route{}, false, fmt.Errorf("decode route %s: %w", path, err)
	}
	route, err := kernel.RouteFromIDs(ids)
	if err != nil {
		return kernel.Route{}, false, fmt.Errorf("decode route %s: %w", path, err)
	}
	return route, true, nil
}

func (g *GroundControl) RequestMovementPermission(ctx context.Context, from, to kernel.Point) (bool, error) {
	return answer(g.client.post(ctx, "/move/"+url.PathEscape(from.ID())+"/"+url.PathEscape(to.ID()), nil))
}

func (g *GroundControl) NotifyGarageFree(ctx context.Context, point kernel.Point) (bool, error) {
	return answer(g.client.post(ctx, "/garage-free/"+url.PathEscape(point.ID()), nil))
}
