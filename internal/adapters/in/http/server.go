package http

import (
	"errors"
	"net/http"

	"groundhandling/internal/core/application/usecases/commands"
	"groundhandling/internal/core/application/usecases/queries"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the inbound HTTP API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler  commands.SubmitOrderCommandHandler
	removeOrderHandler  commands.RemoveOrderCommandHandler
	retryOrderHandler   commands.RetryOrderCommandHandler
	collectCargoHandler commands.CollectCargoCommandHandler

	// Query handlers
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler
	listDeadLettersHandler  queries.ListDeadLettersQueryHandler
	listVehiclesHandler     queries.ListVehiclesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	removeOrderHandler commands.RemoveOrderCommandHandler,
	retryOrderHandler commands.RetryOrderCommandHandler,
	collectCargoHandler commands.CollectCargoCommandHandler,
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler,
	listDeadLettersHandler queries.ListDeadLettersQueryHandler,
	listVehiclesHandler queries.ListVehiclesQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:      submitOrderHandler,
		removeOrderHandler:      removeOrderHandler,
		retryOrderHandler:       retryOrderHandler,
		collectCargoHandler:     collectCargoHandler,
		listActiveOrdersHandler: listActiveOrdersHandler,
		listDeadLettersHandler:  listDeadLettersHandler,
		listVehiclesHandler:     listVehiclesHandler,
	}
}

// CreateOrder handles POST /api/v1/orders - accepts an order from the dispatch authority.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	kind := order.UnknownKind
	if newOrder.Kind != "" {
		parsed, err := order.ParseKind(newOrder.Kind)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
		}
		kind = parsed
	}

	vehicleKind, err := vehicle.ParseKind(newOrder.VehicleKind)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	passengers := make([]string, 0, len(newOrder.Passengers))
	for _, p := range newOrder.Passengers {
		passengers = append(passengers, string(p))
	}

	cmd, err := commands.NewSubmitOrderCommand(string(newOrder.ID), newOrder.FlightID, kind, vehicleKind, passengers)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectAlreadyExists):
			return errorJSON(ctx, http.StatusConflict, "Order already exists")
		case isValidationError(handleErr):
			return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+handleErr.Error())
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to submit order")
		}
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetOrders handles GET /api/v1/orders - retrieves the active order set.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.listActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewListActiveOrdersQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:          o.ID,
			FlightID:    o.FlightID,
			Kind:        o.Kind,
			VehicleKind: o.VehicleKind,
			Passengers:  o.Passengers,
			Attempts:    o.Attempts,
			Status:      o.Status,
			LastError:   o.LastError,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes an order. Idempotent.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	cmd, err := commands.NewRemoveOrderCommand(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	if handleErr := s.removeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to remove order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryOrder handles POST /api/v1/orders/:id/retry - requeues a dead-lettered order.
func (s *Server) RetryOrder(ctx echo.Context) error {
	cmd, err := commands.NewRetryOrderCommand(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	if handleErr := s.retryOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return errorJSON(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(handleErr, errs.ErrValueIsInvalid):
			return errorJSON(ctx, http.StatusConflict, "Order is not dead-lettered")
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to retry order")
		}
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetDeadLetters handles GET /api/v1/dead-letters.
func (s *Server) GetDeadLetters(ctx echo.Context) error {
	letters, err := s.listDeadLettersHandler.Handle(ctx.Request().Context(), queries.NewListDeadLettersQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve dead letters")
	}

	response := make([]DeadLetter, len(letters))
	for i, dl := range letters {
		journal := make([]JournalStep, len(dl.Journal))
		for j, step := range dl.Journal {
			journal[j] = JournalStep{
				Step:       step.Step,
				Status:     step.Status,
				DurationMS: step.Duration.Milliseconds(),
				Detail:     step.Detail,
			}
		}
		response[i] = DeadLetter{
			OrderID:     dl.OrderID,
			FlightID:    dl.FlightID,
			Kind:        dl.Kind,
			VehicleKind: dl.VehicleKind,
			Attempts:    dl.Attempts,
			Reason:      dl.Reason,
			Journal:     journal,
			CreatedAt:   dl.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetVehicles handles GET /api/v1/vehicles.
func (s *Server) GetVehicles(ctx echo.Context) error {
	vehicles, err := s.listVehiclesHandler.Handle(ctx.Request().Context(), queries.NewListVehiclesQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve vehicles")
	}

	response := make([]Vehicle, len(vehicles))
	for i, v := range vehicles {
		response[i] = Vehicle{ID: v.ID, Name: v.Name, Kind: v.Kind, Busy: v.Busy}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransportPassenger handles POST /transportation-pass - buffers a departing passenger.
func (s *Server) TransportPassenger(ctx echo.Context) error {
	var req PassengerTransport
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	return s.collect(ctx, ports.CargoPassengers, req.FlightID, string(req.PassengerID))
}

// TransportBaggage handles POST /transportation-bagg - buffers a piece of baggage.
func (s *Server) TransportBaggage(ctx echo.Context) error {
	var req BaggageTransport
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	return s.collect(ctx, ports.CargoBaggage, req.FlightID, string(req.BaggageID))
}

func (s *Server) collect(ctx echo.Context, cargo ports.CargoKind, flightID, itemID string) error {
	cmd, err := commands.NewCollectCargoCommand(cargo, flightID, itemID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request data: "+err.Error())
	}

	orderID, err := s.collectCargoHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to dispatch batch")
	}

	return ctx.JSON(http.StatusOK, CargoAccepted{Dispatched: orderID != "", OrderID: orderID})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
