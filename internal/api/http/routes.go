package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-panel/internal/panel"
	"github.com/i474232898/weather-panel/internal/store"
	"github.com/i474232898/weather-panel/internal/weather"
)

var validate = validator.New()

// ErrorHandler renders every error as {"error": true, "message": ...} with
// the status carried by a *fiber.Error, or 500 otherwise.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions *store.SessionStore, service *weather.Service) {
	registerPageRoutes(app, sessions)

	v1 := app.Group("/api/v1")

	v1.Post("/panels", func(c *fiber.Ctx) error {
		sess := sessions.Create()
		sess.Controller.Initialize()
		return c.Status(fiber.StatusCreated).JSON(newPanelResponse(sess))
	})

	v1.Get("/panels/:id", func(c *fiber.Ctx) error {
		sess, err := lookupSession(sessions, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(newPanelResponse(sess))
	})

	v1.Post("/panels/:id/events", func(c *fiber.Ctx) error {
		sess, err := lookupSession(sessions, c.Params("id"))
		if err != nil {
			return err
		}

		var req eventRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid event body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.City != nil {
			sess.Surface.SetInput(*req.City)
		}
		triggered := sess.Controller.HandleEvent(req.toEvent())

		return c.JSON(eventResponse{
			Triggered: triggered,
			Panel:     newPanelResponse(sess),
		})
	})

	v1.Delete("/panels/:id", func(c *fiber.Ctx) error {
		if err := sessions.Delete(c.Params("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no panel for requested id")
			}
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/weather/lookup", func(c *fiber.Ctx) error {
		q := lookupQuery{City: strings.TrimSpace(c.Query("city"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reading, err := service.Lookup(c.UserContext(), q.City)
		if err != nil {
			var lf *weather.LookupFailure
			switch {
			case errors.As(err, &lf):
				return fiber.NewError(fiber.StatusBadGateway, lf.Error())
			case errors.Is(err, weather.ErrEmptyCity):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusServiceUnavailable, "lookup aborted")
			}
		}

		return c.JSON(reading)
	})
}

func lookupSession(sessions *store.SessionStore, id string) (*store.Session, error) {
	sess, err := sessions.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "no panel for requested id")
		}
		return nil, err
	}
	return sess, nil
}

// lookupQuery holds query parameters for the one-shot lookup endpoint.
type lookupQuery struct {
	City string `validate:"required,max=100"`
}

// eventRequest is a user action posted to a panel. City, when present,
// replaces the input field before the event is dispatched.
type eventRequest struct {
	Type string  `json:"type" validate:"required,oneof=click keypress"`
	Key  string  `json:"key" validate:"max=32"`
	City *string `json:"city" validate:"omitempty,max=100"`
}

func (r eventRequest) toEvent() panel.Event {
	return panel.Event{
		Type: panel.EventType(r.Type),
		Key:  r.Key,
	}
}

type panelResponse struct {
	ID    string         `json:"id"`
	State panel.State    `json:"state"`
	View  panel.Snapshot `json:"view"`
}

func newPanelResponse(sess *store.Session) panelResponse {
	resp := panelResponse{ID: sess.ID}
	sess.Controller.Observe(func(st panel.State) {
		resp.State = st
		resp.View = sess.Surface.Snapshot()
	})
	return resp
}

type eventResponse struct {
	Triggered bool          `json:"triggered"`
	Panel     panelResponse `json:"panel"`
}
