package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-panel/internal/panel"
	"github.com/i474232898/weather-panel/internal/store"
)

// SessionCookie carries the id of the caller's panel session.
const SessionCookie = "panel_session"

//go:embed templates/panel.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/panel.html"))

// pageData is what the panel template renders.
type pageData struct {
	Input       string
	Date        string
	Location    string
	Temperature string
	Icon        string
	Description string
	WindSpeed   string
	Humidity    string
	FeelsLike   string
	Visibility  string
	ErrorText   string

	ShowLoading bool
	ShowWeather bool
	ShowError   bool

	// Refresh reloads the page while a lookup is in flight.
	Refresh bool
}

func newPageData(sess *store.Session) pageData {
	var data pageData
	sess.Controller.Observe(func(st panel.State) {
		snap := sess.Surface.Snapshot()
		data = pageData{
			Input:       snap.Input,
			Date:        snap.Texts[panel.FieldDate],
			Location:    snap.Texts[panel.FieldLocation],
			Temperature: snap.Texts[panel.FieldTemperature],
			Icon:        snap.Texts[panel.FieldIcon],
			Description: snap.Texts[panel.FieldDescription],
			WindSpeed:   snap.Texts[panel.FieldWindSpeed],
			Humidity:    snap.Texts[panel.FieldHumidity],
			FeelsLike:   snap.Texts[panel.FieldFeelsLike],
			Visibility:  snap.Texts[panel.FieldVisibility],
			ErrorText:   snap.Texts[panel.FieldErrorText],
			ShowLoading: snap.Visible[panel.RegionLoading],
			ShowWeather: snap.Visible[panel.RegionWeather],
			ShowError:   snap.Visible[panel.RegionError],
			Refresh:     st.Phase == panel.PhaseLoading,
		}
	})
	return data
}

func registerPageRoutes(app *fiber.App, sessions *store.SessionStore) {
	app.Get("/", func(c *fiber.Ctx) error {
		sess := sessionFromCookie(c, sessions)

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, newPageData(sess)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render panel")
		}

		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	// Form submissions from the button or from Enter in the input field.
	app.Post("/lookup", func(c *fiber.Ctx) error {
		form := lookupForm{
			// Fiber reuses request buffers; the input outlives this handler.
			City:    utils.CopyString(c.FormValue("city")),
			Trigger: c.FormValue("trigger"),
		}
		if err := validate.Struct(form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sess := sessionFromCookie(c, sessions)
		sess.Surface.SetInput(form.City)
		sess.Controller.HandleEvent(form.event())

		return c.Redirect("/", fiber.StatusSeeOther)
	})
}

// lookupForm is the panel form. The default submit button sends
// trigger=enter, so pressing Enter in the input is told apart from a click.
type lookupForm struct {
	City    string `validate:"max=100"`
	Trigger string `validate:"omitempty,oneof=click enter"`
}

func (f lookupForm) event() panel.Event {
	if f.Trigger == "enter" {
		return panel.Event{Type: panel.EventKeyPress, Key: panel.KeyEnter}
	}
	return panel.Event{Type: panel.EventClick}
}

// sessionFromCookie returns the caller's session, creating and initializing
// a new one when the cookie is missing or refers to an expired session.
func sessionFromCookie(c *fiber.Ctx, sessions *store.SessionStore) *store.Session {
	if id := c.Cookies(SessionCookie); id != "" {
		if sess, err := sessions.Get(id); err == nil {
			return sess
		}
	}

	sess := sessions.Create()
	sess.Controller.Initialize()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return sess
}
