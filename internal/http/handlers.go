package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/course-cart-simulator/internal/config"
	"github.com/fairyhunter13/course-cart-simulator/internal/controller"
	httpopenapi "github.com/fairyhunter13/course-cart-simulator/internal/http/openapi"
	"github.com/fairyhunter13/course-cart-simulator/internal/model"
	"github.com/fairyhunter13/course-cart-simulator/internal/obs"
	"github.com/fairyhunter13/course-cart-simulator/internal/session"
)

type App struct {
	Cfg      config.Config
	Sessions *session.Store
	closing  atomic.Bool
	started  time.Time
}

type eventRequest struct {
	Type       string `json:"type"`
	CourseCode string `json:"course_code,omitempty"`
	Value      string `json:"value,omitempty"`
	Remove     string `json:"remove,omitempty"`
}

type eventResponse struct {
	RequestID string        `json:"request_id"`
	Sequence  uint64        `json:"sequence"`
	Handled   bool          `json:"handled"`
	Panel     string        `json:"panel,omitempty"`
	Reset     string        `json:"reset,omitempty"`
	Summary   model.Summary `json:"summary"`
}

func NewApp(cfg config.Config, sessions *session.Store) *App {
	return &App{Cfg: cfg, Sessions: sessions, started: time.Now()}
}

// StartShutdown makes the service reject new cart events.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

func (a *App) sessionID(r *http.Request) string {
	c, err := r.Cookie(a.Cfg.SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// touchSession reissues the session cookie so its lifetime follows the
// server-side idle timeout.
func (a *App) touchSession(w http.ResponseWriter, id string) {
	a.setSessionCookie(w, id, int(a.Cfg.SessionTTL.Seconds()))
}

func (a *App) setSessionCookie(w http.ResponseWriter, id string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.Cfg.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// registerHandler serves the host page with the session's current cart.
func (a *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(r)
	if id == "" || !a.Sessions.Exists(id) {
		var err error
		id, err = a.Sessions.Create()
		if errors.Is(err, session.ErrFull) {
			obs.Logger.Warn("sessions_exhausted", "active", a.Sessions.Len(), "request_id", RequestIDFromContext(r.Context()))
			WriteJSONError(w, http.StatusServiceUnavailable, "sessions_exhausted", "")
			return
		}
		if err != nil {
			obs.Logger.Error("session_create_failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
			WriteJSONError(w, http.StatusInternalServerError, "session_create_failed", "")
			return
		}
	}
	var page string
	if err := a.Sessions.Do(id, func(c *controller.Controller) {
		page = c.Document().String()
	}); err != nil {
		WriteJSONError(w, http.StatusNotFound, "session_not_found", "")
		return
	}
	a.touchSession(w, id)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (a *App) postEventsHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return
	}
	var ev eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if ev.Type != controller.EventChange && ev.Type != controller.EventClick {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "type must be change or click")
		return
	}
	id := a.sessionID(r)
	resp := eventResponse{RequestID: RequestIDFromContext(r.Context())}
	err := a.Sessions.Do(id, func(c *controller.Controller) {
		resp.Handled = dispatch(c, ev)
		if ev.Type == controller.EventClick && resp.Handled {
			resp.Reset = ev.Remove
		}
		if p := c.Panel(); p != nil {
			resp.Panel = p.OuterHTML()
		}
		resp.Summary = c.Summary()
	})
	if errors.Is(err, session.ErrNotFound) {
		WriteJSONError(w, http.StatusNotFound, "session_not_found", "")
		return
	}
	resp.Sequence = a.Sessions.NextEvent()
	a.touchSession(w, id)
	writeJSON(w, http.StatusOK, resp)
	obs.Logger.Info("cart_event",
		"request_id", resp.RequestID,
		"sequence", resp.Sequence,
		"session_id", id,
		"type", ev.Type,
		"handled", resp.Handled,
		"items", len(resp.Summary.Items),
		"credits_remaining", resp.Summary.RemainingDisplay,
	)
}

// dispatch resolves the event's origin element in the session page and hands
// it to the controller's document-level listener.
func dispatch(c *controller.Controller, ev eventRequest) bool {
	switch ev.Type {
	case controller.EventChange:
		picker := c.Picker(ev.CourseCode)
		if picker == nil {
			return false
		}
		picker.SetValue(ev.Value)
		return c.Dispatch(controller.Event{Type: ev.Type, Target: picker})
	case controller.EventClick:
		btn := c.RemoveButton(ev.Remove)
		if btn == nil {
			return false
		}
		return c.Dispatch(controller.Event{Type: ev.Type, Target: btn})
	}
	return false
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	var sum model.Summary
	err := a.Sessions.Do(a.sessionID(r), func(c *controller.Controller) {
		sum = c.Summary()
	})
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "session_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (a *App) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(r)
	if !a.Sessions.Delete(id) {
		WriteJSONError(w, http.StatusNotFound, "session_not_found", "")
		return
	}
	a.setSessionCookie(w, "", -1)
	obs.Logger.Info("session_discarded", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	active, created, expired, events := a.Sessions.Metrics()
	m := map[string]any{
		"sessions_active":  active,
		"sessions_created": created,
		"sessions_expired": expired,
		"events_processed": events,
		"uptime_sec":       time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(httpopenapi.DocsHTML)
}
