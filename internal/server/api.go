package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gloam/internal/being"
	"gloam/internal/event"
	"gloam/internal/objective"
	"gloam/internal/telemetry"
	"gloam/internal/template"
	"gloam/internal/world"
)

// App holds the in-memory state for the server.
// This makes it obvious what the handlers depend on.
type App struct {
	Manager   *objective.Manager
	Bank      *template.Bank
	Bus       *event.Bus
	Ledger    *world.MemoryLedger
	Notifier  *world.MemoryNotifier
	Highlight *world.MemoryHighlighter
	Actions   *world.MemoryActionRegistry
	Map       *world.StubMap
	Telemetry *telemetry.MemoryRepository

	// TrackerSub detaches the completion tracker from the bus when closed.
	TrackerSub *event.Subscription

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// objectiveView is the wire shape of an objective, including the derived
// status so clients never re-implement the terminal rules.
type objectiveView struct {
	*objective.Objective
	Status string `json:"status"`
}

func viewOf(o *objective.Objective) objectiveView {
	status := "active"
	switch {
	case o.Complete:
		status = "complete"
	case o.Failed:
		status = "failed"
	}
	return objectiveView{Objective: o, Status: status}
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	manager := app.Manager
	bank := app.Bank

	Handle(mux, rr, "GET /healthz", "Liveness probe", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":      true,
			"service": "gloam",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	Handle(mux, rr, "GET /api/objectives", "List objectives", "", func(w http.ResponseWriter, r *http.Request) {
		items := manager.Objectives()
		out := make([]objectiveView, 0, len(items))
		for _, o := range items {
			out = append(out, viewOf(o))
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "GET /api/objectives/current", "Get the active daily objective", "", func(w http.ResponseWriter, r *http.Request) {
		o := manager.CurrentDaily()
		if o == nil {
			http.Error(w, "no active daily objective", 404)
			return
		}
		writeJSON(w, viewOf(o))
	})

	Handle(mux, rr, "GET /api/objectives/{id}", "Get one objective", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid objective id", 400)
			return
		}
		o := manager.Get(id)
		if o == nil {
			http.Error(w, "objective not found", 404)
			return
		}
		writeJSON(w, viewOf(o))
	})

	Handle(mux, rr, "POST /api/objectives", "Create a non-daily objective", `{"title":"Appease the bog","xp":20}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			XP          int    `json:"xp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.Title == "" {
			http.Error(w, "title is required", 400)
			return
		}
		o := manager.Add(r.Context(), objective.Content{
			Title:       body.Title,
			Description: body.Description,
			XP:          body.XP,
		})
		writeJSON(w, viewOf(o))
	})

	Handle(mux, rr, "POST /api/objectives/{id}/complete", "Force-complete an objective", `{}`, func(w http.ResponseWriter, r *http.Request) {
		resolveHandler(manager, true)(w, r)
	})

	Handle(mux, rr, "POST /api/objectives/{id}/fail", "Force-fail an objective", `{}`, func(w http.ResponseWriter, r *http.Request) {
		resolveHandler(manager, false)(w, r)
	})

	Handle(mux, rr, "DELETE /api/objectives/{id}", "Remove an objective", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid objective id", 400)
			return
		}
		if !manager.Remove(r.Context(), id) {
			http.Error(w, "objective not found", 404)
			return
		}
		writeJSON(w, map[string]string{"status": "removed"})
	})

	Handle(mux, rr, "POST /api/day/start", "Roll the day over and install a fresh daily objective", `{"has_prisoner":false}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HasPrisoner bool `json:"has_prisoner"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json body", 400)
				return
			}
		}
		o := manager.StartNewDay(r.Context(), world.State{HasPrisoner: body.HasPrisoner})
		writeJSON(w, viewOf(o))
	})

	Handle(mux, rr, "POST /api/events", "Ingest a world event", `{"kind":"sapient_killed","subject":{"id":"v1","category":"vessel"},"x":12,"y":40}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind       string        `json:"kind"`
			Subject    *being.Entity `json:"subject"`
			Recipient  *being.Entity `json:"recipient"`
			Verb       string        `json:"verb"`
			BodyPart   string        `json:"body_part"`
			Object     string        `json:"object"`
			BuildingID string        `json:"building_id"`
			X          *float64      `json:"x"`
			Y          *float64      `json:"y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if !knownKind(body.Kind) {
			http.Error(w, "unknown event kind", 400)
			return
		}

		ev := event.New(event.Kind(body.Kind))
		ev.Subject = body.Subject
		ev.Recipient = body.Recipient
		ev.Verb = body.Verb
		ev.BodyPart = body.BodyPart
		ev.Object = body.Object
		ev.BuildingID = body.BuildingID
		if body.X != nil && body.Y != nil {
			ev = ev.WithPos(*body.X, *body.Y)
		}

		app.Bus.Publish(r.Context(), ev)
		writeJSON(w, map[string]any{"status": "accepted", "event_id": ev.ID})
	})

	Handle(mux, rr, "GET /api/templates", "List the objective template catalog", "", func(w http.ResponseWriter, r *http.Request) {
		type entry struct {
			ID               string `json:"id"`
			RequiresPrisoner bool   `json:"requires_prisoner,omitempty"`
		}
		templates := bank.Templates()
		out := make([]entry, 0, len(templates))
		for _, t := range templates {
			out = append(out, entry{ID: t.ID, RequiresPrisoner: t.RequiresPrisoner})
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "GET /api/state", "Get player-facing world state", "", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{
			"experience": app.Ledger.Experience(),
			"sanity":     app.Ledger.Sanity(),
			"toasts":     app.Notifier.Toasts(),
		}
		if region, ok := app.Highlight.Region(); ok {
			out["highlighted_region"] = region
		}
		if site, ok := app.Highlight.Site(); ok {
			out["highlighted_site"] = site
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "GET /api/telemetry/stats", "Aggregate objective telemetry", "", func(w http.ResponseWriter, r *http.Request) {
		since := app.BootNow
		events, err := app.Telemetry.GetEvents(since, nil)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stats)
	})

	Handle(mux, rr, "GET /api/routes", "List registered routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})
}

func resolveHandler(manager *objective.Manager, success bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid objective id", 400)
			return
		}
		var changed bool
		if success {
			changed = manager.CompleteObjective(r.Context(), id)
		} else {
			changed = manager.FailObjective(r.Context(), id)
		}
		if !changed {
			http.Error(w, "objective not found or already resolved", 409)
			return
		}
		writeJSON(w, viewOf(manager.Get(id)))
	}
}

func knownKind(s string) bool {
	for _, k := range event.Kinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}
