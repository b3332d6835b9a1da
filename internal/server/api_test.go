package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloam/internal/config"
	"gloam/internal/template"
)

func newTestServer(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	app, handler, err := NewHandler(Options{
		Config:   cfg,
		Rand:     rand.New(rand.NewSource(7)),
		StartDay: true,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return app, srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	_, srv := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "gloam", body["service"])
}

func TestCurrentObjectiveAndDayStart(t *testing.T) {
	_, srv := newTestServer(t)

	var current map[string]any
	resp := getJSON(t, srv.URL+"/api/objectives/current", &current)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", current["status"])
	firstID := current["id"]

	var fresh map[string]any
	resp = postJSON(t, srv.URL+"/api/day/start", map[string]any{"has_prisoner": false}, &fresh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, firstID, fresh["id"], "rollover installs a fresh objective")

	// The previous daily failed on rollover and is no longer current.
	resp = getJSON(t, srv.URL+"/api/objectives/current", &current)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, fresh["id"], current["id"])
}

func TestForceResolveConflictsOnSecondAttempt(t *testing.T) {
	app, srv := newTestServer(t)

	o := app.Manager.CurrentDaily()
	require.NotNil(t, o)

	var resolved map[string]any
	resp := postJSON(t, fmt.Sprintf("%s/api/objectives/%d/complete", srv.URL, o.ID), nil, &resolved)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "complete", resolved["status"])

	resp = postJSON(t, fmt.Sprintf("%s/api/objectives/%d/fail", srv.URL, o.ID), nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "terminal objectives never flip")

	assert.Equal(t, 1, app.Ledger.Sanity())
}

func TestCreateAndRemoveObjective(t *testing.T) {
	_, srv := newTestServer(t)

	var created map[string]any
	resp := postJSON(t, srv.URL+"/api/objectives", map[string]any{"title": "Appease the bog", "xp": 20}, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, created["daily"])

	id := int(created["id"].(float64))
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/objectives/%d", srv.URL, id), nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)

	resp = getJSON(t, fmt.Sprintf("%s/api/objectives/%d", srv.URL, id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMissingTitleRejected(t *testing.T) {
	_, srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/objectives", map[string]any{"xp": 5}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventIngest(t *testing.T) {
	_, srv := newTestServer(t)

	var accepted map[string]any
	resp := postJSON(t, srv.URL+"/api/events", map[string]any{
		"kind":    "sapient_killed",
		"subject": map[string]any{"id": "v1", "category": "vessel"},
		"x":       12.0,
		"y":       40.0,
	}, &accepted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", accepted["status"])
	assert.NotEmpty(t, accepted["event_id"])

	resp = postJSON(t, srv.URL+"/api/events", map[string]any{"kind": "meteor_fell"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplateCatalog(t *testing.T) {
	_, srv := newTestServer(t)

	var entries []struct {
		ID               string `json:"id"`
		RequiresPrisoner bool   `json:"requires_prisoner"`
	}
	resp := getJSON(t, srv.URL+"/api/templates", &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, entries, 12)

	found := false
	for _, e := range entries {
		if e.ID == template.TplPrisonerRite {
			found = true
			assert.True(t, e.RequiresPrisoner)
		}
	}
	assert.True(t, found)
}

func TestStateEndpoint(t *testing.T) {
	app, srv := newTestServer(t)
	app.Ledger.AwardExperience(10, "test")

	var state map[string]any
	resp := getJSON(t, srv.URL+"/api/state", &state)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), state["experience"])
	assert.NotEmpty(t, state["toasts"], "day start leaves a toast behind")
}

func TestTelemetryStats(t *testing.T) {
	app, srv := newTestServer(t)

	o := app.Manager.CurrentDaily()
	require.NotNil(t, o)
	postJSON(t, fmt.Sprintf("%s/api/objectives/%d/complete", srv.URL, o.ID), nil, nil)

	var stats map[string]any
	resp := getJSON(t, srv.URL+"/api/telemetry/stats", &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), stats["days_started"])
	assert.Equal(t, float64(1), stats["objectives_completed"])
}

func TestRouteRegistryListsRoutes(t *testing.T) {
	_, srv := newTestServer(t)

	var routes []RouteDoc
	resp := getJSON(t, srv.URL+"/api/routes", &routes)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, routes)
	for _, rt := range routes {
		assert.NotEmpty(t, rt.Method)
		assert.NotEmpty(t, rt.Pattern)
	}
}

func TestTrackerSubscriptionExposedForTeardown(t *testing.T) {
	app, _ := newTestServer(t)
	require.NotNil(t, app.TrackerSub)
	app.TrackerSub.Close()
	app.TrackerSub.Close() // double close stays a no-op
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-Id"))
}
