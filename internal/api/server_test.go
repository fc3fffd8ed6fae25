package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seawatch/seawatch/internal/canon"
	"github.com/seawatch/seawatch/internal/events"
	"github.com/seawatch/seawatch/internal/linking"
	"github.com/seawatch/seawatch/internal/mission"
	"github.com/seawatch/seawatch/internal/store"
)

var apiTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestServer() *Server {
	clock := func() time.Time { return apiTime }
	engine := linking.New(store.New(), zerolog.Nop())
	engine.SetClock(clock)
	missions := mission.NewManager(engine, canon.NewWithClock(clock), zerolog.Nop())
	missions.SetClock(clock)
	eventStore := events.NewStore(zerolog.Nop())
	eventStore.SetClock(clock)
	return NewServer(missions, eventStore, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestCreateAndGetTrackPoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId":  "p1",
		"vesselId": "vessel-1",
		"lat":      12.5,
		"lon":      100.9,
		"type":     "Current",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/trackpoints/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	point := resp.Data.(map[string]interface{})
	assert.Equal(t, "vessel-1", point["vesselId"])
	assert.Equal(t, "Current", point["type"])
}

func TestCreateTrackPoint_BadTimestamp(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId":   "p1",
		"timestamp": "not-a-time",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid timestamp")
}

func TestCreateTrackPoint_InvalidJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trackpoints", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrackPoint_NotFound(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/api/v1/trackpoints/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTrackPoints_LegacyView(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId": "p1",
		"type":    "History",
	})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/trackpoints?legacy=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	list := resp.Data.([]interface{})
	require.Len(t, list, 1)
	raw := list[0].(map[string]interface{})
	assert.Equal(t, "2px", raw["borderRadius"], "legacy view carries flat display aliases")
	assert.Equal(t, "#10b981", raw["backgroundColor"])
}

func TestCreateMission(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"action":         "track",
		"targetVesselId": "vessel-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	m := resp.Data.(map[string]interface{})
	assert.Equal(t, "MISSION-1", m["missionId"])
	assert.Equal(t, "dispatched", m["status"])
}

func TestCreateMission_RequiresAction(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"targetVesselId": "vessel-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutoLinkVisibleOverHTTP(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId":   "p1",
		"vesselId":  "vessel-1",
		"timestamp": apiTime.Format(time.RFC3339),
	})
	doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"action":         "track",
		"targetVesselId": "vessel-1",
		"timestamp":      apiTime.Add(time.Hour).Format(time.RFC3339),
	})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/missions/MISSION-1/trackpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	linked := decodeResponse(t, rec).Data.([]interface{})
	require.Len(t, linked, 1)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/trackpoints/p1/missions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	back := decodeResponse(t, rec).Data.([]interface{})
	require.Len(t, back, 1)
	assert.Equal(t, "MISSION-1", back[0].(map[string]interface{})["missionId"])
}

func TestBindAndUnbind(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId":  "p1",
		"vesselId": "vessel-1",
	})
	doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"action":         "notify",
		"targetVesselId": "nobody",
	})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/links", linkRequest{
		MissionID: "MISSION-1",
		PointID:   "p1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/missions/MISSION-1/trackpoints", nil)
	require.Len(t, decodeResponse(t, rec).Data.([]interface{}), 1)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/links", linkRequest{
		MissionID: "MISSION-1",
		PointID:   "p1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/missions/MISSION-1/trackpoints", nil)
	assert.Empty(t, decodeResponse(t, rec).Data)
}

func TestBind_MissingEntities(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/links", linkRequest{
		MissionID: "missing",
		PointID:   "also-missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/links", linkRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnbindByEntity(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/v1/trackpoints", map[string]interface{}{
		"pointId":  "p1",
		"vesselId": "vessel-1",
	})
	doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"action":         "track",
		"targetVesselId": "vessel-1",
	})

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/links/mission/MISSION-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// now unbound; a second unbind is a 404
	rec = doRequest(t, s, http.MethodDelete, "/api/v1/links/mission/MISSION-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/links/point/p1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissionLifecycleEndpoints(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/v1/missions", map[string]interface{}{
		"action":         "uav",
		"targetVesselId": "vessel-1",
	})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/missions/MISSION-1/status", map[string]string{
		"status": "executing",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// regression is a conflict
	rec = doRequest(t, s, http.MethodPost, "/api/v1/missions/MISSION-1/status", map[string]string{
		"status": "arrived",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// nonsense status is a bad request
	rec = doRequest(t, s, http.MethodPost, "/api/v1/missions/MISSION-1/status", map[string]string{
		"status": "teleporting",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown mission is a 404
	rec = doRequest(t, s, http.MethodPost, "/api/v1/missions/missing/status", map[string]string{
		"status": "arrived",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/missions/MISSION-1/progress", map[string]int{
		"progress": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(100), m["progress"])
	assert.Equal(t, "completed", m["status"])
}

func TestEventEndpoints(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/events", map[string]interface{}{
		"type": "rf",
		"rf": map[string]interface{}{
			"rfId":      "RF-2026-001",
			"frequency": "162.025 MHz",
			"strength":  "strong",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec).Data.(map[string]interface{})
	id := created["id"].(string)
	assert.Equal(t, "rf-001", id)

	rec = doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/v1/events/%s/status", id), map[string]string{
		"status": "analyzed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "analyzed", updated["status"])

	rec = doRequest(t, s, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeResponse(t, rec).Data.([]interface{}), 1)

	rec = doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/events/%s", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/v1/events/%s", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveEvent_RequiresKind(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/v1/events", map[string]interface{}{
		"status": "investigating",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
