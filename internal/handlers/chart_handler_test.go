package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"construction-planner-api/internal/database"
	"construction-planner-api/internal/models"
	"construction-planner-api/internal/schedule"

	"github.com/stretchr/testify/require"
)

func TestGetChart_EndToEnd(t *testing.T) {
	r := setupTaskRouter(t)

	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "task-1", Name: "A", Duration: 5, StartDate: "2024-01-01", Position: 0,
	}).Error)
	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "task-2", Name: "B", Duration: 3, StartDate: "2024-01-06", DependsOn: "a", Position: 1,
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/chart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var chart schedule.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	require.Len(t, chart.Rows, 2)
	require.Equal(t, "A #0", chart.Rows[0].Label)
	require.Nil(t, chart.Rows[0].Connector)
	require.NotNil(t, chart.Rows[1].Connector, "case-insensitive dependency resolves")
	require.Equal(t, 0, chart.Rows[1].Connector.FromRow)
}

func TestGetChart_CacheInvalidatedByMutation(t *testing.T) {
	r := setupTaskRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/chart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var empty schedule.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	require.Empty(t, empty.Rows)

	payload, _ := json.Marshal(map[string]any{
		"name": "Foundation", "duration": 5, "startDate": "2024-01-01",
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", payload))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/chart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var chart schedule.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	require.Len(t, chart.Rows, 1, "chart rebuilt after the add")
}

func TestGetChart_MalformedRecordReportsRenderError(t *testing.T) {
	r := setupTaskRouter(t)

	// Imported data is not validated at write time, so a junk date can sit
	// in the store; the chart endpoint must report it, not crash.
	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "task-1", Name: "A", Duration: 5, StartDate: "garbage", Position: 0,
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/chart", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Error rendering chart")
}
