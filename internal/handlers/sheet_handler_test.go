package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"construction-planner-api/internal/auth"
	"construction-planner-api/internal/database"
	"construction-planner-api/internal/models"
	"construction-planner-api/internal/sheet"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "tasks.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	token, err := auth.GenerateToken("user-1", "planner")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func exportBody(t *testing.T, r *gin.Engine) []byte {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/tasks/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	return w.Body.Bytes()
}

func TestExportImport_RoundTrip(t *testing.T) {
	r := setupTaskRouter(t)

	late := 2
	seed := []models.Task{
		{ID: "task-1", Name: "Foundation", Duration: 5, StartDate: "2024-01-01", Progress: 100,
			ActualStart: "2024-01-01", ActualFinish: "2024-01-07", Delay: &late, Position: 0},
		{ID: "task-2", Name: "Framing", Duration: 3, StartDate: "2024-01-06", DependsOn: "Foundation",
			Progress: 40, Position: 1},
	}
	require.NoError(t, database.GetDB().Create(&seed).Error)

	exported := exportBody(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, exported))
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Task
	require.NoError(t, database.GetDB().Order("position asc").Find(&got).Error)
	require.Len(t, got, 2)
	require.Equal(t, "Foundation", got[0].Name)
	require.Equal(t, 5, got[0].Duration)
	require.Equal(t, "2024-01-01", got[0].StartDate)
	require.NotNil(t, got[0].Delay)
	require.Equal(t, 2, *got[0].Delay, "delay recomputed identically on import")
	require.Equal(t, "Foundation", got[1].DependsOn)
	require.Nil(t, got[1].Delay)
}

func TestImport_InvalidFileLeavesStoreUntouched(t *testing.T) {
	r := setupTaskRouter(t)

	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "task-1", Name: "Foundation", Duration: 5, StartDate: "2024-01-01", Position: 0,
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, []byte("not a workbook")))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, database.GetDB().Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "previous schedule retained")
}

func TestImport_MissingColumnsLeavesStoreUntouched(t *testing.T) {
	r := setupTaskRouter(t)

	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "task-1", Name: "Foundation", Duration: 5, StartDate: "2024-01-01", Position: 0,
	}).Error)

	// Valid workbook, wrong columns.
	f, err := sheet.Write(nil)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet.SheetName, "A1", &[]interface{}{"Name", "Days"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, buf.Bytes()))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Error loading file")

	var count int64
	require.NoError(t, database.GetDB().Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestExport_EmptyStore(t *testing.T) {
	r := setupTaskRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/tasks/export", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
