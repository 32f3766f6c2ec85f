package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimewatch/database"
)

func putStatus(t *testing.T, r http.Handler, token string, reportID uint, status string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"status": "` + status + `"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/reports/"+strconv.FormatUint(uint64(reportID), 10)+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createUser(t, db, "admin", "admin123", true)
	alice := createUser(t, db, "alice", "secret1", false)
	report := createReport(t, db, alice.ID, "Bike stolen")

	w := putStatus(t, r, tokenFor(t, cfg, admin), report.ID, database.StatusInvestigating)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, database.StatusInvestigating, resp["status"])

	var stored database.CrimeReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	assert.Equal(t, database.StatusInvestigating, stored.Status)

	var audits []database.Audit
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, database.StatusInvestigating, audits[0].NewStatus)
}

func TestUpdateStatusEndpoint_Failures(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createUser(t, db, "admin", "admin123", true)
	alice := createUser(t, db, "alice", "secret1", false)
	report := createReport(t, db, alice.ID, "Bike stolen")

	// Non-admin callers are stopped at the admin gate.
	w := putStatus(t, r, tokenFor(t, cfg, alice), report.ID, database.StatusResolved)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing token.
	w = putStatus(t, r, "", report.ID, database.StatusResolved)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown report.
	w = putStatus(t, r, tokenFor(t, cfg, admin), 9999, database.StatusResolved)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Status outside the workflow set.
	w = putStatus(t, r, tokenFor(t, cfg, admin), report.ID, "Closed")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// None of the failures touched the report or the audit trail.
	var stored database.CrimeReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	assert.Equal(t, database.StatusPending, stored.Status)
	var n int64
	require.NoError(t, db.Model(&database.Audit{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestAdminReportsEndpoint(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createUser(t, db, "admin", "admin123", true)
	alice := createUser(t, db, "alice", "secret1", false)
	createReport(t, db, alice.ID, "Bike stolen downtown")
	createReport(t, db, alice.ID, "Window smashed")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports?q=downtown", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reports      []database.CrimeReport `json:"reports"`
		TotalReports int64                  `json:"total_reports"`
		Pending      int64                  `json:"pending"`
		TotalPages   int                    `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.TotalReports)
	assert.EqualValues(t, 1, resp.Pending)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "Bike stolen downtown", resp.Reports[0].Description)
}

func TestExportEndpoint(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createUser(t, db, "admin", "admin123", true)
	alice := createUser(t, db, "alice", "secret1", false)
	createReport(t, db, alice.ID, "Line one\nline two")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports/export", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Disposition"), "reports.csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,user,crime_type,description,location,status,timestamp", lines[0])
	// Newlines inside the description are flattened to spaces.
	assert.Contains(t, lines[1], "Line one line two")
	assert.Contains(t, lines[1], "alice")
}

func TestReportAuditsEndpoint(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createUser(t, db, "admin", "admin123", true)
	alice := createUser(t, db, "alice", "secret1", false)
	report := createReport(t, db, alice.ID, "Bike stolen")

	require.Equal(t, http.StatusOK, putStatus(t, r, tokenFor(t, cfg, admin), report.ID, database.StatusInvestigating).Code)
	require.Equal(t, http.StatusOK, putStatus(t, r, tokenFor(t, cfg, admin), report.ID, database.StatusResolved).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports/"+strconv.FormatUint(uint64(report.ID), 10)+"/audits", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Audits []database.Audit `json:"audits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Audits, 2)
	assert.Equal(t, database.StatusInvestigating, resp.Audits[0].NewStatus)
	assert.Equal(t, database.StatusResolved, resp.Audits[1].NewStatus)
}
