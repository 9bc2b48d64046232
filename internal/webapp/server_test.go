package webapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hashcrack/internal/config"
	"hashcrack/internal/logging"
	"hashcrack/pkg/api"
)

// sha256("bob")
const bobSHA256 = "81b637d8fcd2c6da6359e6963113a1170de795e4b725b84d1e0b4cfd9ec58ce9"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log, err := logging.New(filepath.Join(t.TempDir(), "web.log"), false)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return New("localhost:0", config.Default(), log)
}

func postRun(t *testing.T, srv *Server, req api.RunRequestV1) (*httptest.ResponseRecorder, api.RunResponseV1) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader(string(body))))
	var resp api.RunResponseV1
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestIndexServed(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "hashcrack")
}

func TestRunFindsMatch(t *testing.T) {
	srv := newTestServer(t)
	rec, resp := postRun(t, srv, api.RunRequestV1{
		CSVData:   "alice\nbob\ncharlie\n",
		Target:    bobSHA256,
		Algorithm: "sha256",
		Workers:   2,
		ChunkSize: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.JobID)
	require.Equal(t, 1, resp.MatchesFound)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "bob", resp.Results[0].Original)
	require.Equal(t, bobSHA256, resp.Results[0].Hash)
	require.Equal(t, 3, resp.Stats.TotalItems)
}

func TestRunNoMatch(t *testing.T) {
	srv := newTestServer(t)
	rec, resp := postRun(t, srv, api.RunRequestV1{
		CSVData:   "alice\ncharlie\n",
		Target:    bobSHA256,
		Algorithm: "sha256",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.Equal(t, 0, resp.MatchesFound)
	require.Empty(t, resp.Results)
}

func TestRunRejectsEmptyCSV(t *testing.T) {
	srv := newTestServer(t)
	rec, resp := postRun(t, srv, api.RunRequestV1{Target: bobSHA256})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "csv_data")
}

func TestRunRejectsUnknownAlgorithm(t *testing.T) {
	srv := newTestServer(t)
	rec, resp := postRun(t, srv, api.RunRequestV1{
		CSVData:   "alice\n",
		Algorithm: "md5",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Error)
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader("{not json")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
