package dashboard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/dataset"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

const metadataCSV = "title,publish_time,journal,abstract\n" +
	"Viral dynamics,2020-03-01,Lancet,abstract one\n" +
	"Mask efficacy,2021-07-15,BMJ,abstract two\n" +
	"Variant spread,2021-09-01,Lancet,\n" +
	",2020-01-01,Nature,orphan\n" +
	"Ancient text,1850-01-01,Lancet,old\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := NewStore(4)
	handler := NewHandler(store, 8, 10)
	srv := httptest.NewServer(NewRouter(handler, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func uploadCSV(t *testing.T, srv *httptest.Server, body string, maxRows string) uploadResponse {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "metadata.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	if maxRows != "" {
		require.NoError(t, mw.WriteField("max_rows", maxRows))
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/datasets", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var up uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	return up
}

func TestUploadCleansAndCounts(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	assert.NotEmpty(t, up.ID)
	assert.Equal(t, 5, up.Meta.Rows)
	assert.Equal(t, 3, up.Cleaned)
	assert.Equal(t, 2, up.Dropped)
	assert.Equal(t, 1, up.Reasons["missing title"])
	assert.Equal(t, 1, up.Reasons["year out of range"])
}

func TestUploadMaxRows(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "2")
	assert.Equal(t, 2, up.Meta.Rows)
	assert.True(t, up.Filtered)
}

func TestUploadRejectsBadSchema(t *testing.T) {
	srv := newTestServer(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "bad.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/datasets", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum stats.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2021, sum.PeakYear)
	assert.Equal(t, "Lancet", sum.Journals[0].Name)
	assert.Equal(t, 100.0, sum.Completeness["title"])
}

func TestSummaryYearFilter(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/summary?year_from=2021&year_to=2021")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sum stats.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 2021, sum.YearMin)
	assert.Equal(t, 2021, sum.YearMax)
}

func TestSummaryBadFilter(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/summary?year_from=2022&year_to=2020")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryUnknownDataset(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/datasets/does-not-exist/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/export?journal=Lancet")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	// header + the two cleaned Lancet rows
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"title", "journal", "year", "title_length", "abstract_length"}, rows[0])
	assert.Equal(t, "Viral dynamics", rows[1][0])
}

func TestChartsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/charts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStoreEvictsOldest(t *testing.T) {
	store := NewStore(2)
	clean := func() *cleaning.Result { return &cleaning.Result{Reasons: map[string]int{}} }
	first := store.Put(dataset.Meta{Name: "a.csv"}, clean())
	store.Put(dataset.Meta{Name: "b.csv"}, clean())
	store.Put(dataset.Meta{Name: "c.csv"}, clean())

	assert.Equal(t, 2, store.Len())
	assert.Nil(t, store.Get(first.ID))
}

func TestFilterJournalCaseInsensitive(t *testing.T) {
	srv := newTestServer(t)
	up := uploadCSV(t, srv, metadataCSV, "")

	resp, err := http.Get(srv.URL + "/api/v1/datasets/" + up.ID + "/summary?journal=lancet")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sum stats.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, 2, sum.Total)
}
