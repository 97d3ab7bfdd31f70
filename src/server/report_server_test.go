package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sales-forecast/src/logger"
	"sales-forecast/src/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.MConfig {
	return &models.MConfig{
		Name:          "sales-forecast",
		Host:          "127.0.0.1",
		Port:          8000,
		LogLevel:      "ERROR",
		Timezone:      "UTC",
		BusinessHours: models.MBusinessHoursConfig{StartHour: 18, EndHour: 2},
		Forecast:      models.MForecastConfig{Order: models.MModelOrder{P: 5, D: 1}, Horizon: 7},
		Storage:       models.MStorageConfig{DBType: "postgres", DBConnectionString: "postgres://secret@db/sales"},
		Lines: []models.MLineConfig{
			{Name: "pizza", ForecastMetrics: []string{"quantity"}},
			{Name: "bebidas", ForecastMetrics: []string{"quantity", "revenue"}},
		},
	}
}

func testReport() *models.MReport {
	return &models.MReport{
		GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Lines: []models.MLineReport{
			{Line: "pizza", Records: 3, ProductAggregates: []models.MProductAggregate{{ProductID: "A", QuantityTotal: 2, RevenueTotal: 20}}},
			{Line: "bebidas", Records: 5},
		},
		ProcessingMetrics: models.MProcessingMetrics{LinesProcessed: 2, RecordsProcessed: 8},
	}
}

func newTestServer(t *testing.T, runner RunFunc) (*ReportServer, *httptest.Server) {
	t.Helper()
	s := NewReportServer(testConfig(), runner, logger.NewLogger(nil, "test"))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Stop()
	})
	return s, ts
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthAndConfig(t *testing.T) {
	_, ts := newTestServer(t, nil)

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/health", &health))
	assert.Equal(t, "ok", health["status"])

	resp, err := http.Get(ts.URL + "/api/config")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"bebidas"`)
	assert.NotContains(t, string(body), "secret")
}

func TestReportEndpoints(t *testing.T) {
	s, ts := newTestServer(t, nil)

	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/report", nil))

	s.UpdateReport(testReport())

	var report models.MReport
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/report", &report))
	assert.Len(t, report.Lines, 2)

	var line models.MLineReport
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/report/pizza", &line))
	assert.Equal(t, 3, line.Records)
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/report/sushi", nil))

	var metrics models.MProcessingMetrics
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/metrics", &metrics))
	assert.Equal(t, 8, metrics.RecordsProcessed)
}

func TestPostRun(t *testing.T) {
	calls := 0
	s, ts := newTestServer(t, func(ctx context.Context) (*models.MReport, error) {
		calls++
		return testReport(), nil
	})

	resp, err := http.Post(ts.URL+"/api/run", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)
	require.NotNil(t, s.Latest())
	assert.Equal(t, 8, s.Latest().ProcessingMetrics.RecordsProcessed)
}

func TestPostRunFailures(t *testing.T) {
	_, ts := newTestServer(t, func(ctx context.Context) (*models.MReport, error) {
		return nil, errors.New("line pizza: malformed record")
	})
	resp, err := http.Post(ts.URL+"/api/run", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	_, ts = newTestServer(t, nil)
	resp, err = http.Post(ts.URL+"/api/run", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestWebSocketInitialAndUpdate(t *testing.T) {
	s, ts := newTestServer(t, nil)
	conn := dialWS(t, ts)

	var msg models.MReportMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.MessageInitial, msg.Type)
	assert.Nil(t, msg.Report)

	s.Broadcast(testReport())

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.MessageUpdate, msg.Type)
	require.NotNil(t, msg.Report)
	assert.Len(t, msg.Report.Lines, 2)
}

func TestWebSocketSubscribeFiltersLines(t *testing.T) {
	s, ts := newTestServer(t, nil)
	s.UpdateReport(testReport())
	conn := dialWS(t, ts)

	var msg models.MReportMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.NotNil(t, msg.Report)
	assert.Len(t, msg.Report.Lines, 2)

	require.NoError(t, conn.WriteJSON(models.MSubscribeCommand{Command: models.CommandSubscribe, Lines: []string{"bebidas"}}))

	msg = models.MReportMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	require.NotNil(t, msg.Report)
	require.Len(t, msg.Report.Lines, 1)
	assert.Equal(t, "bebidas", msg.Report.Lines[0].Line)
}

func TestWebSocketUpdatesFollowSubscription(t *testing.T) {
	s, ts := newTestServer(t, nil)
	conn := dialWS(t, ts)

	var msg models.MReportMessage
	require.NoError(t, conn.ReadJSON(&msg))

	require.NoError(t, conn.WriteJSON(models.MSubscribeCommand{Command: models.CommandSubscribe, Lines: []string{"pizza"}}))
	msg = models.MReportMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.MessageInitial, msg.Type)

	s.Broadcast(testReport())

	msg = models.MReportMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.MessageUpdate, msg.Type)
	require.NotNil(t, msg.Report)
	require.Len(t, msg.Report.Lines, 1)
	assert.Equal(t, "pizza", msg.Report.Lines[0].Line)
}

func TestClientView(t *testing.T) {
	message := &models.MReportMessage{Type: models.MessageUpdate, Report: testReport()}
	client := &Client{}

	assert.Same(t, message, client.view(message))

	client.subscribe([]string{"bebidas"})
	view := client.view(message)
	require.Len(t, view.Report.Lines, 1)
	assert.Equal(t, "bebidas", view.Report.Lines[0].Line)
	assert.Len(t, message.Report.Lines, 2)

	empty := &models.MReportMessage{Type: models.MessageInitial}
	assert.Same(t, empty, client.view(empty))
}

func TestFilterLines(t *testing.T) {
	report := testReport()
	assert.Same(t, report, filterLines(report, nil))
	assert.Nil(t, filterLines(nil, []string{"pizza"}))
	assert.Empty(t, filterLines(report, []string{"sushi"}).Lines)
}
