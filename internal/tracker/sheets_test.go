package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/pkg/logger"
)

// fakeSheets serves the subset of the Sheets v4 API the tracker uses
type fakeSheets struct {
	mu        sync.Mutex
	hasSheet  bool
	rows      [][]interface{}
	appends   int
	batchData []map[string]interface{}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/sheet-1"):
		sheets := []map[string]interface{}{}
		if f.hasSheet {
			sheets = append(sheets, map[string]interface{}{"properties": map[string]interface{}{"title": "Drafts"}})
		}
		writeJSON(w, map[string]interface{}{"spreadsheetId": "sheet-1", "sheets": sheets})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/spreadsheets/sheet-1:batchUpdate"):
		f.hasSheet = true
		writeJSON(w, map[string]interface{}{"spreadsheetId": "sheet-1"})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/values:batchUpdate"):
		var req struct {
			Data []map[string]interface{} `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.batchData = append(f.batchData, req.Data...)
		writeJSON(w, map[string]interface{}{"spreadsheetId": "sheet-1"})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.rows = append(f.rows, body.Values...)
		f.appends++
		writeJSON(w, map[string]interface{}{"spreadsheetId": "sheet-1"})

	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(f.rows) == 0 {
			f.rows = append(f.rows, body.Values...)
		}
		writeJSON(w, map[string]interface{}{"spreadsheetId": "sheet-1"})

	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		var values [][]interface{}
		switch {
		case strings.HasSuffix(rng, "!A1:K1"):
			if len(f.rows) > 0 {
				values = f.rows[:1]
			}
		case strings.HasSuffix(rng, "!A:A"):
			for _, row := range f.rows {
				values = append(values, row[:1])
			}
		case strings.HasSuffix(rng, "!A2:K"):
			if len(f.rows) > 1 {
				values = f.rows[1:]
			}
		}
		writeJSON(w, map[string]interface{}{"range": rng, "values": values})

	default:
		http.Error(w, "unexpected "+r.Method+" "+path, http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}

func newTestTracker(t *testing.T, fake *fakeSheets) *SheetsTracker {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	tr, err := newSheetsTracker(context.Background(),
		config.TrackerConfig{Enabled: true, SpreadsheetID: "sheet-1"},
		nil, logger.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return tr
}

func TestNewSheetsTracker_Disabled(t *testing.T) {
	tr, err := NewSheetsTracker(context.Background(), config.TrackerConfig{}, nil, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, tr)

	_, err = NewSheetsTracker(context.Background(), config.TrackerConfig{Enabled: true, SpreadsheetID: "x"}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestExportDrafts(t *testing.T) {
	fake := &fakeSheets{}
	tr := newTestTracker(t, fake)
	ctx := context.Background()

	when := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	drafts := []*models.Draft{
		{
			ID: 1, PlanID: "plan-1", UserID: "u-1", Platform: "linkedin", Topic: "Roadmaps",
			Content:  strings.Repeat("é", 250),
			Metadata: models.JSON{"estimated_engagement": 62, "word_count": float64(41)},
			Status:   models.PlanStatusDraft, ScheduledFor: &when, CreatedAt: when.Add(-time.Hour),
		},
		{ID: 2, PlanID: "plan-1", UserID: "u-1", Platform: "twitter", Topic: "Pricing", Content: "Short", Status: models.PlanStatusDraft},
	}

	added, updated, err := tr.ExportDrafts(ctx, drafts)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, updated)
	assert.True(t, fake.hasSheet)
	assert.Equal(t, 1, fake.appends)
	require.Len(t, fake.rows, 3)
	assert.Equal(t, "Draft ID", fake.rows[0][0])

	tracked, err := tr.GetTrackedDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	assert.Equal(t, uint(1), tracked[0].DraftID)
	assert.Equal(t, "linkedin", tracked[0].Platform)
	assert.Equal(t, 62, tracked[0].Engagement)
	assert.Equal(t, 41, tracked[0].Words)
	assert.Equal(t, when, tracked[0].ScheduledFor)
	assert.Equal(t, previewLength+3, len([]rune(tracked[0].ContentPreview)))
	assert.True(t, tracked[1].ScheduledFor.IsZero())

	drafts[1].Status = models.PlanStatusScheduled
	drafts[1].ScheduledFor = &when
	added, updated, err = tr.ExportDrafts(ctx, drafts[1:])
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, fake.appends)
	require.Len(t, fake.batchData, 2)
	assert.Equal(t, "Drafts!F3", fake.batchData[0]["range"])
	assert.Equal(t, "Drafts!J3", fake.batchData[1]["range"])
}

func TestExportDrafts_Empty(t *testing.T) {
	fake := &fakeSheets{}
	added, updated, err := newTestTracker(t, fake).ExportDrafts(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, added+updated)
	assert.False(t, fake.hasSheet)
}

func TestParseRow(t *testing.T) {
	assert.Nil(t, parseRow(nil))
	assert.Nil(t, parseRow([]interface{}{"Draft ID"}))

	d := parseRow([]interface{}{"7", "p", "u", "instagram"})
	require.NotNil(t, d)
	assert.Equal(t, uint(7), d.DraftID)
	assert.Equal(t, "instagram", d.Platform)
	assert.Empty(t, d.Topic)
}
