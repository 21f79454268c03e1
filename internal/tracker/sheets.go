package tracker

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

// SheetColumns defines the column headers for the Drafts tracking sheet
var SheetColumns = []string{
	"Draft ID",
	"Plan ID",
	"User ID",
	"Platform",
	"Topic",
	"Status",
	"Content Preview",
	"Engagement",
	"Words",
	"Scheduled For",
	"Created At",
}

const (
	lastColumn     = "K"
	previewLength  = 200
	statusColumn   = "F"
	scheduleColumn = "J"
)

// TrackedDraft represents a draft row in the tracking sheet
type TrackedDraft struct {
	DraftID        uint
	PlanID         string
	UserID         string
	Platform       string
	Topic          string
	Status         models.PlanStatus
	ContentPreview string
	Engagement     int
	Words          int
	ScheduledFor   time.Time
	CreatedAt      time.Time
}

// SheetsTracker mirrors stored drafts into a Google Sheet for review
type SheetsTracker struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	rateLimiter   *ratelimit.MultiLimiter
	log           *logger.Logger
}

// NewSheetsTracker creates a new Google Sheets tracker. It returns nil when
// tracking is disabled.
func NewSheetsTracker(ctx context.Context, cfg config.TrackerConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) (*SheetsTracker, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var opt option.ClientOption
	// Try service account JSON first (for env var injection)
	switch {
	case cfg.ServiceAccountJSON != "":
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	case cfg.CredentialsFile != "":
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("no Google credentials provided: set credentials_file or service_account_json")
	}

	return newSheetsTracker(ctx, cfg, limiter, log, opt)
}

func newSheetsTracker(ctx context.Context, cfg config.TrackerConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger, opts ...option.ClientOption) (*SheetsTracker, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("tracker spreadsheet_id is required")
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Drafts"
	}

	return &SheetsTracker{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		rateLimiter:   limiter,
		log:           log.WithComponent("sheets-tracker"),
	}, nil
}

func (t *SheetsTracker) wait(ctx context.Context) error {
	if t.rateLimiter == nil {
		return nil
	}
	return t.rateLimiter.Wait(ctx, ratelimit.LimiterSheets)
}

// InitializeSheet creates the sheet and headers if they don't exist
func (t *SheetsTracker) InitializeSheet(ctx context.Context) error {
	if err := t.ensureSheetExists(ctx); err != nil {
		return err
	}

	if err := t.wait(ctx); err != nil {
		return err
	}
	readRange := fmt.Sprintf("%s!A1:%s1", t.sheetName, lastColumn)
	resp, err := t.service.Spreadsheets.Values.Get(t.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(resp.Values) > 0 {
		t.log.Debug().Msg("Sheet already has headers")
		return nil
	}

	headerRow := make([]interface{}, 0, len(SheetColumns))
	for _, col := range SheetColumns {
		headerRow = append(headerRow, col)
	}

	if err := t.wait(ctx); err != nil {
		return err
	}
	_, err = t.service.Spreadsheets.Values.Update(t.spreadsheetID, t.sheetName+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{headerRow},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	t.log.Info().Msg("Sheet headers initialized")
	return nil
}

// ensureSheetExists creates the sheet if it doesn't exist
func (t *SheetsTracker) ensureSheetExists(ctx context.Context) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	spreadsheet, err := t.service.Spreadsheets.Get(t.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == t.sheetName {
			return nil
		}
	}

	t.log.Info().Str("sheet", t.sheetName).Msg("Creating new sheet")
	if err := t.wait(ctx); err != nil {
		return err
	}
	_, err = t.service.Spreadsheets.BatchUpdate(t.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: t.sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	return nil
}

// ExportDrafts appends drafts missing from the sheet in one call and
// refreshes status and schedule of drafts already tracked. It returns how
// many rows were added and updated.
func (t *SheetsTracker) ExportDrafts(ctx context.Context, drafts []*models.Draft) (int, int, error) {
	if len(drafts) == 0 {
		return 0, 0, nil
	}
	if err := t.InitializeSheet(ctx); err != nil {
		return 0, 0, err
	}

	existing, err := t.existingDraftRows(ctx)
	if err != nil {
		return 0, 0, err
	}

	var newRows [][]interface{}
	var updates []*sheets.ValueRange
	for _, d := range drafts {
		if row, ok := existing[d.ID]; ok {
			updates = append(updates,
				&sheets.ValueRange{
					Range:  fmt.Sprintf("%s!%s%d", t.sheetName, statusColumn, row),
					Values: [][]interface{}{{string(d.Status)}},
				},
				&sheets.ValueRange{
					Range:  fmt.Sprintf("%s!%s%d", t.sheetName, scheduleColumn, row),
					Values: [][]interface{}{{formatTimePtr(d.ScheduledFor)}},
				},
			)
			continue
		}
		newRows = append(newRows, draftRow(d))
	}

	if len(newRows) > 0 {
		if err := t.wait(ctx); err != nil {
			return 0, 0, err
		}
		appendRange := fmt.Sprintf("%s!A:%s", t.sheetName, lastColumn)
		_, err := t.service.Spreadsheets.Values.Append(t.spreadsheetID, appendRange, &sheets.ValueRange{
			Values: newRows,
		}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to batch append drafts: %w", err)
		}
	}

	if len(updates) > 0 {
		if err := t.wait(ctx); err != nil {
			return len(newRows), 0, err
		}
		_, err := t.service.Spreadsheets.Values.BatchUpdate(t.spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             updates,
		}).Context(ctx).Do()
		if err != nil {
			return len(newRows), 0, fmt.Errorf("failed to update tracked drafts: %w", err)
		}
	}

	updated := len(updates) / 2
	t.log.Info().Int("added", len(newRows)).Int("updated", updated).Msg("Drafts synced to sheet")
	return len(newRows), updated, nil
}

// existingDraftRows maps tracked draft IDs to their 1-indexed row numbers
func (t *SheetsTracker) existingDraftRows(ctx context.Context) (map[uint]int, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := t.service.Spreadsheets.Values.Get(t.spreadsheetID, t.sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read draft IDs: %w", err)
	}

	rows := make(map[uint]int)
	for i, row := range resp.Values {
		if i == 0 || len(row) == 0 {
			continue // Skip header
		}
		id, err := strconv.ParseUint(fmt.Sprintf("%v", row[0]), 10, 64)
		if err == nil && id > 0 {
			rows[uint(id)] = i + 1
		}
	}
	return rows, nil
}

// GetTrackedDrafts reads every draft row from the sheet
func (t *SheetsTracker) GetTrackedDrafts(ctx context.Context) ([]*TrackedDraft, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	readRange := fmt.Sprintf("%s!A2:%s", t.sheetName, lastColumn) // Skip header
	resp, err := t.service.Spreadsheets.Values.Get(t.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read drafts: %w", err)
	}

	var drafts []*TrackedDraft
	for _, row := range resp.Values {
		if d := parseRow(row); d != nil {
			drafts = append(drafts, d)
		}
	}
	return drafts, nil
}

func draftRow(d *models.Draft) []interface{} {
	preview := d.Content
	if utf8.RuneCountInString(preview) > previewLength {
		preview = string([]rune(preview)[:previewLength]) + "..."
	}

	return []interface{}{
		d.ID,
		d.PlanID,
		d.UserID,
		d.Platform,
		d.Topic,
		string(d.Status),
		preview,
		metadataInt(d.Metadata, "estimated_engagement"),
		metadataInt(d.Metadata, "word_count"),
		formatTimePtr(d.ScheduledFor),
		d.CreatedAt.Format(time.RFC3339),
	}
}

// metadataInt reads a count from draft metadata, which holds ints before a
// database round trip and float64 after
func metadataInt(m models.JSON, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// parseRow parses a sheet row into a TrackedDraft
func parseRow(row []interface{}) *TrackedDraft {
	if len(row) == 0 {
		return nil
	}

	getString := func(i int) string {
		if i < len(row) {
			return fmt.Sprintf("%v", row[i])
		}
		return ""
	}
	getInt := func(i int) int {
		n, _ := strconv.Atoi(getString(i))
		return n
	}
	getTime := func(i int) time.Time {
		t, _ := time.Parse(time.RFC3339, getString(i))
		return t
	}

	id := getInt(0)
	if id <= 0 {
		return nil
	}

	return &TrackedDraft{
		DraftID:        uint(id),
		PlanID:         getString(1),
		UserID:         getString(2),
		Platform:       getString(3),
		Topic:          getString(4),
		Status:         models.PlanStatus(getString(5)),
		ContentPreview: getString(6),
		Engagement:     getInt(7),
		Words:          getInt(8),
		ScheduledFor:   getTime(9),
		CreatedAt:      getTime(10),
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
