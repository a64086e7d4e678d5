package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"quote-manager/core/database"
	"quote-manager/core/storage"
	"quote-manager/core/utils"
	"quote-manager/feature/export/models"
	"quote-manager/feature/export/slots"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store loads the inputs of an export: the quote record with its BOM lines,
// and any persisted draft snapshots. Both are read-only collaborators.
type Store interface {
	// LoadQuote loads a quote by id or reference.
	LoadQuote(ctx context.Context, identifier string) (*models.QuoteRecord, error)
	// LoadDrafts loads the draft snapshots persisted for a quote. A
	// missing or unreachable draft store yields an empty list plus the
	// error; callers degrade rather than abort.
	LoadDrafts(ctx context.Context, quoteID string) ([]models.DraftSnapshot, error)
}

// Table names per record-store schema generation.
const (
	itemsTableCurrent = "quote_items"
	itemsTableLegacy  = "quote_line_items"
	quotesTable       = "quotes"
)

// RecordStore is the gorm + minio backed Store implementation.
type RecordStore struct {
	db          *gorm.DB
	client      storage.Client
	bucket      string
	draftPrefix string
	schema      string
	logger      *zap.Logger

	tableOnce  sync.Once
	itemsTable string
}

// NewRecordStore creates a store over the given connections. client may be
// nil when no draft storage is configured.
func NewRecordStore(db *gorm.DB, client storage.Client, bucket, draftPrefix, schema string, logger *zap.Logger) *RecordStore {
	if draftPrefix == "" {
		draftPrefix = "drafts"
	}
	return &RecordStore{
		db:          db,
		client:      client,
		bucket:      bucket,
		draftPrefix: draftPrefix,
		schema:      schema,
		logger:      logger,
	}
}

// resolveItemsTable picks the line-items table for the connected schema
// generation, probing the database once when the profile is "auto".
func (s *RecordStore) resolveItemsTable() string {
	s.tableOnce.Do(func() {
		switch s.schema {
		case database.SchemaCurrent:
			s.itemsTable = itemsTableCurrent
		case database.SchemaLegacy:
			s.itemsTable = itemsTableLegacy
		default:
			s.itemsTable = itemsTableCurrent
			if exists, err := database.TableExists(s.db, itemsTableCurrent); err == nil && !exists {
				if exists, err := database.TableExists(s.db, itemsTableLegacy); err == nil && exists {
					s.itemsTable = itemsTableLegacy
					s.logger.Info("Using legacy record-store schema", zap.String("table", itemsTableLegacy))
				}
			}
		}
	})
	return s.itemsTable
}

// LoadQuote loads a quote row and its BOM line items. Rows are scanned
// generically by column name: schema generations disagree on which columns
// exist, and the payload column carries the loosely typed configuration
// the engine reconciles.
func (s *RecordStore) LoadQuote(ctx context.Context, identifier string) (*models.QuoteRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("quote record store is not connected")
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ? OR reference = ? LIMIT 1", quotesTable)
	rows, err := scanRows(ctx, s.db, query, identifier, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote %s: %w", identifier, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("quote %s not found", identifier)
	}

	row := rows[0]
	quote := &models.QuoteRecord{
		ID:           utils.ToString(row["id"]),
		Reference:    utils.ToString(row["reference"]),
		CustomerName: utils.ToString(row["customer_name"]),
		Status:       utils.ToString(row["status"]),
		Payload:      decodePayload(row["payload"]),
	}

	itemsTable := s.resolveItemsTable()
	itemQuery := fmt.Sprintf("SELECT * FROM %s WHERE quote_id = ? ORDER BY id", itemsTable)
	itemRows, err := scanRows(ctx, s.db, itemQuery, quote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of quote %s: %w", quote.ID, err)
	}

	for _, ir := range itemRows {
		quote.Items = append(quote.Items, models.BOMItem{
			ID:         utils.ToString(ir["id"]),
			ProductID:  utils.ToString(ir["product_id"]),
			PartNumber: utils.ToString(ir["part_number"]),
			Name:       utils.ToString(ir["name"]),
			Payload:    decodePayload(ir["payload"]),
		})
	}

	return quote, nil
}

// LoadDrafts lists and fetches the draft snapshot objects persisted under
// <prefix>/<quote-id>/. Individual unreadable drafts are skipped with a
// warning; the export runs on whatever loaded.
func (s *RecordStore) LoadDrafts(ctx context.Context, quoteID string) ([]models.DraftSnapshot, error) {
	if s.client == nil {
		return nil, nil
	}

	prefix := s.draftPrefix + "/" + quoteID + "/"
	var drafts []models.DraftSnapshot

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return drafts, fmt.Errorf("failed to list drafts for quote %s: %w", quoteID, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}

		draft, err := s.loadDraftObject(ctx, obj.Key)
		if err != nil {
			s.logger.Warn("Skipping unreadable draft snapshot",
				zap.String("object", obj.Key), zap.Error(err))
			continue
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func (s *RecordStore) loadDraftObject(ctx context.Context, key string) (models.DraftSnapshot, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return models.DraftSnapshot{}, err
	}
	defer reader.Close()

	var raw struct {
		Key        string               `json:"key"`
		ProductID  string               `json:"product_id"`
		PartNumber string               `json:"part_number"`
		Entries    []slots.RawSlotEntry `json:"entries"`
	}
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return models.DraftSnapshot{}, fmt.Errorf("failed to decode draft %s: %w", key, err)
	}

	draft := models.DraftSnapshot{Key: raw.Key, Entries: raw.Entries}
	if draft.Key == "" {
		draft.Key = raw.ProductID
	}
	if draft.Key == "" {
		draft.Key = raw.PartNumber
	}
	if draft.Key == "" {
		// Older editors named the object after the product instead of
		// writing a key field.
		draft.Key = strings.TrimSuffix(path.Base(key), ".json")
	}
	return draft, nil
}

// scanRows runs a raw query and scans every row into a column-keyed map.
func scanRows(ctx context.Context, db *gorm.DB, query string, args ...any) ([]map[string]any, error) {
	dbRows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	columns, err := dbRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var out []map[string]any
	for dbRows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := dbRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, dbRows.Err()
}

// decodePayload turns a JSON payload column into a map. Unparsable payloads
// decode to nil; the engine treats that as an empty configuration rather
// than failing the load.
func decodePayload(val any) map[string]any {
	var data []byte
	switch v := val.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}
