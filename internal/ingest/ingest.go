// Package ingest loads a product catalog CSV into the store. Rows may carry
// a precomputed embedding as a JSON array string; rows without one get a
// fresh embedding from the provider.
package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/smartretail/assistant/internal/store"
	"github.com/smartretail/assistant/provider"
)

// Column length caps matching the products schema.
const (
	maxNameLen     = 200
	maxCategoryLen = 1000
	maxBrandLen    = 500
)

// Ingester writes catalog rows with embeddings into the store.
type Ingester struct {
	Store  *store.Store
	LLM    provider.Provider
	Logger *log.Logger
}

// NewIngester wires an ingester; a nil logger gets a prefixed default.
func NewIngester(st *store.Store, llm provider.Provider, logger *log.Logger) *Ingester {
	if logger == nil {
		logger = log.New(log.Writer(), "[INGEST] ", log.LstdFlags)
	}
	return &Ingester{Store: st, LLM: llm, Logger: logger}
}

// IngestCSV reads the product CSV at path and inserts up to limit rows
// (limit <= 0 means all). Bad rows are logged and skipped, matching the
// reference loader's keep-going behaviour. Returns the number inserted.
func (i *Ingester) IngestCSV(ctx context.Context, path string, limit int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	if _, ok := cols["product_name"]; !ok {
		return 0, fmt.Errorf("csv missing product_name column")
	}

	inserted := 0
	for limit <= 0 || inserted < limit {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			i.Logger.Printf("skipping malformed row: %v", err)
			continue
		}

		rec, err := i.buildRecord(ctx, cols, row)
		if err != nil {
			i.Logger.Printf("skipping row: %v", err)
			continue
		}
		if err := i.Store.InsertProduct(ctx, rec); err != nil {
			i.Logger.Printf("insert %q: %v", rec.Name, err)
			continue
		}
		inserted++
	}

	i.Logger.Printf("ingested %d products from %s", inserted, path)
	return inserted, nil
}

func (i *Ingester) buildRecord(ctx context.Context, cols map[string]int, row []string) (store.CatalogRecord, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := capRunes(field("product_name"), maxNameLen)
	if name == "" {
		return store.CatalogRecord{}, fmt.Errorf("product_name empty")
	}

	rec := store.CatalogRecord{
		Name:        name,
		Description: optional(field("description")),
		Category:    optional(capRunes(field("category"), maxCategoryLen)),
		Brand:       optional(capRunes(field("brand"), maxBrandLen)),
	}
	if raw := field("list_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return store.CatalogRecord{}, fmt.Errorf("list_price %q: %w", raw, err)
		}
		rec.ListPrice = &price
	}

	if raw := field("embedding"); raw != "" {
		var vec []float32
		if err := json.Unmarshal([]byte(raw), &vec); err != nil {
			return store.CatalogRecord{}, fmt.Errorf("embedding column: %w", err)
		}
		rec.Vector = vec
		return rec, nil
	}

	vec, err := i.LLM.Embed(ctx, embeddingText(rec))
	if err != nil {
		return store.CatalogRecord{}, fmt.Errorf("embed %q: %w", rec.Name, err)
	}
	rec.Vector = vec
	return rec, nil
}

// embeddingText is what gets embedded when the CSV carries no vector.
func embeddingText(rec store.CatalogRecord) string {
	parts := []string{rec.Name}
	if rec.Category != nil {
		parts = append(parts, *rec.Category)
	}
	if rec.Brand != nil {
		parts = append(parts, *rec.Brand)
	}
	if rec.Description != nil {
		parts = append(parts, *rec.Description)
	}
	return strings.Join(parts, " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func capRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
