package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"

	"github.com/smartretail/assistant/models"
)

// DefaultEmbeddingDimensions is the expected length of vectors stored in the
// products embedding column (text-embedding-3-small).
const DefaultEmbeddingDimensions = 1536

// DefaultTopK is the retrieval depth used when the caller passes none.
const DefaultTopK = 5

// Store wraps the catalog database. It is read-mostly: the chat path only
// ever calls SearchProducts; InsertProduct exists for the ingest command.
type Store struct {
	DB *sql.DB
}

// NewWithDSN opens a postgres connection and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CatalogRecord is one product row as written by the ingest path. The
// similarity field of models.Product has no meaning at write time, hence the
// separate type.
type CatalogRecord struct {
	Name        string
	Description *string
	Category    *string
	ListPrice   *float64
	Brand       *string
	Vector      []float32
}

// SearchProducts returns the topK catalog rows closest to the query vector,
// ranked by the store. The vector crosses the wire as a JSON array of
// numbers, which doubles as the pgvector literal format.
func (s *Store) SearchProducts(ctx context.Context, vector []float32, topK int) ([]models.Product, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector must not be empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	vecLiteral, err := encodeVectorLiteral(vector)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, product_name, description, category, list_price, brand, similarity
FROM search_products($1, $2)
`, vecLiteral, topK)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p           models.Product
			description sql.NullString
			category    sql.NullString
			listPrice   sql.NullFloat64
			brand       sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &description, &category, &listPrice, &brand, &p.Similarity); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		if description.Valid {
			p.Description = &description.String
		}
		if category.Valid {
			p.Category = &category.String
		}
		if listPrice.Valid {
			p.ListPrice = &listPrice.Float64
		}
		if brand.Valid {
			p.Brand = &brand.String
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// InsertProduct writes one catalog row with its embedding.
func (s *Store) InsertProduct(ctx context.Context, rec CatalogRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("product name required")
	}
	if len(rec.Vector) == 0 {
		return fmt.Errorf("embedding vector required")
	}
	vecLiteral, err := encodeVectorLiteral(rec.Vector)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
INSERT INTO products (product_name, description, category, list_price, brand, embedding)
VALUES ($1,$2,$3,$4,$5,$6::vector)
`, rec.Name, rec.Description, rec.Category, rec.ListPrice, rec.Brand, vecLiteral)
	return err
}

// CountProducts reports the catalog size; used by the ingest command.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// encodeVectorLiteral serialises a vector as a JSON array of numbers, the
// form both the search_products contract and pgvector accept.
func encodeVectorLiteral(vec []float32) (string, error) {
	if len(vec) == 0 {
		return "", fmt.Errorf("vector must not be empty")
	}
	var builder strings.Builder
	builder.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	builder.WriteByte(']')
	return builder.String(), nil
}
