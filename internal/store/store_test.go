package store

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestSearchProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}

	query := regexp.QuoteMeta(`
SELECT id, product_name, description, category, list_price, brand, similarity
FROM search_products($1, $2)
`)
	rows := sqlmock.NewRows([]string{"id", "product_name", "description", "category", "list_price", "brand", "similarity"}).
		AddRow(1, "Wireless Headphones", "Over-ear, 30h battery", "Electronics", 49.99, "SoundCo", 0.91).
		AddRow(2, "Sport Earbuds", nil, nil, nil, nil, 0.88)
	mock.ExpectQuery(query).WithArgs("[0.25,0.5]", 5).WillReturnRows(rows)

	products, err := st.SearchProducts(context.Background(), []float32{0.25, 0.5}, 5)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	first := products[0]
	if first.Name != "Wireless Headphones" || first.Similarity != 0.91 {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if first.Description == nil || *first.Description != "Over-ear, 30h battery" {
		t.Fatalf("description lost in scan: %+v", first)
	}
	if first.ListPrice == nil || *first.ListPrice != 49.99 {
		t.Fatalf("list price lost in scan: %+v", first)
	}
	second := products[1]
	if second.Description != nil || second.Category != nil || second.ListPrice != nil || second.Brand != nil {
		t.Fatalf("NULL columns must map to nil pointers: %+v", second)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchProductsDefaultsTopK(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	query := regexp.QuoteMeta(`
SELECT id, product_name, description, category, list_price, brand, similarity
FROM search_products($1, $2)
`)
	mock.ExpectQuery(query).WithArgs("[1]", DefaultTopK).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "description", "category", "list_price", "brand", "similarity"}))

	products, err := st.SearchProducts(context.Background(), []float32{1}, 0)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no rows, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchProductsRejectsEmptyVector(t *testing.T) {
	st := &Store{}
	if _, err := st.SearchProducts(context.Background(), nil, 5); err == nil {
		t.Fatalf("expected error on empty vector")
	}
}

func TestInsertProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	desc := "A sturdy desk lamp"
	price := 19.99
	rec := CatalogRecord{
		Name:        "Desk Lamp",
		Description: &desc,
		ListPrice:   &price,
		Vector:      []float32{0.1, 0.2},
	}

	query := regexp.QuoteMeta(`
INSERT INTO products (product_name, description, category, list_price, brand, embedding)
VALUES ($1,$2,$3,$4,$5,$6::vector)
`)
	mock.ExpectExec(query).
		WithArgs("Desk Lamp", desc, nil, price, nil, "[0.1,0.2]").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := st.InsertProduct(context.Background(), rec); err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertProductRequiresVector(t *testing.T) {
	st := &Store{}
	err := st.InsertProduct(context.Background(), CatalogRecord{Name: "X"})
	if err == nil {
		t.Fatalf("expected error on missing vector")
	}
}

func TestEncodeVectorLiteral(t *testing.T) {
	got, err := encodeVectorLiteral([]float32{0.1, -2, 3.5})
	if err != nil {
		t.Fatalf("encodeVectorLiteral: %v", err)
	}
	if got != "[0.1,-2,3.5]" {
		t.Fatalf("unexpected literal: %q", got)
	}
	if _, err := encodeVectorLiteral(nil); err == nil {
		t.Fatalf("expected error on empty vector")
	}
}
