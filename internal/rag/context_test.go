package rag

import (
	"strings"
	"testing"

	"github.com/smartretail/assistant/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestBuildContextEmptyRetrieval(t *testing.T) {
	block := BuildContext(nil, 200)
	lines := strings.Split(block, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
	if lines[0] != contextHeader {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestBuildContextLinePerProduct(t *testing.T) {
	products := []models.Product{
		{Name: "Wireless Headphones", Category: strPtr("Electronics"), Description: strPtr("Over-ear, 30h battery"), ListPrice: floatPtr(49.99), Similarity: 0.91},
		{Name: "Earbuds", Category: strPtr("Electronics"), Description: strPtr("In-ear"), ListPrice: floatPtr(29.5), Similarity: 0.88},
	}
	block := BuildContext(products, 200)
	lines := strings.Split(block, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 item lines, got %d", len(lines))
	}
	if lines[1] != "- Wireless Headphones (Electronics): Over-ear, 30h battery Price: $49.99" {
		t.Fatalf("unexpected item line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Earbuds") {
		t.Fatalf("second item missing: %q", lines[2])
	}
}

func TestBuildContextTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 250)
	products := []models.Product{{Name: "P", Description: strPtr(long)}}
	block := BuildContext(products, 200)
	want := strings.Repeat("x", 200) + "..."
	if !strings.Contains(block, want) {
		t.Fatalf("description not truncated to 200 chars + ellipsis")
	}
	if strings.Contains(block, strings.Repeat("x", 201)) {
		t.Fatalf("description exceeds the 200 character budget")
	}
}

func TestBuildContextShortDescriptionUnmodified(t *testing.T) {
	products := []models.Product{{Name: "P", Description: strPtr("short")}}
	block := BuildContext(products, 200)
	if !strings.Contains(block, ": short Price:") {
		t.Fatalf("short description must pass through unmodified: %q", block)
	}
	if strings.Contains(block, "short...") {
		t.Fatalf("short description must not get an ellipsis")
	}
}

func TestBuildContextMissingFieldsRenderEmpty(t *testing.T) {
	products := []models.Product{{Name: "Mystery Item"}}
	block := BuildContext(products, 200)
	lines := strings.Split(block, "\n")
	if lines[1] != "- Mystery Item ():  Price: $" {
		t.Fatalf("unexpected rendering of missing fields: %q", lines[1])
	}
}
