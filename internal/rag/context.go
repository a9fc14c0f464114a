package rag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartretail/assistant/models"
)

const contextHeader = "Here are some relevant products found in our catalog:"

// DefaultDescriptionLimit bounds each product description inside the context
// block. Truncation is character-based, not token- or word-aware.
const DefaultDescriptionLimit = 200

// BuildContext renders a ranked product list into the context block handed
// to the model: a header line plus one line per product, in retrieval order.
// An empty list yields the header alone; the grounding policy turns that
// into the user-facing "not found" answer, it is not an error here.
func BuildContext(products []models.Product, descriptionLimit int) string {
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}
	lines := make([]string, 0, len(products)+1)
	lines = append(lines, contextHeader)
	for _, p := range products {
		var category, description, price string
		if p.Category != nil {
			category = *p.Category
		}
		if p.Description != nil {
			description = truncate(*p.Description, descriptionLimit)
		}
		if p.ListPrice != nil {
			price = strconv.FormatFloat(*p.ListPrice, 'f', -1, 64)
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s Price: $%s", p.Name, category, description, price))
	}
	return strings.Join(lines, "\n")
}

// truncate cuts a description to limit characters and marks the cut with an
// ellipsis. Runes, not bytes, so multi-byte text is never split mid-character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
