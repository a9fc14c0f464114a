package models

// Message roles recognised in inbound conversations and outbound prompts.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn of a conversation. Order within a
// conversation is chronological and semantically meaningful.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound payload for the chat endpoint. The content of
// the last message is the query used for retrieval.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// Product is one catalog row paired with its computed similarity to the
// query vector. Higher similarity means more relevant. Optional columns are
// pointers so NULLs survive the round trip to JSON.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"product_name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	ListPrice   *float64 `json:"list_price"`
	Brand       *string  `json:"brand"`
	Similarity  float64  `json:"similarity"`
}

// ChatResponse carries the grounded answer together with the exact retrieval
// result that was shown to the model, in retrieval order.
type ChatResponse struct {
	Answer  string    `json:"answer"`
	Sources []Product `json:"sources"`
}
