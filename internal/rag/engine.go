package rag

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartretail/assistant/config"
	"github.com/smartretail/assistant/internal/telemetry"
	"github.com/smartretail/assistant/models"
)

// DefaultTopK is the retrieval depth used when configuration supplies none.
const DefaultTopK = 5

// Retriever returns the catalog rows closest to a query vector, ranked by
// the store (descending similarity).
type Retriever interface {
	SearchProducts(ctx context.Context, vector []float32, topK int) ([]models.Product, error)
}

// Completer is the model provider capability the engine depends on. The
// concrete client (direct or gateway) is chosen once at startup.
type Completer interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Engine runs the grounded question-answering pipeline. It is stateless
// across requests: nothing retrieved or embedded is ever cached or reused.
type Engine struct {
	llm              Completer
	retriever        Retriever
	topK             int
	historyWindow    int
	descriptionLimit int
	logger           *log.Logger
}

// NewEngine wires the pipeline. Zero-valued retrieval knobs fall back to the
// reference policy (top-K 5, window 5, 200-character descriptions).
func NewEngine(llm Completer, retriever Retriever, cfg config.RetrievalConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.Writer(), "[RAG] ", log.LstdFlags)
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	window := cfg.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	limit := cfg.DescriptionLimit
	if limit <= 0 {
		limit = DefaultDescriptionLimit
	}
	return &Engine{
		llm:              llm,
		retriever:        retriever,
		topK:             topK,
		historyWindow:    window,
		descriptionLimit: limit,
		logger:           logger,
	}
}

// Answer runs one conversation through the pipeline: embed the query,
// retrieve the closest catalog rows, assemble the prompt and complete.
// Sources in the response are exactly the retrieval result used to build
// the context, in the same order. Any stage failure aborts the request.
func (e *Engine) Answer(ctx context.Context, messages []models.ChatMessage) (models.ChatResponse, error) {
	if len(messages) == 0 {
		return models.ChatResponse{}, fail(ErrInvalidInput, errors.New("conversation is empty"))
	}
	query := strings.TrimSpace(messages[len(messages)-1].Content)
	if query == "" {
		return models.ChatResponse{}, fail(ErrInvalidInput, errors.New("query is empty"))
	}

	requestID := uuid.NewString()
	started := time.Now()

	embedStart := time.Now()
	vector, err := e.llm.Embed(ctx, query)
	telemetry.ObserveProviderCall("embed", time.Since(embedStart))
	if err != nil {
		return models.ChatResponse{}, fail(ErrProvider, err)
	}

	products, err := e.retriever.SearchProducts(ctx, vector, e.topK)
	if err != nil {
		return models.ChatResponse{}, fail(ErrRetrieval, err)
	}
	telemetry.RetrievalResults.Observe(float64(len(products)))

	contextBlock := BuildContext(products, e.descriptionLimit)
	window := Window(messages, e.historyWindow)
	prompt := BuildPrompt(contextBlock, window)

	completeStart := time.Now()
	answer, err := e.llm.Complete(ctx, prompt)
	telemetry.ObserveProviderCall("complete", time.Since(completeStart))
	if err != nil {
		return models.ChatResponse{}, fail(ErrProvider, err)
	}

	e.logger.Printf("request %s answered with %d sources in %s", requestID, len(products), time.Since(started))
	return models.ChatResponse{Answer: answer, Sources: products}, nil
}
