package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockChatService replays a scripted sequence of turns and records
// every request it receives.
type mockChatService struct {
	turns    []driven.ChatTurn
	err      error
	requests [][]domain.Message
	tools    [][]driven.ToolSpec
}

func (m *mockChatService) Chat(_ context.Context, messages []domain.Message, tools []driven.ToolSpec, _ driven.ChatOptions) (driven.ChatTurn, error) {
	m.requests = append(m.requests, messages)
	m.tools = append(m.tools, tools)
	if m.err != nil {
		return driven.ChatTurn{}, m.err
	}
	if len(m.turns) == 0 {
		return driven.ChatTurn{Content: "default answer"}, nil
	}
	turn := m.turns[0]
	if len(m.turns) > 1 {
		m.turns = m.turns[1:]
	}
	return turn, nil
}

func (m *mockChatService) ModelName() string { return "mock-chat" }
func (m *mockChatService) Ping(_ context.Context) error { return nil }
func (m *mockChatService) Close() error { return nil }

// mockEmbeddingService returns a fixed embedding for every input.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	calls     int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return len(m.embedding) }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorIndex returns canned results and records added entries.
type mockVectorIndex struct {
	results   []domain.SearchResult
	added     [][]driven.IndexEntry
	searchErr error
	addErr    error
}

func (m *mockVectorIndex) Add(_ context.Context, entries []driven.IndexEntry) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, entries)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, topK int) ([]domain.SearchResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK < len(m.results) {
		return m.results[:topK], nil
	}
	return m.results, nil
}

func (m *mockVectorIndex) Stats(_ context.Context) (domain.IndexStats, error) {
	count := 0
	for _, batch := range m.added {
		count += len(batch)
	}
	return domain.IndexStats{Collection: "mock", Chunks: count}, nil
}

func (m *mockVectorIndex) Clear(_ context.Context) error {
	m.added = nil
	return nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockTracker returns a configured result and records requests.
type mockTracker struct {
	result   domain.TicketResult
	requests []domain.TicketRequest
}

func (m *mockTracker) Create(_ context.Context, req domain.TicketRequest) domain.TicketResult {
	m.requests = append(m.requests, req)
	result := m.result
	result.Title = req.Title
	result.UserName = req.UserName
	result.UserEmail = req.UserEmail
	return result
}

func (m *mockTracker) ValidateConfig(_ context.Context) bool { return true }

// mockDatabase serves canned query results and schema.
type mockDatabase struct {
	result   domain.QueryResult
	schema   map[string]domain.TableSchema
	queryErr error
	queries  []string
}

func (m *mockDatabase) Query(_ context.Context, query string) (domain.QueryResult, error) {
	m.queries = append(m.queries, query)
	if m.queryErr != nil {
		return domain.QueryResult{}, m.queryErr
	}
	return m.result, nil
}

func (m *mockDatabase) Schema(_ context.Context) (map[string]domain.TableSchema, error) {
	return m.schema, nil
}

func (m *mockDatabase) Close() error { return nil }

// mockExtractor serves canned pages for any path.
type mockExtractor struct {
	pages []domain.Page
	err   error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockExtractor) SupportedExtensions() []string { return []string{".txt"} }

// wordTokenizer splits on spaces; one word is one token. Decoding joins
// with spaces, which is lossy but deterministic enough for tests.
type wordTokenizer struct {
	vocab map[int]string
	ids   map[string]int
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{vocab: make(map[int]string), ids: make(map[string]int)}
}

func (w *wordTokenizer) Encode(text string) []int {
	var tokens []int
	word := ""
	flush := func() {
		if word == "" {
			return
		}
		id, ok := w.ids[word]
		if !ok {
			id = len(w.ids)
			w.ids[word] = id
			w.vocab[id] = word
		}
		tokens = append(tokens, id)
		word = ""
	}
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	return tokens
}

func (w *wordTokenizer) Decode(tokens []int) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		out += w.vocab[tok]
	}
	return out
}

func (w *wordTokenizer) Encoding() string { return "word" }

// repeatWords builds a page text of n distinct words.
func repeatWords(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("w%d", i)
	}
	return out
}
