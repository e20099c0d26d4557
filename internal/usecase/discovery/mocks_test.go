package discovery

import (
	"context"
	"sync"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
)

// mockLLMClient implements repository.LLMClient
type mockLLMClient struct {
	response string
	err      error
}

func (m *mockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMClient) Name() string { return "Mock LLM" }

// mockRouter implements repository.LLMRouter
type mockRouter struct {
	client repository.LLMClient
}

func (m *mockRouter) RouteLLMTask(task repository.TaskType) repository.LLMClient {
	return m.client
}

type catalogCall struct {
	Filter     models.SearchFilter
	MaxResults int
}

// mockCatalog implements repository.CatalogClient and records calls; the
// fan-out pipelines hit it concurrently.
type mockCatalog struct {
	mu     sync.Mutex
	calls  []catalogCall
	search func(filter models.SearchFilter, maxResults int) []models.Book
}

func (m *mockCatalog) Search(ctx context.Context, filter models.SearchFilter, maxResults int) ([]models.Book, error) {
	m.mu.Lock()
	m.calls = append(m.calls, catalogCall{Filter: filter, MaxResults: maxResults})
	m.mu.Unlock()

	if m.search == nil {
		return []models.Book{}, nil
	}
	return m.search(filter, maxResults), nil
}

func (m *mockCatalog) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
