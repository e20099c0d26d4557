package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookmuse/bookmuse-api/internal/database"
	dbmodels "github.com/bookmuse/bookmuse-api/internal/database/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
	"github.com/bookmuse/bookmuse-api/internal/usecase/discovery"
)

// mockLLM implements repository.LLMClient
type mockLLM struct {
	response string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return m.response, nil
}

func (m *mockLLM) Name() string { return "Mock LLM" }

type mockLLMRouter struct {
	client repository.LLMClient
}

func (m *mockLLMRouter) RouteLLMTask(task repository.TaskType) repository.LLMClient {
	return m.client
}

// mockCatalog implements repository.CatalogClient
type mockCatalog struct {
	books []models.Book
}

func (m *mockCatalog) Search(ctx context.Context, filter models.SearchFilter, maxResults int) ([]models.Book, error) {
	return m.books, nil
}

// mockBookRepo implements database.BookRepository
type mockBookRepo struct {
	byID   map[int64]*dbmodels.Book
	nextID int64
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{byID: map[int64]*dbmodels.Book{}, nextID: 1}
}

func (m *mockBookRepo) CreateBook(ctx context.Context, book *dbmodels.Book) (int64, error) {
	book.ID = m.nextID
	m.nextID++
	m.byID[book.ID] = book
	return book.ID, nil
}

func (m *mockBookRepo) CreateBooks(ctx context.Context, books []*dbmodels.Book) error {
	for _, b := range books {
		if _, err := m.CreateBook(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockBookRepo) ListBooks(ctx context.Context, params database.ListBooksParams) ([]*dbmodels.Book, int, error) {
	var out []*dbmodels.Book
	for _, b := range m.byID {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (m *mockBookRepo) GetBookByID(ctx context.Context, id int64) (*dbmodels.Book, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return b, nil
}

func (m *mockBookRepo) UpdateBook(ctx context.Context, book *dbmodels.Book) (*dbmodels.Book, error) {
	if _, ok := m.byID[book.ID]; !ok {
		return nil, database.ErrNotFound
	}
	m.byID[book.ID] = book
	return book, nil
}

func (m *mockBookRepo) DeleteBook(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// mockWishlistRepo implements database.WishlistRepository
type mockWishlistRepo struct {
	entries []*dbmodels.WishlistEntry
}

func (m *mockWishlistRepo) ListWishlist(ctx context.Context, userID string) ([]*dbmodels.WishlistEntry, error) {
	var out []*dbmodels.WishlistEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockWishlistRepo) AddToWishlist(ctx context.Context, entry *dbmodels.WishlistEntry) error {
	for _, e := range m.entries {
		if e.UserID == entry.UserID && e.BookID == entry.BookID {
			return database.ErrDuplicate
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockWishlistRepo) RemoveFromWishlist(ctx context.Context, userID string, bookID int64) error {
	for i, e := range m.entries {
		if e.UserID == userID && e.BookID == bookID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *mockWishlistRepo) UpdateWishlistEntry(ctx context.Context, userID string, bookID int64, category string, sortOrder int) (*dbmodels.WishlistEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.BookID == bookID {
			e.Category = category
			e.SortOrder = sortOrder
			return e, nil
		}
	}
	return nil, database.ErrNotFound
}

func createTestServer(llmResponse string, catalogBooks []models.Book) *Server {
	extractor := discovery.NewExtractor(&mockLLMRouter{client: &mockLLM{response: llmResponse}})
	catalog := &mockCatalog{books: catalogBooks}

	return NewServer(
		discovery.NewDirectSearcher(extractor, catalog),
		discovery.NewRecommender(extractor, catalog),
		discovery.NewMoodFinder(catalog, discovery.DefaultMoodGenres()),
		newMockBookRepo(),
		&mockWishlistRepo{},
		5*time.Second,
	)
}

func TestHandleDirectSearch_InvalidPayload(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/discovery/search", "application/json", strings.NewReader("{invalid"))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid payload, got %d", resp.StatusCode)
	}
}

func TestHandleDirectSearch_EmptyQuery(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	body, _ := json.Marshal(queryRequest{Query: ""})
	resp, err := http.Post(ts.URL+"/api/v1/discovery/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty query, got %d", resp.StatusCode)
	}
}

func TestHandleDirectSearch_ReturnsResults(t *testing.T) {
	s := createTestServer(`{"genre": "Horror"}`, []models.Book{{Title: "It", Author: "Stephen King"}})
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	body, _ := json.Marshal(queryRequest{Query: "scary books"})
	resp, err := http.Post(ts.URL+"/api/v1/discovery/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Results []models.Book `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(payload.Results) != 1 || payload.Results[0].Title != "It" {
		t.Errorf("Unexpected results: %+v", payload.Results)
	}
}

func TestHandleRecommendations_NoMatchesSentinel(t *testing.T) {
	s := createTestServer("not json", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	body, _ := json.Marshal(queryRequest{Query: "query with no matches"})
	resp, err := http.Post(ts.URL+"/api/v1/discovery/recommendations", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for the sentinel outcome, got %d", resp.StatusCode)
	}

	var payload struct {
		Results struct {
			Error string `json:"error"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload.Results.Error != discovery.NoMatchesMessage {
		t.Errorf("Expected the no-matches sentinel, got %q", payload.Results.Error)
	}
}

func TestHandleMoodBooks_InvalidMood(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/moods/not-a-real-mood/books")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown mood, got %d", resp.StatusCode)
	}
}

func TestHandleMoodBooks_KnownMood(t *testing.T) {
	s := createTestServer("{}", []models.Book{{Title: "Good Omens", Author: "Pratchett, Gaiman", ISBN: "9780060853983"}})
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/moods/happy/books")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Results []models.Book `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// Every genre returns the same single book, so dedupe leaves one entry.
	if len(payload.Results) != 1 {
		t.Errorf("Expected 1 deduplicated result, got %d", len(payload.Results))
	}
}

func TestHandleAddBook_MissingFields(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/books", "application/json", strings.NewReader(`{"title": "Only a title"}`))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing fields, got %d", resp.StatusCode)
	}
}

func TestHandleAddBook_Created(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	body := `{"title": "Dune", "author": "Frank Herbert", "description": "Desert planet", "genre": "Science Fiction"}`
	resp, err := http.Post(ts.URL+"/api/v1/books", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created dbmodels.Book
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.ID == 0 {
		t.Errorf("Expected the created book to carry its new ID")
	}
}

func TestHandleListBooks_InvalidSortField(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/books?sortBy=rating")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for disallowed sort field, got %d", resp.StatusCode)
	}
}

func TestHandleGetBook_NotFound(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/books/999")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestHandleWishlist_RequiresUser(t *testing.T) {
	s := createTestServer("{}", nil)
	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/wishlist")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without user identity, got %d", resp.StatusCode)
	}
}

func TestHandleWishlist_AddAndDuplicate(t *testing.T) {
	s := createTestServer("{}", nil)
	// Seed a collection book the wishlist can reference.
	id, _ := s.books.CreateBook(context.Background(), &dbmodels.Book{
		Title: "Dune", Author: "Frank Herbert", Description: "d", Genre: "SF",
	})

	ts := httptest.NewServer(s.RegisterRoutes())
	defer ts.Close()

	add := func() *http.Response {
		body, _ := json.Marshal(addWishlistRequest{BookID: id})
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/wishlist", bytes.NewReader(body))
		req.Header.Set("X-User-ID", "user-1")
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
		return resp
	}

	resp := add()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201 on first add, got %d", resp.StatusCode)
	}

	dup := add()
	defer dup.Body.Close()
	if dup.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409 on duplicate add, got %d", dup.StatusCode)
	}
}
