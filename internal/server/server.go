package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/bookmuse/bookmuse-api/internal/database"
	"github.com/bookmuse/bookmuse-api/internal/usecase/discovery"
)

// Server holds the dependencies for the HTTP API server.
type Server struct {
	direct      *discovery.DirectSearcher
	recommender *discovery.Recommender
	moodFinder  *discovery.MoodFinder
	books       database.BookRepository
	wishlist    database.WishlistRepository
	timeout     time.Duration
}

// NewServer initializes a new API server with the required dependencies.
func NewServer(direct *discovery.DirectSearcher, recommender *discovery.Recommender, moodFinder *discovery.MoodFinder,
	books database.BookRepository, wishlist database.WishlistRepository, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		direct:      direct,
		recommender: recommender,
		moodFinder:  moodFinder,
		books:       books,
		wishlist:    wishlist,
		timeout:     timeout,
	}
}

// RegisterRoutes registers all API endpoints with a new ServeMux.
func (s *Server) RegisterRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Go 1.22+ supports HTTP method routing directly in ServeMux
	mux.HandleFunc("POST /api/v1/discovery/search", s.handleDirectSearch)
	mux.HandleFunc("POST /api/v1/discovery/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /api/v1/moods/{mood}/books", s.handleMoodBooks)

	mux.HandleFunc("POST /api/v1/books", s.handleAddBook)
	mux.HandleFunc("POST /api/v1/books/bulk", s.handleAddBooks)
	mux.HandleFunc("GET /api/v1/books", s.handleListBooks)
	mux.HandleFunc("GET /api/v1/books/{id}", s.handleGetBook)
	mux.HandleFunc("PUT /api/v1/books/{id}", s.handleUpdateBook)
	mux.HandleFunc("DELETE /api/v1/books/{id}", s.handleDeleteBook)

	mux.HandleFunc("GET /api/v1/wishlist", s.handleGetWishlist)
	mux.HandleFunc("POST /api/v1/wishlist", s.handleAddToWishlist)
	mux.HandleFunc("GET /api/v1/wishlist/share", s.handleShareWishlist)
	mux.HandleFunc("PUT /api/v1/wishlist/{bookID}", s.handleUpdateWishlistEntry)
	mux.HandleFunc("DELETE /api/v1/wishlist/{bookID}", s.handleRemoveFromWishlist)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

type queryRequest struct {
	Query string `json:"query"`
}

// resultsResponse wraps every discovery payload. Results is either a book
// list or the no-matches sentinel object.
type resultsResponse struct {
	Results any `json:"results"`
}

func (s *Server) handleDirectSearch(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	books, err := s.direct.Search(ctx, req.Query)
	if err != nil {
		log.Printf("[Server] Direct search failed for %q: %v", req.Query, err)
		writeError(w, http.StatusInternalServerError, "Failed to process query")
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{Results: books})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	books, err := s.recommender.Recommend(ctx, req.Query)
	if err != nil {
		log.Printf("[Server] Recommendation search failed for %q: %v", req.Query, err)
		writeError(w, http.StatusInternalServerError, "Failed to process query")
		return
	}

	if len(books) == 0 {
		// Defined sentinel outcome, returned as data with a 200.
		writeJSON(w, http.StatusOK, resultsResponse{Results: map[string]string{"error": discovery.NoMatchesMessage}})
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{Results: books})
}

func (s *Server) handleMoodBooks(w http.ResponseWriter, r *http.Request) {
	mood := r.PathValue("mood")

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	books, err := s.moodFinder.BooksByMood(ctx, mood)
	if err != nil {
		if err == discovery.ErrInvalidMood {
			writeError(w, http.StatusBadRequest, "Invalid mood provided")
			return
		}
		log.Printf("[Server] Mood search failed for %q: %v", mood, err)
		writeError(w, http.StatusInternalServerError, "Failed to get mood based recommendations")
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{Results: books})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// userID resolves the authenticated user identity. Authentication itself is
// handled upstream; this layer only consumes the identity it produced.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
