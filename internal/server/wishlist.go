package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/bookmuse/bookmuse-api/internal/database"
	"github.com/bookmuse/bookmuse-api/internal/database/models"
	"github.com/google/uuid"
)

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	entries, err := s.wishlist.ListWishlist(r.Context(), user)
	if err != nil {
		log.Printf("[Server] Failed to list wishlist for %s: %v", user, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

type addWishlistRequest struct {
	BookID   int64  `json:"bookId"`
	Category string `json:"category"`
}

func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req addWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.BookID < 1 {
		writeError(w, http.StatusBadRequest, "bookId is required")
		return
	}
	if req.Category == "" {
		req.Category = "default"
	}

	entry := &models.WishlistEntry{
		ID:       uuid.NewString(),
		UserID:   user,
		BookID:   req.BookID,
		Category: req.Category,
	}

	if err := s.wishlist.AddToWishlist(r.Context(), entry); err != nil {
		switch err {
		case database.ErrNotFound:
			writeError(w, http.StatusNotFound, "Book not found")
		case database.ErrDuplicate:
			writeError(w, http.StatusConflict, "Book already in wishlist")
		default:
			log.Printf("[Server] Failed to add book %d to wishlist for %s: %v", req.BookID, user, err)
			writeError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleShareWishlist(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"shareableLink": fmt.Sprintf("https://bookmuse.example.com/shared-wishlist/%s", user),
	})
}

type updateWishlistRequest struct {
	Category string `json:"category"`
	Order    int    `json:"order"`
}

func (s *Server) handleUpdateWishlistEntry(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := bookID(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req updateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Category == "" {
		req.Category = "default"
	}

	entry, err := s.wishlist.UpdateWishlistEntry(r.Context(), user, id, req.Category, req.Order)
	if err != nil {
		if err == database.ErrNotFound {
			writeError(w, http.StatusNotFound, "Wishlist item not found")
			return
		}
		log.Printf("[Server] Failed to update wishlist entry for %s/%d: %v", user, id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update wishlist item")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := bookID(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := s.wishlist.RemoveFromWishlist(r.Context(), user, id); err != nil {
		if err == database.ErrNotFound {
			writeError(w, http.StatusNotFound, "Wishlist item not found")
			return
		}
		log.Printf("[Server] Failed to remove wishlist entry for %s/%d: %v", user, id, err)
		writeError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}
