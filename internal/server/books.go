package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/bookmuse/bookmuse-api/internal/database"
	"github.com/bookmuse/bookmuse-api/internal/database/models"
)

var allowedSortFields = map[string]string{
	"title":     "title",
	"author":    "author",
	"genre":     "genre",
	"createdAt": "created_at",
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if book.Title == "" || book.Author == "" || book.Description == "" || book.Genre == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	id, err := s.books.CreateBook(r.Context(), &book)
	if err != nil {
		if err == database.ErrDuplicate {
			writeError(w, http.StatusConflict, "A book with this ISBN already exists")
			return
		}
		log.Printf("[Server] Failed to add book: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add book")
		return
	}

	book.ID = id
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleAddBooks(w http.ResponseWriter, r *http.Request) {
	var books []*models.Book
	if err := json.NewDecoder(r.Body).Decode(&books); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be an array of books")
		return
	}

	if err := s.books.CreateBooks(r.Context(), books); err != nil {
		if err == database.ErrDuplicate {
			writeError(w, http.StatusConflict, "One or more books already exist")
			return
		}
		log.Printf("[Server] Failed to add books in bulk: %v", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while adding books")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Books added successfully",
		"data":    books,
	})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := database.ListBooksParams{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
		Order:  "desc",
		Page:   1,
		Limit:  10,
	}

	if sortBy := q.Get("sortBy"); sortBy != "" {
		column, ok := allowedSortFields[sortBy]
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid sortBy field. Allowed fields are: title, author, genre, createdAt")
			return
		}
		params.SortBy = column
	}

	if order := q.Get("order"); order != "" {
		if order != "asc" && order != "desc" {
			writeError(w, http.StatusBadRequest, "Invalid order value. Allowed values are: asc, desc")
			return
		}
		params.Order = order
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			writeError(w, http.StatusBadRequest, "Page must be a positive number.")
			return
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "Limit must be a positive number.")
			return
		}
		params.Limit = limit
	}

	books, total, err := s.books.ListBooks(r.Context(), params)
	if err != nil {
		log.Printf("[Server] Failed to list books: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch books")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       books,
		"totalBooks": total,
		"page":       params.Page,
		"limit":      params.Limit,
	})
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := s.books.GetBookByID(r.Context(), id)
	if err != nil {
		if err == database.ErrNotFound {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("[Server] Failed to get book %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	book.ID = id

	updated, err := s.books.UpdateBook(r.Context(), &book)
	if err != nil {
		if err == database.ErrNotFound {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("[Server] Failed to update book %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := s.books.DeleteBook(r.Context(), id); err != nil {
		if err == database.ErrNotFound {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("[Server] Failed to delete book %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

func bookID(r *http.Request, pathParam string) (int64, error) {
	raw := r.PathValue(pathParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid book ID %q", raw)
	}
	return id, nil
}
