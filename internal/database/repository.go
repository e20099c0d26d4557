package database

import (
	"context"
	"errors"

	"github.com/bookmuse/bookmuse-api/internal/database/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ListBooksParams narrows and orders a collection listing. SortBy and Order
// must already be validated against the allowed sets at the API boundary.
type ListBooksParams struct {
	Search string // matches title or author, case-insensitive
	Genre  string
	SortBy string // title | author | genre | created_at
	Order  string // asc | desc
	Page   int
	Limit  int
}

// BookRepository handles the locally curated book collection.
type BookRepository interface {
	CreateBook(ctx context.Context, book *models.Book) (int64, error)
	CreateBooks(ctx context.Context, books []*models.Book) error
	ListBooks(ctx context.Context, params ListBooksParams) ([]*models.Book, int, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// WishlistRepository handles per-user wishlist persistence.
type WishlistRepository interface {
	ListWishlist(ctx context.Context, userID string) ([]*models.WishlistEntry, error)
	AddToWishlist(ctx context.Context, entry *models.WishlistEntry) error
	RemoveFromWishlist(ctx context.Context, userID string, bookID int64) error
	UpdateWishlistEntry(ctx context.Context, userID string, bookID int64, category string, sortOrder int) (*models.WishlistEntry, error)
}
