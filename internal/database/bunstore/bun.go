package bunstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookmuse/bookmuse-api/internal/database"
	"github.com/bookmuse/bookmuse-api/internal/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *sql.DB, dialect schema.Dialect) (*BunStore, error) {
	bunDB := bun.NewDB(db, dialect)

	store := &BunStore{db: bunDB}

	// Create tables if they don't exist
	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*models.Book)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create books table: %w", err)
	}
	if _, err := bunDB.NewCreateTable().Model((*models.WishlistEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create wishlist_entries table: %w", err)
	}

	return store, nil
}

// BookRepository Implementation

func (s *BunStore) CreateBook(ctx context.Context, book *models.Book) (int64, error) {
	if _, err := s.db.NewInsert().Model(book).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return 0, database.ErrDuplicate
		}
		return 0, err
	}
	return book.ID, nil
}

func (s *BunStore) CreateBooks(ctx context.Context, books []*models.Book) error {
	if len(books) == 0 {
		return nil
	}
	if _, err := s.db.NewInsert().Model(&books).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return database.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *BunStore) ListBooks(ctx context.Context, params database.ListBooksParams) ([]*models.Book, int, error) {
	var books []*models.Book

	q := s.db.NewSelect().Model(&books)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("title LIKE ?", pattern).WhereOr("author LIKE ?", pattern)
		})
	}
	if params.Genre != "" {
		q = q.Where("genre LIKE ?", "%"+params.Genre+"%")
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		order = "ASC"
	}
	q = q.OrderExpr("? ?", bun.Ident(sortBy), bun.Safe(order))

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	q = q.Offset((page - 1) * limit).Limit(limit)

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (s *BunStore) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	book := new(models.Book)
	if err := s.db.NewSelect().Model(book).Where("id = ?", id).Scan(ctx); err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BunStore) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	res, err := s.db.NewUpdate().Model((*models.Book)(nil)).
		Set("title = ?", book.Title).
		Set("author = ?", book.Author).
		Set("description = ?", book.Description).
		Set("genre = ?", book.Genre).
		Set("publication_year = ?", book.PublicationYear).
		Set("page_count = ?", book.PageCount).
		Set("language = ?", book.Language).
		Set("publisher = ?", book.Publisher).
		Set("cover_image = ?", book.CoverImage).
		Set("updated_at = current_timestamp").
		Where("id = ?", book.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, database.ErrNotFound
	}
	return s.GetBookByID(ctx, book.ID)
}

func (s *BunStore) DeleteBook(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.Book)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// WishlistRepository Implementation

func (s *BunStore) ListWishlist(ctx context.Context, userID string) ([]*models.WishlistEntry, error) {
	var entries []*models.WishlistEntry
	err := s.db.NewSelect().Model(&entries).
		Relation("Book").
		Where("user_id = ?", userID).
		Order("sort_order ASC", "w.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *BunStore) AddToWishlist(ctx context.Context, entry *models.WishlistEntry) error {
	// The book must exist in the collection before it can be wished for.
	if _, err := s.GetBookByID(ctx, entry.BookID); err != nil {
		return err
	}

	exists, err := s.db.NewSelect().Model((*models.WishlistEntry)(nil)).
		Where("user_id = ? AND book_id = ?", entry.UserID, entry.BookID).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return database.ErrDuplicate
	}

	if _, err := s.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *BunStore) RemoveFromWishlist(ctx context.Context, userID string, bookID int64) error {
	res, err := s.db.NewDelete().Model((*models.WishlistEntry)(nil)).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (s *BunStore) UpdateWishlistEntry(ctx context.Context, userID string, bookID int64, category string, sortOrder int) (*models.WishlistEntry, error) {
	res, err := s.db.NewUpdate().Model((*models.WishlistEntry)(nil)).
		Set("category = ?", category).
		Set("sort_order = ?", sortOrder).
		Set("updated_at = current_timestamp").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, database.ErrNotFound
	}

	entry := new(models.WishlistEntry)
	if err := s.db.NewSelect().Model(entry).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Scan(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
