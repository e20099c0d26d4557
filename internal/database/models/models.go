package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a record in the locally curated collection. Discovery results are
// never persisted; only books added through the CRUD API live here.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int64     `bun:",pk,autoincrement" json:"id"`
	Title           string    `bun:",notnull" json:"title"`
	Author          string    `bun:",notnull" json:"author"`
	Description     string    `bun:",nullzero" json:"description,omitempty"`
	Genre           string    `bun:",nullzero" json:"genre,omitempty"`
	PublicationYear int       `bun:",nullzero" json:"publicationYear,omitempty"`
	Rating          float64   `bun:",nullzero" json:"rating,omitempty"`
	UsersRated      int       `bun:",nullzero" json:"usersRated,omitempty"`
	PageCount       int       `bun:",nullzero" json:"pageCount,omitempty"`
	Language        string    `bun:",nullzero" json:"language,omitempty"`
	Publisher       string    `bun:",nullzero" json:"publisher,omitempty"`
	CoverImage      string    `bun:",nullzero" json:"coverImage,omitempty"`
	ISBN            string    `bun:",unique,nullzero" json:"isbn,omitempty"`
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// WishlistEntry links a user to a collection book, grouped by a free-form
// category and ordered within it.
type WishlistEntry struct {
	bun.BaseModel `bun:"table:wishlist_entries,alias:w"`

	ID        string    `bun:",pk" json:"id"` // UUID assigned at creation
	UserID    string    `bun:",notnull" json:"userId"`
	BookID    int64     `bun:",notnull" json:"bookId"`
	Book      *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Category  string    `bun:",nullzero" json:"category,omitempty"`
	SortOrder int       `bun:",nullzero" json:"order,omitempty"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
