package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Note is a bookmark or quote attached to a book at an optional position.
// The column is named `page` but the application-facing field has always
// been pageNumber; the mapping lives here, in one place, instead of in SQL
// aliases.
type Note struct {
	bun.BaseModel `bun:"table:reading_notes,alias:n"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	BookID     int       `bun:"bookId" json:"bookId"`
	Book       *Book     `bun:"rel:belongs-to,join:bookId=id" json:"-"`
	Note       string    `bun:"note" json:"note"`
	PageNumber *int      `bun:"page" json:"pageNumber"`
	CreatedAt  time.Time `bun:"createdAt,nullzero" json:"createdAt"`
}
