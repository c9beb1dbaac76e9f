package models

import (
	"github.com/uptrace/bun"
)

// Session is one reading event for a book. Start and end times are persisted
// as the ISO-8601 strings the client supplied, never reformatted. bookTitle
// is a denormalized copy taken at creation time and is not kept in sync with
// later title edits.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID            int     `bun:"id,pk,autoincrement" json:"id"`
	BookID        int     `bun:"bookId" json:"bookId"`
	Book          *Book   `bun:"rel:belongs-to,join:bookId=id" json:"-"`
	BookTitle     string  `bun:"bookTitle" json:"bookTitle"`
	StartTime     string  `bun:"startTime" json:"startTime"`
	EndTime       *string `bun:"endTime" json:"endTime"`
	StartPage     *int    `bun:"startPage" json:"startPage"`
	EndPage       *int    `bun:"endPage" json:"endPage"`
	StartChapter  *int    `bun:"startChapter" json:"startChapter"`
	EndChapter    *int    `bun:"endChapter" json:"endChapter"`
	Duration      *int    `bun:"duration" json:"duration"`
	ReadingNumber int     `bun:"readingNumber" json:"readingNumber"`
}

// UsesPages reports whether the page pair is the populated one. Exactly one
// of the page/chapter pairs is non-null per row, matching the parent book's
// tracking type when the session was written.
func (s *Session) UsesPages() bool {
	return s.StartPage != nil || s.EndPage != nil
}

// EndValue returns the session's final position for the given tracking type,
// or nil when the matching pair isn't populated.
func (s *Session) EndValue(trackingType string) *int {
	if trackingType == TrackingTypeChapters {
		return s.EndChapter
	}
	return s.EndPage
}
