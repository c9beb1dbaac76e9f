package sessions

import "github.com/readlogapp/readlog/pkg/pagination"

type ListSessionsQuery struct {
	pagination.Params
	BookID *int `query:"bookId" json:"bookId,omitempty" validate:"omitempty,min=1"`
}

type SaveSessionPayload struct {
	BookID       int     `json:"bookId" validate:"required,min=1"`
	StartTime    string  `json:"startTime" validate:"required,datetime8601"`
	EndTime      *string `json:"endTime,omitempty" validate:"omitempty,datetime8601"`
	StartPage    *int    `json:"startPage,omitempty" validate:"omitempty,min=0"`
	EndPage      *int    `json:"endPage,omitempty" validate:"omitempty,min=0"`
	StartChapter *int    `json:"startChapter,omitempty" validate:"omitempty,min=0"`
	EndChapter   *int    `json:"endChapter,omitempty" validate:"omitempty,min=0"`
	Duration     *int    `json:"duration,omitempty" validate:"omitempty,min=0"`
}

type UpdateSessionPayload struct {
	StartTime    *string `json:"startTime,omitempty" validate:"omitempty,datetime8601"`
	EndTime      *string `json:"endTime,omitempty" validate:"omitempty,datetime8601"`
	StartPage    *int    `json:"startPage,omitempty" validate:"omitempty,min=0"`
	EndPage      *int    `json:"endPage,omitempty" validate:"omitempty,min=0"`
	StartChapter *int    `json:"startChapter,omitempty" validate:"omitempty,min=0"`
	EndChapter   *int    `json:"endChapter,omitempty" validate:"omitempty,min=0"`
	Duration     *int    `json:"duration,omitempty" validate:"omitempty,min=0"`
}

type CompleteSessionPayload struct {
	BookID          int    `json:"bookId" validate:"required,min=1"`
	StartTime       string `json:"startTime" validate:"required,datetime8601"`
	StartPage       *int   `json:"startPage,omitempty" validate:"omitempty,min=0"`
	StartChapter    *int   `json:"startChapter,omitempty" validate:"omitempty,min=0"`
	EndValue        int    `json:"endValue" validate:"min=0"`
	DurationSeconds int    `json:"durationSeconds" validate:"min=0"`
}
