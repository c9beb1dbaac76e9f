package notes

import "github.com/readlogapp/readlog/pkg/pagination"

type ListNotesQuery struct {
	pagination.Params
	BookID *int `query:"bookId" json:"bookId,omitempty" validate:"omitempty,min=1"`
}

type CreateNotePayload struct {
	BookID     int    `json:"bookId" validate:"required,min=1"`
	Note       string `json:"note" mod:"trim" validate:"required,max=10000"`
	PageNumber *int   `json:"pageNumber,omitempty" validate:"omitempty,min=0"`
}

type UpdateNotePayload struct {
	Note       *string `json:"note,omitempty" mod:"trim" validate:"omitempty,min=1,max=10000"`
	PageNumber *int    `json:"pageNumber,omitempty" validate:"omitempty,min=0"`
}
