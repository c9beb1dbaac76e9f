package books

import "github.com/readlogapp/readlog/pkg/pagination"

type ListBooksQuery struct {
	pagination.Params
	Status *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof='Want to Read' Reading Finished Unfinished DNF"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=200"`
}

type CreateBookPayload struct {
	Title            string   `json:"title" mod:"trim" validate:"required,max=500"`
	Author           *string  `json:"author,omitempty" mod:"trim" validate:"omitempty,max=300"`
	ISBN             *string  `json:"isbn,omitempty" mod:"trim" validate:"omitempty,max=20"`
	TotalPages       *int     `json:"totalPages,omitempty" validate:"omitempty,min=1"`
	TotalChapters    *int     `json:"totalChapters,omitempty" validate:"omitempty,min=1"`
	TrackingType     string   `json:"trackingType,omitempty" default:"pages" validate:"oneof=pages chapters"`
	Status           string   `json:"status,omitempty" validate:"omitempty,oneof='Want to Read' Reading Finished Unfinished DNF"`
	Rating           *int     `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Format           *string  `json:"format,omitempty" validate:"omitempty,max=100"`
	Language         *string  `json:"language,omitempty" validate:"omitempty,max=100"`
	OriginalLanguage *string  `json:"originalLanguage,omitempty" validate:"omitempty,max=100"`
	Publisher        *string  `json:"publisher,omitempty" validate:"omitempty,max=300"`
	PublicationYear  *int     `json:"publicationYear,omitempty" validate:"omitempty,min=0"`
	Tags             []string `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
	SeriesName       *string  `json:"seriesName,omitempty" validate:"omitempty,max=300"`
	SeriesOrder      *int     `json:"seriesOrder,omitempty" validate:"omitempty,min=0"`
	SeriesCoverURL   *string  `json:"seriesCoverUrl,omitempty" validate:"omitempty,url"`
	CollectionType   string   `json:"collectionType,omitempty" default:"standalone" validate:"oneof=standalone series volume collection"`
	VolumeNumber     *int     `json:"volumeNumber,omitempty" validate:"omitempty,min=0"`
	TotalVolumes     *int     `json:"totalVolumes,omitempty" validate:"omitempty,min=0"`
	TotalInSeries    *int     `json:"totalInSeries,omitempty" validate:"omitempty,min=0"`
	CoverURL         *string  `json:"coverUrl,omitempty" validate:"omitempty,url"`
	CoverPath        *string  `json:"coverPath,omitempty" validate:"omitempty,max=1000"`
}

// UpdateBookPayload is a partial patch: only supplied fields are written.
type UpdateBookPayload struct {
	Title            *string  `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=500"`
	Author           *string  `json:"author,omitempty" mod:"trim" validate:"omitempty,max=300"`
	ISBN             *string  `json:"isbn,omitempty" mod:"trim" validate:"omitempty,max=20"`
	TotalPages       *int     `json:"totalPages,omitempty" validate:"omitempty,min=1"`
	CurrentPage      *int     `json:"currentPage,omitempty" validate:"omitempty,min=0"`
	TotalChapters    *int     `json:"totalChapters,omitempty" validate:"omitempty,min=1"`
	CurrentChapter   *int     `json:"currentChapter,omitempty" validate:"omitempty,min=0"`
	TrackingType     *string  `json:"trackingType,omitempty" validate:"omitempty,oneof=pages chapters"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,oneof='Want to Read' Reading Finished Unfinished DNF"`
	Rating           *int     `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Format           *string  `json:"format,omitempty" validate:"omitempty,max=100"`
	Language         *string  `json:"language,omitempty" validate:"omitempty,max=100"`
	OriginalLanguage *string  `json:"originalLanguage,omitempty" validate:"omitempty,max=100"`
	Publisher        *string  `json:"publisher,omitempty" validate:"omitempty,max=300"`
	PublicationYear  *int     `json:"publicationYear,omitempty" validate:"omitempty,min=0"`
	Tags             []string `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
	SeriesName       *string  `json:"seriesName,omitempty" validate:"omitempty,max=300"`
	SeriesOrder      *int     `json:"seriesOrder,omitempty" validate:"omitempty,min=0"`
	SeriesCoverURL   *string  `json:"seriesCoverUrl,omitempty" validate:"omitempty,url"`
	CollectionType   *string  `json:"collectionType,omitempty" validate:"omitempty,oneof=standalone series volume collection"`
	VolumeNumber     *int     `json:"volumeNumber,omitempty" validate:"omitempty,min=0"`
	TotalVolumes     *int     `json:"totalVolumes,omitempty" validate:"omitempty,min=0"`
	TotalInSeries    *int     `json:"totalInSeries,omitempty" validate:"omitempty,min=0"`
	CoverURL         *string  `json:"coverUrl,omitempty" validate:"omitempty,url"`
	CoverPath        *string  `json:"coverPath,omitempty" validate:"omitempty,max=1000"`
}

type DuplicatesQuery struct {
	Title  string `query:"title" json:"title,omitempty" validate:"omitempty,max=500"`
	Author string `query:"author" json:"author,omitempty" validate:"omitempty,max=300"`
	ISBN   string `query:"isbn" json:"isbn,omitempty" validate:"omitempty,max=20"`
}
