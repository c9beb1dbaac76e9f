package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusWantToRead = "Want to Read"
	StatusReading    = "Reading"
	StatusFinished   = "Finished"
	StatusUnfinished = "Unfinished"
	StatusDNF        = "DNF"
)

const (
	TrackingTypePages    = "pages"
	TrackingTypeChapters = "chapters"
)

const (
	CollectionTypeStandalone = "standalone"
	CollectionTypeSeries     = "series"
	CollectionTypeVolume     = "volume"
	CollectionTypeCollection = "collection"
)

// Statuses lists every valid book status, in display order.
var Statuses = []string{
	StatusWantToRead,
	StatusReading,
	StatusFinished,
	StatusUnfinished,
	StatusDNF,
}

// Book is one catalogued item. Column names keep the application's historical
// camelCase schema, which other tooling reads directly, so every field maps
// its column explicitly.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID               int       `bun:"id,pk,autoincrement" json:"id"`
	Title            string    `bun:"title" json:"title"`
	Author           *string   `bun:"author" json:"author"`
	ISBN             *string   `bun:"isbn" json:"isbn"`
	TotalPages       *int      `bun:"totalPages" json:"totalPages"`
	CurrentPage      int       `bun:"currentPage" json:"currentPage"`
	TotalChapters    *int      `bun:"totalChapters" json:"totalChapters"`
	CurrentChapter   int       `bun:"currentChapter" json:"currentChapter"`
	TrackingType     string    `bun:"trackingType" json:"trackingType"`
	Status           string    `bun:"status" json:"status"`
	Rating           *int      `bun:"rating" json:"rating"`
	Format           *string   `bun:"format" json:"format"`
	Language         *string   `bun:"language" json:"language"`
	OriginalLanguage *string   `bun:"originalLanguage" json:"originalLanguage"`
	Publisher        *string   `bun:"publisher" json:"publisher"`
	PublicationYear  *int      `bun:"publicationYear" json:"publicationYear"`
	Tags             string    `bun:"tags" json:"tags"`
	SeriesName       *string   `bun:"seriesName" json:"seriesName"`
	SeriesOrder      *int      `bun:"seriesOrder" json:"seriesOrder"`
	SeriesCoverURL   *string   `bun:"seriesCoverUrl" json:"seriesCoverUrl"`
	CollectionType   string    `bun:"collectionType" json:"collectionType"`
	VolumeNumber     *int      `bun:"volumeNumber" json:"volumeNumber"`
	TotalVolumes     *int      `bun:"totalVolumes" json:"totalVolumes"`
	TotalInSeries    *int      `bun:"totalInSeries" json:"totalInSeries"`
	ReadCount        int       `bun:"readCount" json:"readCount"`
	CoverURL         *string   `bun:"coverUrl" json:"coverUrl"`
	CoverPath        *string   `bun:"coverPath" json:"coverPath"`
	CreatedAt        time.Time `bun:"createdAt,nullzero" json:"createdAt"`
	UpdatedAt        time.Time `bun:"updatedAt,nullzero" json:"updatedAt"`
}

// TagList parses the comma-joined tags column into a deduplicated list,
// preserving first-seen order.
func (b *Book) TagList() []string {
	if b.Tags == "" {
		return nil
	}

	seen := map[string]bool{}
	tags := []string{}
	for _, tag := range strings.Split(b.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags builds the comma-joined tags column value.
func JoinTags(tags []string) string {
	cleaned := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// ResolveCover picks the sole authoritative cover reference; an uploaded
// cover file takes precedence over a remote URL.
func (b *Book) ResolveCover() string {
	if b.CoverPath != nil && *b.CoverPath != "" {
		return *b.CoverPath
	}
	if b.CoverURL != nil && *b.CoverURL != "" {
		return *b.CoverURL
	}
	return ""
}

// CurrentProgress returns the progress value the book's tracking type treats
// as authoritative.
func (b *Book) CurrentProgress() int {
	if b.TrackingType == TrackingTypeChapters {
		return b.CurrentChapter
	}
	return b.CurrentPage
}

// ProgressTarget returns the total the tracking type counts toward, or nil if
// the user never set one.
func (b *Book) ProgressTarget() *int {
	if b.TrackingType == TrackingTypeChapters {
		return b.TotalChapters
	}
	return b.TotalPages
}
