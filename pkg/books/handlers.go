package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
)

type handler struct {
	booksService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.booksService.ListBooksPage(ctx, ListBooksOptions{
		Pagination: &params.Params,
		Status:     params.Status,
		Search:     params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.booksService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:            params.Title,
		Author:           params.Author,
		ISBN:             params.ISBN,
		TotalPages:       params.TotalPages,
		TotalChapters:    params.TotalChapters,
		TrackingType:     params.TrackingType,
		Status:           params.Status,
		Rating:           params.Rating,
		Format:           params.Format,
		Language:         params.Language,
		OriginalLanguage: params.OriginalLanguage,
		Publisher:        params.Publisher,
		PublicationYear:  params.PublicationYear,
		Tags:             models.JoinTags(params.Tags),
		SeriesName:       params.SeriesName,
		SeriesOrder:      params.SeriesOrder,
		SeriesCoverURL:   params.SeriesCoverURL,
		CollectionType:   params.CollectionType,
		VolumeNumber:     params.VolumeNumber,
		TotalVolumes:     params.TotalVolumes,
		TotalInSeries:    params.TotalInSeries,
		CoverURL:         params.CoverURL,
		CoverPath:        params.CoverPath,
	}

	if err := h.booksService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.booksService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}

	if params.Title != nil {
		book.Title = *params.Title
		columns = append(columns, "title")
	}
	if params.Author != nil {
		book.Author = params.Author
		columns = append(columns, "author")
	}
	if params.ISBN != nil {
		book.ISBN = params.ISBN
		columns = append(columns, "isbn")
	}
	if params.TotalPages != nil {
		book.TotalPages = params.TotalPages
		columns = append(columns, "totalPages")
	}
	if params.CurrentPage != nil {
		book.CurrentPage = *params.CurrentPage
		columns = append(columns, "currentPage")
	}
	if params.TotalChapters != nil {
		book.TotalChapters = params.TotalChapters
		columns = append(columns, "totalChapters")
	}
	if params.CurrentChapter != nil {
		book.CurrentChapter = *params.CurrentChapter
		columns = append(columns, "currentChapter")
	}
	if params.TrackingType != nil {
		book.TrackingType = *params.TrackingType
		columns = append(columns, "trackingType")
	}
	if params.Status != nil {
		book.Status = *params.Status
		columns = append(columns, "status")
	}
	if params.Rating != nil {
		book.Rating = params.Rating
		columns = append(columns, "rating")
	}
	if params.Format != nil {
		book.Format = params.Format
		columns = append(columns, "format")
	}
	if params.Language != nil {
		book.Language = params.Language
		columns = append(columns, "language")
	}
	if params.OriginalLanguage != nil {
		book.OriginalLanguage = params.OriginalLanguage
		columns = append(columns, "originalLanguage")
	}
	if params.Publisher != nil {
		book.Publisher = params.Publisher
		columns = append(columns, "publisher")
	}
	if params.PublicationYear != nil {
		book.PublicationYear = params.PublicationYear
		columns = append(columns, "publicationYear")
	}
	if params.Tags != nil {
		book.Tags = models.JoinTags(params.Tags)
		columns = append(columns, "tags")
	}
	if params.SeriesName != nil {
		book.SeriesName = params.SeriesName
		columns = append(columns, "seriesName")
	}
	if params.SeriesOrder != nil {
		book.SeriesOrder = params.SeriesOrder
		columns = append(columns, "seriesOrder")
	}
	if params.SeriesCoverURL != nil {
		book.SeriesCoverURL = params.SeriesCoverURL
		columns = append(columns, "seriesCoverUrl")
	}
	if params.CollectionType != nil {
		book.CollectionType = *params.CollectionType
		columns = append(columns, "collectionType")
	}
	if params.VolumeNumber != nil {
		book.VolumeNumber = params.VolumeNumber
		columns = append(columns, "volumeNumber")
	}
	if params.TotalVolumes != nil {
		book.TotalVolumes = params.TotalVolumes
		columns = append(columns, "totalVolumes")
	}
	if params.TotalInSeries != nil {
		book.TotalInSeries = params.TotalInSeries
		columns = append(columns, "totalInSeries")
	}
	if params.CoverURL != nil {
		book.CoverURL = params.CoverURL
		columns = append(columns, "coverUrl")
	}
	if params.CoverPath != nil {
		book.CoverPath = params.CoverPath
		columns = append(columns, "coverPath")
	}

	if err := h.booksService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns}); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.booksService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) duplicates(c echo.Context) error {
	ctx := c.Request().Context()

	params := DuplicatesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	matches, err := h.booksService.FindPotentialDuplicates(ctx, params.Title, params.Author, params.ISBN)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"matches": matches}))
}
