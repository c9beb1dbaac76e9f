package sessions

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/models"
)

// ActiveSession is the client-held state of a live reading timer: where the
// user started and when. It has no database row until the timer is stopped.
type ActiveSession struct {
	StartTime    string `json:"startTime"`
	StartPage    *int   `json:"startPage"`
	StartChapter *int   `json:"startChapter"`
}

// Analysis summarizes a just-saved session. It is computed from the saved
// values and the book as read back in the same call; nothing here is
// persisted.
type Analysis struct {
	Unit                 string   `json:"unit"`
	UnitsRead            int      `json:"unitsRead"`
	DurationMinutes      int      `json:"durationMinutes"`
	PacePerHour          float64  `json:"pacePerHour"`
	RemainingUnits       *int     `json:"remainingUnits"`
	EstimatedMinutesLeft *int     `json:"estimatedMinutesLeft"`
	Tags                 []string `json:"tags"`
}

// CompleteSession is the stop-the-timer path. Elapsed seconds become whole
// minutes (floored), the page or chapter pair is picked by the book's
// tracking type, and the result goes through the same save-and-sync
// transaction as manual entry. The analysis is derived afterwards.
func (svc *Service) CompleteSession(ctx context.Context, book *models.Book, active *ActiveSession, endValue, durationSeconds int) (*models.Session, *Analysis, error) {
	minutes := durationSeconds / 60
	endTime := time.Now().UTC().Format(time.RFC3339)

	session := &models.Session{
		BookID:    book.ID,
		StartTime: active.StartTime,
		EndTime:   &endTime,
		Duration:  &minutes,
	}

	if book.TrackingType == models.TrackingTypeChapters {
		session.StartChapter = active.StartChapter
		session.EndChapter = &endValue
	} else {
		session.StartPage = active.StartPage
		session.EndPage = &endValue
	}

	if err := svc.SaveSession(ctx, session); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return session, AnalyzeSession(book, session), nil
}

// AnalyzeSession is a pure function over the saved session and its book.
func AnalyzeSession(book *models.Book, session *models.Session) *Analysis {
	analysis := &Analysis{
		Unit: book.TrackingType,
		Tags: []string{},
	}

	if session.Duration != nil {
		analysis.DurationMinutes = *session.Duration
	}

	var start, end *int
	if book.TrackingType == models.TrackingTypeChapters {
		start, end = session.StartChapter, session.EndChapter
	} else {
		start, end = session.StartPage, session.EndPage
	}

	if start != nil && end != nil && *end > *start {
		analysis.UnitsRead = *end - *start
	}

	if analysis.UnitsRead > 0 && analysis.DurationMinutes > 0 {
		analysis.PacePerHour = float64(analysis.UnitsRead) / float64(analysis.DurationMinutes) * 60
	}

	if target := book.ProgressTarget(); target != nil && end != nil {
		remaining := *target - *end
		if remaining < 0 {
			remaining = 0
		}
		analysis.RemainingUnits = &remaining

		if remaining == 0 {
			analysis.Tags = append(analysis.Tags, "finished")
		} else if analysis.PacePerHour > 0 {
			estimate := int(float64(remaining) / analysis.PacePerHour * 60)
			analysis.EstimatedMinutesLeft = &estimate
		}
	}

	switch {
	case analysis.DurationMinutes >= 120:
		analysis.Tags = append(analysis.Tags, "marathon")
	case analysis.DurationMinutes > 0 && analysis.DurationMinutes <= 10:
		analysis.Tags = append(analysis.Tags, "quick")
	}

	return analysis
}
