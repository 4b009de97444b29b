package pipeline

import (
	"context"
	"errors"

	"github.com/ppiankov/geolens/internal/model"
)

// UserMessage turns an error into one sentence a user can act on
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrTimeout):
		return "The analysis service took too long to answer. Try again or shorten the text."
	case errors.Is(err, model.ErrQuotaExceeded):
		return "The analysis service is rate limiting requests. Wait a minute and try again."
	case errors.Is(err, model.ErrMalformedResponse):
		return "The analysis service returned an unreadable answer. Try again."
	case errors.Is(err, model.ErrServiceUnavailable):
		return "The analysis service is temporarily unavailable. Try again shortly."
	case errors.Is(err, model.ErrDuplicateRequest):
		return "An analysis is already running. Wait for it to finish before starting another."
	case errors.Is(err, model.ErrNoActiveSession):
		return "Analyze a text before building a map."
	case errors.Is(err, model.ErrSchemaInvalid):
		return "The data was not in the expected shape. Check the file and try again."
	case errors.Is(err, ErrSourceNotLoaded):
		return "The map has no boundary layer loaded yet."
	case errors.Is(err, ErrBlockedByRobots):
		return "The site does not allow automated fetching of this page. Paste the article text instead."
	case errors.Is(err, context.Canceled):
		return "The analysis was cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The analysis ran out of time. Try again."
	default:
		return "Something went wrong: " + err.Error()
	}
}
