package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-screening/internal/pipeline"
)

// errBadRequest marks request decoding failures.
type errBadRequest struct {
	Message string
}

func (e *errBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		notFound   *pipeline.NotFoundError
		conflict   *pipeline.ConflictError
		badStatus  *pipeline.InvalidStatusError
		fetchErr   *pipeline.FetchError
		badRequest *errBadRequest
		validation validator.ValidationErrors
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badStatus), errors.As(err, &validation), errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
