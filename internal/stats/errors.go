package stats

import "github.com/mauv0809/statsmock/internal/apperror"

// Errors returned by the query operations. Their messages are sent to clients as is.
var (
	ErrUserNotFound        = apperror.NotFound("User doesn't exist")
	ErrMissingGameID       = apperror.BadRequest("No game id provided")
	ErrGameNotFound        = apperror.NotFound("No game with such id")
	ErrMissingTournamentID = apperror.BadRequest("No tournament id provided")
	ErrTournamentNotFound  = apperror.NotFound("No tournament with such id")
	ErrInvalidPage         = apperror.BadRequest("Invalid page parameter")
	ErrInvalidPageSize     = apperror.BadRequest("Invalid per_page parameter")
)
