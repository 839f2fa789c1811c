package custom_error

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an engine error to the status its handler should answer
// with. Timeouts surface as 504 so callers can tell them from hard failures.
func HTTPStatus(err error) int {
	var notFound *NotFoundError
	var validation *ValidationError
	var network *NetworkError
	var inconsistent *InconsistentStateError
	var unique *UniqueViolationError
	var foreignKey *ForeignKeyViolationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &inconsistent):
		return http.StatusConflict
	case errors.As(err, &unique), errors.As(err, &foreignKey):
		return http.StatusConflict
	case errors.As(err, &network):
		if network.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
