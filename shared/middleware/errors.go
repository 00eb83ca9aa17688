package middleware

import (
	"net/http"

	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/logger"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// StatusFor maps an error kind onto the HTTP status returned to the caller.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidAccountType, apperr.KindBadRequest, apperr.KindServiceUnavailable:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithAppError writes the {message} envelope for err. Unclassified errors
// are logged and answered with a generic 500 so no internals leak to the caller.
func RespondWithAppError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.Error("unhandled error", err, logger.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		})
		RespondWithError(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	RespondWithError(c, StatusFor(kind), err.Error())
}
