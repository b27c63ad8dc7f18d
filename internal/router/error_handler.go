package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "useraccounts/internal/errors"
)

// ErrorHandler renders every error as an apperrors.ErrorResponse.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var resp apperrors.ErrorResponse
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			resp = apperrors.ErrorResponse{
				StatusCode: echoErr.Code,
				Message:    fmt.Sprint(echoErr.Message),
				Code:       statusCode(echoErr.Code),
			}
		} else {
			resp = apperrors.MapErrorToHTTP(err).ToErrorResponse()
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			log.WithError(err).WithField("uri", c.Request().RequestURI).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.StatusCode)
		} else {
			err = c.JSON(resp.StatusCode, resp)
		}
		if err != nil {
			log.WithError(err).Error("write error response")
		}
	}
}

func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
