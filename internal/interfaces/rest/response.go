package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// errorBody is the error envelope every failing endpoint returns.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// writeError maps an error to its HTTP status and envelope.  Non-AppError
// values surface as COMMON_001 without leaking internals.
func writeError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.New(apperrors.ErrCodeInternal,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeInternal))
	}
	c.JSON(apperrors.HTTPStatusForCode(appErr.Code), errorEnvelope{Error: errorBody{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		RequestID: c.GetString("request_id"),
	}})
}
