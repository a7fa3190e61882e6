package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps a service error onto the error taxonomy. Internal
// errors are recorded on the gin context and reported without detail.
func RespondServiceError(c *gin.Context, err error) {
	status, code := apierr.Classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, ErrorEnvelope{
			Error: APIError{Message: "internal server error", Code: code},
		})
		return
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: apierr.Message(err), Code: code},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
