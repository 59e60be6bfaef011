package httperr

import (
	"errors"
	"net/http"

	"slotbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError keeps the original error on the gin context for the logging middleware.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target error
	status int
	msg    string
}

// Order matters: the first matching category wins.
var mappings = []mapping{
	{errs.ErrValidation, http.StatusBadRequest, "Validation failed"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{errs.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{errs.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{errs.ErrIncorrectPassword, http.StatusBadRequest, "Current password is incorrect"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrDuplicateAccount, http.StatusConflict, "An account with this email already exists"},
	{errs.ErrDuplicateService, http.StatusConflict, "A service with this name already exists"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Selected time slot is not available"},
	{errs.ErrPastDate, http.StatusBadRequest, "Cannot book appointments in the past"},
	{errs.ErrInvalidStatus, http.StatusBadRequest, "Invalid booking status"},
	{errs.ErrInvalidTransition, http.StatusConflict, "Invalid status transition"},
	{errs.ErrAlreadyCompleted, http.StatusConflict, "Cannot cancel a completed booking"},
}

// Respond maps a use case error onto the HTTP error taxonomy and aborts the request.
// notFoundMsg, when given, replaces the generic 404 message.
func Respond(c *gin.Context, err error, notFoundMsg ...string) {
	for _, m := range mappings {
		if !errs.Is(err, m.target) {
			continue
		}
		msg := m.msg
		if m.status == http.StatusNotFound && len(notFoundMsg) > 0 {
			msg = notFoundMsg[0]
		}
		var detail any
		if m.target == errs.ErrValidation {
			if fields := errs.Fields(err); len(fields) > 0 {
				detail = fields
			}
		}
		AbortWithError(c, m.status, err, msg, detail)
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

// BadRequest reports a malformed request that never reached a use case.
func BadRequest(c *gin.Context, err error, msg string) {
	var detail any
	if fields := bindingDetails(err); len(fields) > 0 {
		detail = fields
	}
	AbortWithError(c, http.StatusBadRequest, err, msg, detail)
}

func bindingDetails(err error) []errs.FieldDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Fields(err)
	}
	out := make([]errs.FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, errs.FieldDetail{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must match " + fe.Param()
	default:
		return "is invalid"
	}
}
