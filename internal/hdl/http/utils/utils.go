package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/hdl"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message,omitempty"`
	Data             any               `json:"data,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(
		func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		},
	)
	return v
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Success: true,
			Data:    data,
		},
	)
}

func MessageResponse(w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Success: true,
			Message: msg,
		},
	)
}

func ErrResponse(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Success: false,
			Message: err.Error(),
		},
	)
}

func ValidationErrResponse(w http.ResponseWriter, errs map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(
		&Response{
			Success:          false,
			ValidationErrors: errs,
		},
	)
}

// ParseAndValidate decodes the JSON body into dest and runs tag
// validation, writing the error reply itself. Returns false when the
// request was already answered.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(dest); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			errsMap := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				errsMap[fe.Field()] = fieldMessage(fe)
			}
			ValidationErrResponse(w, errsMap)
		} else {
			ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		}
		return false
	}

	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email"
	case "url":
		return fmt.Sprintf("Please provide a valid URL for %s", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// WithPrincipal tags the context with the resolved Principal.
func WithPrincipal(ctx context.Context, u *md.User) context.Context {
	return context.WithValue(ctx, config.PrincipalKey, u)
}

// PrincipalFromCtx recovers the Principal the session guard resolved.
// Protected handlers must treat a false return as an internal error:
// it means the route was wired without the guard.
func PrincipalFromCtx(ctx context.Context) (*md.User, bool) {
	u, ok := ctx.Value(config.PrincipalKey).(*md.User)
	return u, ok
}
