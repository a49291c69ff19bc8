// Package handler is the HTTP edge: binding, validation, and the
// mapping from service errors to status codes. No business rules here.
package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bizpos/internal/apierror"
	"bizpos/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal validates as its float value so min/required work.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body and runs struct validation,
// writing the 400 itself on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("malformed request body"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery decodes the query string and validates it.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("malformed query parameters"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters"))
		return false
	}
	return true
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto the HTTP error taxonomy.
// Anything unrecognized is logged and returned as a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var lf *service.LineFailure
	switch {
	case errors.As(err, &lf):
		c.JSON(http.StatusBadRequest, apierror.NewLine(lf.Reason, lf.Line, lf.ProductID))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("resource not found"))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, apierror.New("operation conflicts with existing data"))
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"detail": "invalid credentials",
			"login":  "/v1/auth/login",
		})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
