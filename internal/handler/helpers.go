package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Epaval/factura-con-api-facdin/internal/apierror"
	"github.com/Epaval/factura-con-api-facdin/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// remoteError maps FacdinClient failures onto local HTTP responses: auth
// failures pass through as 401 (the UI redirects to login), an open breaker
// and unreachable backends become 503/502, and remote 4xx keep their status.
func remoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, infra.ErrNoAutorizado):
		c.JSON(http.StatusUnauthorized, apierror.New("Sesion expirada. Inicie sesion nuevamente."))
	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Servicio de facturacion temporalmente no disponible"))
	default:
		var remote *infra.RemoteError
		if errors.As(err, &remote) {
			c.JSON(remote.Status, apierror.New(remote.Mensaje))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo contactar el servicio de facturacion"))
	}
}

// proxyBody reads the raw request body for relay to the remote API.
// Returns nil (and writes the response) on read failure.
func proxyBody(c *gin.Context) ([]byte, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el cuerpo de la solicitud"))
		return nil, false
	}
	return raw, true
}
