package handler

import (
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/apierror"
	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra los metodos de pago de una factura emitida
// @Tags pagos
// @Accept json
// @Produce json
// @Param body body dto.RegistrarPagoRequest true "Pagos aplicados"
// @Success 201 {object} dto.PagoFacturaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerPorFactura returns the latest payment record for an invoice number.
func (h *PagosHandler) ObtenerPorFactura(c *gin.Context) {
	resp, err := h.svc.ObtenerPorFactura(c.Request.Context(), c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar pagos"))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin pagos registrados para esta factura"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorFactura returns every payment attempt for an invoice, newest first.
func (h *PagosHandler) ListarPorFactura(c *gin.Context) {
	resp, err := h.svc.ListarPorFactura(c.Request.Context(), c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarPorFactura reverses the local payment records for a voided invoice.
// The route is PIN-gated; the remote invoice must be reversed separately.
func (h *PagosHandler) EliminarPorFactura(c *gin.Context) {
	eliminados, err := h.svc.EliminarPorFactura(c.Request.Context(), c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar pagos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"eliminados": eliminados})
}
