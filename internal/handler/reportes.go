package handler

import (
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/apierror"
	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Diario godoc
// @Summary Resumen de ventas del dia por metodo de pago
// @Tags reportes
// @Produce json
// @Param fecha query string true "Fecha YYYY-MM-DD"
// @Success 200 {object} dto.ReporteDiarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/diario [get]
func (h *ReportesHandler) Diario(c *gin.Context) {
	resp, err := h.svc.ReporteDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DiarioPDF renders the daily report and streams the PDF file.
func (h *ReportesHandler) DiarioPDF(c *gin.Context) {
	path, err := h.svc.ReporteDiarioPDF(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "reporte_"+c.Query("fecha")+".pdf")
}

// Enviar queues the daily report PDF for email delivery.
func (h *ReportesHandler) Enviar(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarReporteDiario(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo encolar el envio del reporte"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"mensaje": "Reporte encolado para envio"})
}
