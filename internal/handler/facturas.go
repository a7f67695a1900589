package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// FacturasHandler proxies invoice operations to the remote FACDIN API.
// Invoices are remote-authoritative — nothing here touches the local store;
// the UI records payments locally only after a successful insert.
type FacturasHandler struct{ api *infra.FacdinClient }

func NewFacturasHandler(api *infra.FacdinClient) *FacturasHandler {
	return &FacturasHandler{api: api}
}

func (h *FacturasHandler) Insertar(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.InsertarFactura(c.Request.Context(), middleware.GetToken(c), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", resp)
}

func (h *FacturasHandler) Recientes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	resp, err := h.api.FacturasRecientes(c.Request.Context(), middleware.GetToken(c), limit, offset, c.Query("search"))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *FacturasHandler) Detalle(c *gin.Context) {
	resp, err := h.api.DetalleFactura(c.Request.Context(), middleware.GetToken(c), c.Param("id"))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *FacturasHandler) VerificarPorNumero(c *gin.Context) {
	resp, err := h.api.VerificarFactura(c.Request.Context(), middleware.GetToken(c), c.Param("numero"))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *FacturasHandler) Estadisticas(c *gin.Context) {
	resp, err := h.api.EstadisticasFacturas(c.Request.Context(), middleware.GetToken(c), c.Query("fecha"))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}
