package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CajaHandler proxies cash-register open/close to the remote FACDIN API.
// Register state is remote-authoritative; no session is kept locally.
type CajaHandler struct{ api *infra.FacdinClient }

func NewCajaHandler(api *infra.FacdinClient) *CajaHandler { return &CajaHandler{api: api} }

func (h *CajaHandler) Abrir(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.AbrirCaja(c.Request.Context(), middleware.GetToken(c), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *CajaHandler) Cerrar(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.CerrarCaja(c.Request.Context(), middleware.GetToken(c), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}
