package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NotasHandler proxies credit/debit note creation to the remote FACDIN API.
type NotasHandler struct{ api *infra.FacdinClient }

func NewNotasHandler(api *infra.FacdinClient) *NotasHandler { return &NotasHandler{api: api} }

func (h *NotasHandler) Crear(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.CrearNota(c.Request.Context(), middleware.GetToken(c), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", resp)
}
