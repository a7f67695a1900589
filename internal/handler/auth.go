package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler proxies user operations to the remote FACDIN API. There are no
// local credentials: the remote backend issues the tokens this service later
// relays on every protected call.
type AuthHandler struct{ api *infra.FacdinClient }

func NewAuthHandler(api *infra.FacdinClient) *AuthHandler { return &AuthHandler{api: api} }

func (h *AuthHandler) Login(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.Login(c.Request.Context(), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *AuthHandler) PrimerAdminExiste(c *gin.Context) {
	resp, err := h.api.PrimerAdminExiste(c.Request.Context())
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", resp)
}

func (h *AuthHandler) RegistrarPrimerAdmin(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.RegistrarPrimerAdmin(c.Request.Context(), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", resp)
}

func (h *AuthHandler) RegistrarUsuario(c *gin.Context) {
	body, ok := proxyBody(c)
	if !ok {
		return
	}
	resp, err := h.api.RegistrarUsuario(c.Request.Context(), middleware.GetToken(c), json.RawMessage(body))
	if err != nil {
		remoteError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", resp)
}
