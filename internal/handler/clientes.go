package handler

import (
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/apierror"
	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarTodos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Busca clientes por CI, RIF o nombre
// @Tags clientes
// @Produce json
// @Param termino query string true "Termino de busqueda (minimo 2 caracteres)"
// @Success 200 {array} dto.ClienteResponse
// @Router /v1/clientes/buscar [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("termino"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) ObtenerPorIdentificacion(c *gin.Context) {
	resp, err := h.svc.BuscarPorIdentificacion(c.Request.Context(), c.Param("identificacion"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar cliente"))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Guardar(c *gin.Context) {
	var req dto.GuardarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar cliente"))
		return
	}
	c.Status(http.StatusNoContent)
}
