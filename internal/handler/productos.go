package handler

import (
	"errors"
	"net/http"

	"github.com/Epaval/factura-con-api-facdin/internal/apierror"
	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"
	"github.com/Epaval/factura-con-api-facdin/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary Lista productos cacheados
// @Tags productos
// @Produce json
// @Param solo_vigentes query bool false "Solo productos vigentes"
// @Success 200 {array} dto.ProductoResponse
// @Router /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	soloVigentes := c.Query("solo_vigentes") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), soloVigentes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("termino"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Guardar(c *gin.Context) {
	var req dto.GuardarProductoRequest
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

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al eliminar producto"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		case errors.Is(err, repository.ErrStockInsuficiente):
			c.JSON(http.StatusConflict, apierror.New("Stock insuficiente para el ajuste solicitado"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error al ajustar stock"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
