package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/service"
)

type QueryHandler struct {
	gateway *service.QueryGateway
}

func NewQueryHandler(gateway *service.QueryGateway) *QueryHandler {
	return &QueryHandler{gateway: gateway}
}

func (h *QueryHandler) Execute(c *gin.Context) {
	var req dto.AdhocQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.gateway.Execute(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrQueryNotReadOnly) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		// Query errors (bad column, syntax) are the caller's to see.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ResultSetResponse{Columns: result.Columns, Rows: result.Rows, Count: len(result.Rows)})
}

func (h *QueryHandler) Tables(c *gin.Context) {
	tables, err := h.gateway.Tables(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (h *QueryHandler) DumpTable(c *gin.Context) {
	result, err := h.gateway.DumpTable(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownTable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown table"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ResultSetResponse{Columns: result.Columns, Rows: result.Rows, Count: len(result.Rows)})
}
