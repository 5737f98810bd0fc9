package handler

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FeaturedHandler struct {
	svc service.FeaturedService
}

func NewFeaturedHandler(svc service.FeaturedService) *FeaturedHandler {
	return &FeaturedHandler{svc: svc}
}

func (h *FeaturedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *FeaturedHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
}

func (h *FeaturedHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.FeaturedNovelResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, dto.FeaturedFromModel(f))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *FeaturedHandler) Create(c *gin.Context) {
	var req dto.CreateFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	f, err := h.svc.Create(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": dto.FeaturedFromModel(*f)})
}

func (h *FeaturedHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "featured novel removed successfully"})
}
