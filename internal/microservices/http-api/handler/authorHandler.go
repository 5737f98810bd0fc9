package handler

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	svc service.AuthorService
}

func NewAuthorHandler(svc service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

func (h *AuthorHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	authors, err := h.svc.GetAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, dto.AuthorFromModel(a))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	author, err := h.svc.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": author})
}
