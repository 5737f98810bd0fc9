package handler

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChapterHandler struct {
	svc service.ChapterService
}

func NewChapterHandler(svc service.ChapterService) *ChapterHandler {
	return &ChapterHandler{svc: svc}
}

func (h *ChapterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recent", h.Recent)
	rg.GET("/novel/:novel", h.ListByNovel)
	rg.GET("/novel/:novel/:chapter", h.Get)
}

func (h *ChapterHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.POST("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// ListByNovel GET /api/chapters/novel/:novel, novel being an id or title.
// Chapter bodies are left out of the listing.
func (h *ChapterHandler) ListByNovel(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	novel, chapters, err := h.svc.ListByNovel(ctx, c.Param("novel"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		resp = append(resp, dto.ChapterSummaryFromModel(ch))
	}
	c.JSON(http.StatusOK, gin.H{
		"novel": dto.FromModelToBasicResponse(*novel),
		"data":  resp,
	})
}

// Get GET /api/chapters/novel/:novel/:chapter. The chapter segment is a
// chapter id, a chapter number or an exact title.
func (h *ChapterHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ch, err := h.svc.Get(ctx, c.Param("novel"), c.Param("chapter"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ChapterFromModel(*ch)})
}

func (h *ChapterHandler) Recent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	chapters, err := h.svc.Recent(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.RecentChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		resp = append(resp, dto.RecentChapterFromModel(ch))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Create POST /api/chapters (multipart, admin)
func (h *ChapterHandler) Create(c *gin.Context) {
	var form dto.CreateChapterForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	audio, err := optionalFile(c, audioField)
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ch, err := h.svc.Create(ctx, form, audio)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "chapter created successfully",
		"data":    dto.ChapterFromModel(*ch),
	})
}

// Update POST /api/chapters/:id (multipart, admin)
func (h *ChapterHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form dto.UpdateChapterForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	audio, err := optionalFile(c, audioField)
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ch, err := h.svc.Update(ctx, id, form, audio)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "chapter updated successfully",
		"data":    dto.ChapterFromModel(*ch),
	})
}

func (h *ChapterHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted successfully"})
}
