package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	coverField = "cover_image"
	audioField = "audio_file"
)

type NovelHandler struct {
	svc service.NovelService
}

func NewNovelHandler(svc service.NovelService) *NovelHandler {
	return &NovelHandler{svc: svc}
}

// RegisterRoutes mounts the public catalog routes under /novels.
func (h *NovelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/random-completed", h.RandomCompleted)
	rg.GET("/stats/:id", h.Stats)
	rg.GET("/author/:authorId", h.ByAuthor)
	rg.GET("/genre/:genreSlug", h.ByGenre)
	rg.GET("/:id", h.Get)
}

// RegisterAdminRoutes mounts the write routes; the group must already
// require an admin.
func (h *NovelHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.DELETE("/bulk", h.BulkDelete)
	rg.POST("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List GET /api/novels?page=1&page_size=20
func (h *NovelHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, pageSize := q.Normalize()

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.svc.GetAll(ctx, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedNovelResponse{
		Data:       dto.FromModelsToBasicResponse(list),
		Pagination: dto.NewPagination(total, page, pageSize),
	})
}

// Get GET /api/novels/:id where id is a novel id or its exact title.
func (h *NovelHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	detail, err := h.svc.GetDetail(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Stats GET /api/novels/stats/:id
func (h *NovelHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	stats, err := h.svc.GetStats(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Search GET /api/novels/search?q=
func (h *NovelHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.SearchByTitle(ctx, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromModelsToBasicResponse(list)})
}

func (h *NovelHandler) ByAuthor(c *gin.Context) {
	authorID, ok := paramID(c, "authorId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.ListByAuthor(ctx, authorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromModelsToBasicResponse(list)})
}

func (h *NovelHandler) ByGenre(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.ListByGenre(ctx, c.Param("genreSlug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromModelsToBasicResponse(list)})
}

func (h *NovelHandler) RandomCompleted(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	n, err := h.svc.RandomCompleted(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.FromModelToNovelResponse(*n)})
}

// Create POST /api/novels (multipart, admin)
func (h *NovelHandler) Create(c *gin.Context) {
	var form dto.CreateNovelForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	genres, err := formGenreIDs(c, form.GenreIDs)
	if err != nil {
		bindError(c, err)
		return
	}
	form.GenreIDs = genres

	cover, err := optionalFile(c, coverField)
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	n, err := h.svc.Create(ctx, form, cover)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "novel created successfully",
		"data":    dto.FromModelToNovelResponse(*n),
	})
}

// Update POST /api/novels/:id (multipart, admin)
func (h *NovelHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form dto.UpdateNovelForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	genres, err := formGenreIDs(c, form.GenreIDs)
	if err != nil {
		bindError(c, err)
		return
	}
	form.GenreIDs = genres

	cover, err := optionalFile(c, coverField)
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	n, err := h.svc.Update(ctx, id, form, cover)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "novel updated successfully",
		"data":    dto.FromModelToNovelResponse(*n),
	})
}

func (h *NovelHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "novel deleted successfully"})
}

// BulkDelete DELETE /api/novels/bulk {"ids": [...]}
func (h *NovelHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	deleted, err := h.svc.BulkDelete(ctx, req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d novels deleted successfully", deleted),
		"deleted": deleted,
	})
}

// formGenreIDs accepts both "genres" and the "genres[]" spelling browsers
// send for multi-value fields. A nil result means the field was absent.
func formGenreIDs(c *gin.Context, bound []int64) ([]int64, error) {
	if bound != nil {
		return bound, nil
	}
	raw, ok := c.GetPostFormArray("genres[]")
	if !ok {
		return nil, nil
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid genre id %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalFile returns nil when the multipart field was not sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}
