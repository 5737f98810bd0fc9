package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNovelRouter(svc *MockNovelService) *gin.Engine {
	r := setupRouter()
	h := handler.NewNovelHandler(svc)
	h.RegisterRoutes(r.Group("/api/novels"))
	h.RegisterAdminRoutes(r.Group("/api/novels", mockAuthMiddleware(1, models.RoleAdmin)))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// multipartRequest builds a form with repeated fields and an optional file.
func multipartRequest(t *testing.T, method, path string, fields [][2]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestNovelHandler_List(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	novels := []models.Novel{
		{ID: 1, Title: "Novel 1", Author: &models.Author{ID: 4, Name: "Author A"}, Genres: []models.Genre{{ID: 1, Name: "Fantasy", Slug: "fantasy"}}},
		{ID: 2, Title: "Novel 2", Status: models.StatusCompleted},
	}

	t.Run("Defaults", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 1, 20).Return(novels, int64(45), nil).Once()

		w := get(r, "/api/novels")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.PaginatedNovelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Author A", resp.Data[0].AuthorName)
		assert.Equal(t, int64(3), resp.Pagination.TotalPages)
	})

	t.Run("OutOfRangePageSize", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 2, 20).Return([]models.Novel{}, int64(0), nil).Once()

		w := get(r, "/api/novels?page=2&page_size=500")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 1, 10).Return(nil, int64(0), errors.New("connection reset")).Once()

		w := get(r, "/api/novels?page_size=10")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestNovelHandler_Get(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	detail := &dto.NovelDetailResponse{
		Data:  dto.NovelResponse{ID: 7, Title: "Shadow Slave"},
		Stats: dto.NovelStatsResponse{NovelID: 7, Title: "Shadow Slave", AverageRating: 4.3},
	}
	mockService.On("GetDetail", mock.Anything, "Shadow Slave").Return(detail, nil)
	mockService.On("GetDetail", mock.Anything, "7").Return(detail, nil)
	mockService.On("GetDetail", mock.Anything, "Nope").Return(nil, service.ErrNovelNotFound)

	t.Run("ByTitle", func(t *testing.T) {
		w := get(r, "/api/novels/Shadow%20Slave")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.NovelDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.Data.ID)
		assert.Equal(t, 4.3, resp.Stats.AverageRating)
	})

	t.Run("ByID", func(t *testing.T) {
		w := get(r, "/api/novels/7")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		w := get(r, "/api/novels/Nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not found: novel not found"}`, w.Body.String())
	})
}

func TestNovelHandler_StaticRoutesWinOverIdentifier(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	mockService.On("SearchByTitle", mock.Anything, "lord").Return([]models.Novel{{ID: 1, Title: "Lord of Mysteries"}}, nil)
	mockService.On("RandomCompleted", mock.Anything).Return(nil, service.ErrNotFound)
	mockService.On("GetStats", mock.Anything, "Lord of Mysteries").Return(&dto.NovelStatsResponse{NovelID: 1}, nil)
	mockService.On("ListByGenre", mock.Anything, "fantasy").Return([]models.Novel{}, nil)
	mockService.On("ListByAuthor", mock.Anything, int64(4)).Return(nil, service.ErrAuthorNotFound)

	assert.Equal(t, http.StatusOK, get(r, "/api/novels/search?q=lord").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/novels/random-completed").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/novels/stats/Lord%20of%20Mysteries").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/novels/genre/fantasy").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/novels/author/4").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(r, "/api/novels/author/abc").Code)

	mockService.AssertNotCalled(t, "GetDetail", mock.Anything, mock.Anything)
}

func TestNovelHandler_Create(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	fields := [][2]string{
		{"title", "Reverend Insanity"},
		{"author", "Guduo"},
		{"publisher", "Qidian"},
		{"synopsis", "A demon walks the path of immortality."},
		{"status", "ongoing"},
		{"publishing_year", "2012"},
		{"genres[]", "1"},
		{"genres[]", "3"},
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(f dto.CreateNovelForm) bool {
			return f.Title == "Reverend Insanity" && f.PublishingYear == 2012 && len(f.GenreIDs) == 2 && f.GenreIDs[1] == 3
		}), mock.AnythingOfType("*multipart.FileHeader")).Return(&models.Novel{ID: 10, Title: "Reverend Insanity"}, nil).Once()

		req := multipartRequest(t, http.MethodPost, "/api/novels", fields, "cover_image", "cover.png", []byte("png"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Reverend Insanity"`)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		bad := append([][2]string{}, fields...)
		bad[4] = [2]string{"status", "abandoned"}

		req := multipartRequest(t, http.MethodPost, "/api/novels", bad, "cover_image", "cover.png", []byte("png"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("InvalidGenreID", func(t *testing.T) {
		bad := append([][2]string{}, fields[:6]...)
		bad = append(bad, [2]string{"genres[]", "fantasy"})

		req := multipartRequest(t, http.MethodPost, "/api/novels", bad, "", "", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MissingCoverIsPassedThrough", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.Anything, (*multipart.FileHeader)(nil)).Return(nil, service.ErrInvalidMedia).Once()

		req := multipartRequest(t, http.MethodPost, "/api/novels", fields, "", "", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	mockService.AssertNumberOfCalls(t, "Create", 2)
}

func TestNovelHandler_Update(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	mockService.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(f dto.UpdateNovelForm) bool {
		return f.Title != nil && *f.Title == "New Title" && f.Synopsis == nil && f.GenreIDs == nil
	}), (*multipart.FileHeader)(nil)).Return(&models.Novel{ID: 10, Title: "New Title"}, nil)

	req := multipartRequest(t, http.MethodPost, "/api/novels/10", [][2]string{{"title", "New Title"}}, "", "", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = multipartRequest(t, http.MethodPost, "/api/novels/abc", [][2]string{{"title", "New Title"}}, "", "", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	mockService.AssertNumberOfCalls(t, "Update", 1)
}

func TestNovelHandler_Delete(t *testing.T) {
	mockService := new(MockNovelService)
	r := setupNovelRouter(mockService)

	mockService.On("Delete", mock.Anything, int64(10)).Return(nil)
	mockService.On("BulkDelete", mock.Anything, []int64{1, 2, 3}).Return(int64(2), nil)

	req, _ := http.NewRequest(http.MethodDelete, "/api/novels/10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodDelete, "/api/novels/bulk", bytes.NewBufferString(`{"ids":[1,2,3]}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":2`)

	req, _ = http.NewRequest(http.MethodDelete, "/api/novels/bulk", bytes.NewBufferString(`{"ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
