package handler_test

import (
	"net/http"
	"testing"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRatingRouter(svc *MockRatingService, userID int64) *gin.Engine {
	r := setupRouter()
	h := handler.NewRatingHandler(svc)
	h.RegisterRoutes(r.Group("/api/novel-ratings"))
	authed := r.Group("/api/novel-ratings")
	if userID != 0 {
		authed.Use(mockAuthMiddleware(userID, models.RoleUser))
	}
	h.RegisterAuthRoutes(authed)
	return r
}

func TestRatingHandler_Upsert(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 8)

	mockService.On("Upsert", mock.Anything, int64(8), int64(3), 4).
		Return(&dto.RatingResponse{ID: 1, NovelID: 3, UserID: 8, Rating: 4}, nil)
	mockService.On("Upsert", mock.Anything, int64(8), int64(3), 6).Return(nil, service.ErrInvalidRating)
	mockService.On("Upsert", mock.Anything, int64(8), int64(99), 4).Return(nil, service.ErrUnknownNovel)
	mockService.On("Upsert", mock.Anything, int64(8), int64(4), 5).Return(nil, service.ErrStatsIntegrity)
	mockService.On("Upsert", mock.Anything, int64(8), int64(5), 5).Return(nil, service.ErrUnknownUser)

	tests := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"valid", gin.H{"novel_id": 3, "rating": 4}, http.StatusOK},
		{"out of range", gin.H{"novel_id": 3, "rating": 6}, http.StatusUnprocessableEntity},
		{"unknown novel", gin.H{"novel_id": 99, "rating": 4}, http.StatusUnprocessableEntity},
		{"missing rating", gin.H{"novel_id": 3}, http.StatusUnprocessableEntity},
		{"stats refresh failed", gin.H{"novel_id": 4, "rating": 5}, http.StatusInternalServerError},
		{"account deleted", gin.H{"novel_id": 5, "rating": 5}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/novel-ratings", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRatingHandler_RequiresUser(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 0)

	w := postJSON(r, "/api/novel-ratings", gin.H{"novel_id": 3, "rating": 4})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingHandler_MineListDelete(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 8)

	mockService.On("GetUserRating", mock.Anything, int64(8), int64(3)).Return(&dto.UserRatingResponse{Rating: 5}, nil)
	mockService.On("ListByNovel", mock.Anything, int64(3), 2, 5).Return(&dto.PaginatedRatingResponse{
		Data:       []dto.RatingResponse{{ID: 1, Rating: 5}},
		Pagination: dto.NewPagination(6, 2, 5),
	}, nil)
	mockService.On("Delete", mock.Anything, int64(8), int64(3)).Return(service.ErrRatingNotFound)

	w := get(r, "/api/novel-ratings/3/me")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":5`)

	w = get(r, "/api/novel-ratings/3?page=2&page_size=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_pages":2`)

	req, _ := http.NewRequest(http.MethodDelete, "/api/novel-ratings/3", nil)
	w = doRecord(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/api/novel-ratings/0")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
