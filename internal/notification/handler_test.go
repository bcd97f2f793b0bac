package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym24/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandler_Cleanup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now()
	repo := new(MockRepository)
	repo.On("CountOlderThan", mock.Anything, mock.Anything).Return(int64(3), nil)
	repo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(3), nil)

	router := gin.New()
	router.POST("/notifications/cleanup", NewHandler(newFixedService(repo, now)).Cleanup)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/cleanup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":3,"message":"Notifications cleaned up successfully"}`, w.Body.String())
}

func TestHandler_MarkAllRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(MockRepository)
	repo.On("MarkAllRead", mock.Anything, recipient).Return(int64(4), nil)

	router := gin.New()
	router.POST("/notifications/read-all", func(c *gin.Context) {
		c.Set(auth.ContextUserID, recipient)
	}, NewHandler(NewService(repo, time.Hour)).MarkAllRead)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":4}`, w.Body.String())
}

func TestHandler_List_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/notifications", NewHandler(NewService(new(MockRepository), time.Hour)).List)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil).WithContext(context.Background()))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
