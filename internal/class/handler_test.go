package class

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"gym24/internal/adminsession"
	"gym24/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupHandler() (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewHandler(svc)

	router := gin.New()
	router.GET("/classes", h.List)
	router.GET("/classes/:id", h.Get)

	admin := router.Group("/admin", func(c *gin.Context) {
		adminsession.SetAdmin(c, &adminsession.Admin{ID: adminID})
	})
	admin.POST("/classes", h.Create)
	admin.PUT("/classes", h.Update)
	admin.DELETE("/classes", h.Delete)

	return router, svc
}

func send(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_List(t *testing.T) {
	router, svc := setupHandler()
	svc.On("ListWithOccupancy", mock.Anything).Return([]ClassView{{Class: Class{ID: 1, Name: "Spin"}, Remaining: 3}}, nil)

	w := send(router, http.MethodGet, "/classes", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":3`)
}

func TestHandler_Get_InvalidID(t *testing.T) {
	router, _ := setupHandler()

	w := send(router, http.MethodGet, "/classes/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create_MissingFields(t *testing.T) {
	router, svc := setupHandler()
	svc.On("Create", mock.Anything, adminID, CreateClassRequest{Name: "Spin"}).
		Return(nil, apperrors.NewValidationError("name", "Missing required fields: name and schedule"))

	w := send(router, http.MethodPost, "/admin/classes", `{"name":"Spin"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields: name and schedule","field":"name"}`, w.Body.String())
}

func TestHandler_Update(t *testing.T) {
	router, svc := setupHandler()
	svc.On("Update", mock.Anything, adminID, int64(3), map[string]interface{}{"name": "HIIT"}).
		Return(&Class{ID: 3, Name: "HIIT"}, nil)

	w := send(router, http.MethodPut, "/admin/classes", `{"id":3,"name":"HIIT"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Update_MissingID(t *testing.T) {
	router, _ := setupHandler()

	w := send(router, http.MethodPut, "/admin/classes", `{"name":"HIIT"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	router, svc := setupHandler()
	svc.On("Delete", mock.Anything, adminID, int64(5)).Return(nil)

	w := send(router, http.MethodDelete, "/admin/classes", `{"id":5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestHandler_Delete_RemoteFailure(t *testing.T) {
	router, svc := setupHandler()
	svc.On("Delete", mock.Anything, adminID, int64(5)).
		Return(apperrors.NewRemoteStoreError("failed to delete class", assert.AnError))

	w := send(router, http.MethodDelete, "/admin/classes", `{"id":5}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), assert.AnError.Error())
}
