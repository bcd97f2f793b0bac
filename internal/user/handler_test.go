package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gym24/internal/adminsession"
	"gym24/internal/apperrors"
	"gym24/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) GetByID(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*User), args.Error(2)
}

func (m *MockService) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, adminID, userID string) error {
	return m.Called(ctx, adminID, userID).Error(0)
}

func (m *MockService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) SetAvatar(ctx context.Context, userID, url string) (*User, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) ClearAvatar(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func setupHandler(userID string) (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewHandler(svc)

	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.RefreshToken)
	me := router.Group("/me", func(c *gin.Context) {
		if userID != "" {
			c.Set(auth.ContextUserID, userID)
		}
	})
	me.GET("", h.GetMe)
	me.PUT("", h.UpdateMe)
	me.PUT("/avatar", h.SetAvatar)
	me.DELETE("/avatar", h.DeleteAvatar)

	admin := router.Group("/admin", func(c *gin.Context) {
		adminsession.SetAdmin(c, &adminsession.Admin{ID: "admin-1"})
	})
	admin.GET("/users", h.AdminList)
	admin.DELETE("/users", h.AdminDelete)

	return router, svc
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Register(t *testing.T) {
	router, svc := setupHandler("")
	req := RegisterRequest{FullName: "Dana", Email: "dana@example.com", Password: "password123"}
	svc.On("Register", mock.Anything, req).
		Return(&User{ID: memberID, Email: "dana@example.com", FullName: "Dana", PasswordHash: "secret-hash"}, "access", "refresh", nil)

	w := do(router, http.MethodPost, "/auth/register", `{"full_name":"Dana","email":"dana@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, memberID, resp.User.ID)
}

func TestHandler_Register_Invalid(t *testing.T) {
	router, svc := setupHandler("")

	w := do(router, http.MethodPost, "/auth/register", `{"full_name":"Dana","email":"not-an-email","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandler_Register_Conflict(t *testing.T) {
	router, svc := setupHandler("")
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, "", "", apperrors.NewConflictError("Email already registered"))

	w := do(router, http.MethodPost, "/auth/register", `{"full_name":"Dana","email":"dana@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestHandler_Login_Unauthorized(t *testing.T) {
	router, svc := setupHandler("")
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", "", apperrors.NewAuthenticationError("invalid email or password"))

	w := do(router, http.MethodPost, "/auth/login", `{"email":"dana@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestHandler_Refresh(t *testing.T) {
	router, svc := setupHandler("")
	svc.On("RefreshToken", mock.Anything, "refresh").Return("new-access", &User{ID: memberID}, nil)

	w := do(router, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")
}

func TestHandler_GetMe(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		router, _ := setupHandler("")
		w := do(router, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("member", func(t *testing.T) {
		router, svc := setupHandler(memberID)
		svc.On("GetByID", mock.Anything, memberID).Return(&User{ID: memberID, FullName: "Dana"}, nil)

		w := do(router, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dana")
	})
}

func TestHandler_AdminDelete(t *testing.T) {
	router, svc := setupHandler("")
	svc.On("Delete", mock.Anything, "admin-1", memberID).Return(nil)

	w := do(router, http.MethodDelete, "/admin/users", `{"id":"`+memberID+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_AdminList(t *testing.T) {
	router, svc := setupHandler("")
	svc.On("List", mock.Anything).Return([]User{{ID: memberID}}, nil)

	w := do(router, http.MethodGet, "/admin/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), memberID)
}

func TestHandler_UpdateMe(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		router, _ := setupHandler("")
		w := do(router, http.MethodPut, "/me", `{"full_name":"Dana"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("saves profile", func(t *testing.T) {
		router, svc := setupHandler(memberID)
		req := UpdateProfileRequest{
			FullName:            "Dana Levi",
			DateOfBirth:         "1990-04-12",
			FitnessGoal:         "Stress Relief",
			PreferredClassTypes: []string{"Yoga"},
		}
		svc.On("UpdateProfile", mock.Anything, memberID, req).
			Return(&User{ID: memberID, FullName: "Dana Levi", FitnessGoal: "Stress Relief"}, nil)

		w := do(router, http.MethodPut, "/me",
			`{"full_name":"Dana Levi","date_of_birth":"1990-04-12","fitness_goal":"Stress Relief","preferred_class_types":["Yoga"]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Stress Relief")
		svc.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		router, svc := setupHandler(memberID)

		w := do(router, http.MethodPut, "/me", `{"full_name":"Dana","date_of_birth":"12/04/1990"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"date_of_birth"`)
		svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		router, _ := setupHandler(memberID)

		w := do(router, http.MethodPut, "/me", `{"phone":"050"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"full_name"`)
	})
}

func TestHandler_Avatar(t *testing.T) {
	url := "https://cdn.example.com/a.png"

	t.Run("set", func(t *testing.T) {
		router, svc := setupHandler(memberID)
		svc.On("SetAvatar", mock.Anything, memberID, url).Return(&User{ID: memberID, AvatarURL: &url}, nil)

		w := do(router, http.MethodPut, "/me/avatar", `{"avatar_url":"`+url+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), url)
	})

	t.Run("not a url", func(t *testing.T) {
		router, svc := setupHandler(memberID)

		w := do(router, http.MethodPut, "/me/avatar", `{"avatar_url":"avatar.png"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SetAvatar", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clear", func(t *testing.T) {
		router, svc := setupHandler(memberID)
		svc.On("ClearAvatar", mock.Anything, memberID).Return(&User{ID: memberID}, nil)

		w := do(router, http.MethodDelete, "/me/avatar", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"avatar_url":null`)
	})
}
