package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/models"
)

func TestRegisterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("NewAccountIs201", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("RegisterOrTouch", mock.Anything, "new@example.com", "New User").
			Return(&models.User{Email: "new@example.com", Role: models.RoleUser}, true, nil)

		router := gin.New()
		router.POST("/users", NewUserHandler(svc).Register)
		w := httptest.NewRecorder()
		body := `{"email":"new@example.com","displayName":"New User"}`
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("ExistingAccountIs200", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("RegisterOrTouch", mock.Anything, "old@example.com", "").
			Return(&models.User{Email: "old@example.com", Role: models.RoleAdmin}, false, nil)

		router := gin.New()
		router.POST("/users", NewUserHandler(svc).Register)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"old@example.com"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), models.RoleAdmin)
	})

	t.Run("MalformedEmailIs400", func(t *testing.T) {
		svc := new(mockUserService)
		router := gin.New()
		router.POST("/users", NewUserHandler(svc).Register)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"not-an-email"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RegisterOrTouch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetRoleHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsRole", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("GetRole", mock.Anything, "deco@example.com").Return(models.RoleDecorator, nil)

		router := gin.New()
		router.GET("/user/role", asCaller("deco@example.com"), NewUserHandler(svc).GetRole)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/role", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"role":"decorator"}`, w.Body.String())
	})

	t.Run("MissingContextEmailIs401", func(t *testing.T) {
		svc := new(mockUserService)
		router := gin.New()
		router.GET("/user/role", asCaller(""), NewUserHandler(svc).GetRole)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/role", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ForwardsFiltersAndPagination", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("ListUsers", mock.Anything, core.ListUsersParams{
			Role:           models.RoleDecorator,
			WorkStatus:     models.WorkStatusAvailable,
			RequesterEmail: "admin@example.com",
			Limit:          5,
			Skip:           10,
		}).Return([]*models.User{{Email: "a@example.com"}}, int64(11), nil)

		router := gin.New()
		router.GET("/users", asCaller("admin@example.com"), NewUserHandler(svc).ListUsers)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/users?role=decorator&work_status=available&limit=5&skip=10", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":11`)
		svc.AssertExpectations(t)
	})

	t.Run("GarbagePaginationFallsBackToDefaults", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("ListUsers", mock.Anything, core.ListUsersParams{RequesterEmail: "admin@example.com"}).
			Return([]*models.User{}, int64(0), nil)

		router := gin.New()
		router.GET("/users", asCaller("admin@example.com"), NewUserHandler(svc).ListUsers)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?limit=banana&skip=-3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"results":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidRoleFilterIs400", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("ListUsers", mock.Anything, mock.Anything).Return(nil, int64(0), core.ErrInvalidRole)

		router := gin.New()
		router.GET("/users", asCaller("admin@example.com"), NewUserHandler(svc).ListUsers)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?role=superadmin", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPromoteRoleHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Promotes", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("PromoteRole", mock.Anything, "admin@example.com", "deco@example.com", models.RoleDecorator).
			Return(&models.User{Email: "deco@example.com", Role: models.RoleDecorator}, nil)

		router := gin.New()
		router.PATCH("/user/:id/role", asCaller("admin@example.com"), NewUserHandler(svc).PromoteRole)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/user/deco@example.com/role",
			strings.NewReader(`{"role":"decorator"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownTargetIs404", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("PromoteRole", mock.Anything, "admin@example.com", "ghost@example.com", models.RoleAdmin).
			Return(nil, core.ErrUserNotFound)

		router := gin.New()
		router.PATCH("/user/:id/role", asCaller("admin@example.com"), NewUserHandler(svc).PromoteRole)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/user/ghost@example.com/role",
			strings.NewReader(`{"role":"admin"}`)))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
