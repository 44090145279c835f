package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/model"
)

func userRouter(users UserStore) *gin.Engine {
	h := NewUserHandler(testLogger(), users)
	r := gin.New()
	r.POST("/api/create-user", h.CreateUser)
	r.PUT("/api/edit-user/:id", h.EditUser)
	r.DELETE("/api/delete-user/:id", h.DeleteUser)
	return r
}

func TestCreateUser_Success(t *testing.T) {
	var stored *model.User
	users := &stubUserStore{
		create: func(_ context.Context, user *model.User) error {
			user.ID = 7
			stored = user
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-user",
		strings.NewReader(`{"username":"alice","password":"pw","tasks":"scrape courts"}`))
	userRouter(users).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User created successfully"}`, w.Body.String())

	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "scrape courts", stored.Tasks)

	// the raw password never reaches storage
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")))
}

func TestCreateUser_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"username":"alice"}`},
		{name: "missing username", body: `{"password":"pw"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserStore{
				create: func(context.Context, *model.User) error {
					t.Fatal("store must not be called")
					return nil
				},
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/create-user", strings.NewReader(tt.body))
			userRouter(users).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Username and password are required"}`, w.Body.String())
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	users := &stubUserStore{
		create: func(context.Context, *model.User) error {
			return domain.ErrDuplicateUsername
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-user",
		strings.NewReader(`{"username":"alice","password":"pw"}`))
	userRouter(users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, w.Body.String())
}

func TestEditUser_Success(t *testing.T) {
	var gotID int64
	var gotTasks string
	users := &stubUserStore{
		updateTasks: func(_ context.Context, id int64, tasks string) error {
			gotID = id
			gotTasks = tasks
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/edit-user/42",
		strings.NewReader(`{"tasks":"probate notices"}`))
	userRouter(users).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User updated successfully"}`, w.Body.String())
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, "probate notices", gotTasks)
}

func TestEditUser_NotFound(t *testing.T) {
	users := &stubUserStore{
		updateTasks: func(context.Context, int64, string) error {
			return domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/edit-user/999",
		strings.NewReader(`{"tasks":""}`))
	userRouter(users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestEditUser_NonNumericID(t *testing.T) {
	users := &stubUserStore{
		updateTasks: func(context.Context, int64, string) error {
			t.Fatal("store must not be called")
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/edit-user/abc",
		strings.NewReader(`{"tasks":""}`))
	userRouter(users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	var gotID int64
	users := &stubUserStore{
		delete: func(_ context.Context, id int64) error {
			gotID = id
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/delete-user/42", nil)
	userRouter(users).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, w.Body.String())
	assert.Equal(t, int64(42), gotID)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := &stubUserStore{
		delete: func(context.Context, int64) error {
			return domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/delete-user/999", nil)
	userRouter(users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}
