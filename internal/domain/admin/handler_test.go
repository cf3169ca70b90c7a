package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain/access"
	klog "hotelbooking/internal/pkg/logger"
)

func newTestRouter(t *testing.T, actor access.Actor) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(NewUserRepository(testDB(t)), klog.Nop())

	r := gin.New()
	admin := r.Group("/api/admin")
	admin.Use(func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("role", string(actor.Role))
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(admin)
	return r, svc
}

func request(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_UserLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, adminActor)

	w := request(t, r, http.MethodPost, "/api/admin/users", gin.H{
		"email": "staff@example.com", "password": "secret1", "role": "manager",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	var created struct {
		Data struct {
			User struct {
				ID int64 `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.User.ID

	w = request(t, r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id), gin.H{"full_name": "Staff"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"Staff"`)

	w = request(t, r, http.MethodGet, "/api/admin/users?role=manager", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@example.com")

	w = request(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Errors(t *testing.T) {
	r, _ := newTestRouter(t, adminActor)

	w := request(t, r, http.MethodPost, "/api/admin/users", gin.H{"email": "x@example.com", "password": "secret1", "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ROLE")

	w = request(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminActor.UserID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "SELF_MODIFICATION")

	w = request(t, r, http.MethodGet, "/api/admin/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
