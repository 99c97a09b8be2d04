package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	enforceFn     func(role, resource, action string) (bool, error)
	permissionsFn func(role string) ([]PermissionResponse, error)
}

func (f *fakeService) Enforce(role, resource, action string) (bool, error) {
	if f.enforceFn != nil {
		return f.enforceFn(role, resource, action)
	}
	return false, nil
}

func (f *fakeService) PermissionsForRole(role string) ([]PermissionResponse, error) {
	if f.permissionsFn != nil {
		return f.permissionsFn(role)
	}
	return nil, nil
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(handler *Handler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	})
	router.POST("/rbac/enforce", handler.Enforce)
	router.GET("/rbac/permissions", handler.MyPermissions)
	return router
}

func TestHandler_Enforce(t *testing.T) {
	t.Run("success uses caller role", func(t *testing.T) {
		var gotRole string
		handler := NewHandler(&fakeService{enforceFn: func(role, resource, action string) (bool, error) {
			gotRole = role
			return resource == "leave" && action == "approve", nil
		}})

		body, _ := json.Marshal(map[string]string{"resource": "leave", "action": "approve"})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(handler, "HR").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp EnforceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
		assert.Equal(t, "HR", gotRole)
	})

	t.Run("negative missing action", func(t *testing.T) {
		handler := NewHandler(&fakeService{})

		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"leave"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(handler, "HR").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewHandler(&fakeService{permissionsFn: func(role string) ([]PermissionResponse, error) {
			return []PermissionResponse{{Resource: "leave", Action: "read"}}, nil
		}})

		w := httptest.NewRecorder()
		newRouter(handler, "EMPLOYEE").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp PermissionsResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "EMPLOYEE", resp.Role)
		assert.Len(t, resp.Permissions, 1)
	})

	t.Run("negative service error", func(t *testing.T) {
		handler := NewHandler(&fakeService{permissionsFn: func(role string) ([]PermissionResponse, error) {
			return nil, errors.New("boom")
		}})

		w := httptest.NewRecorder()
		newRouter(handler, "EMPLOYEE").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
