package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/towet/payroll-processing-sys/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewService(zap.NewNop())
	assert.NoError(t, err)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"admin", "payroll", "create", true},
		{"admin", "anything", "whatever", true},
		{"employee", "employee", "read", true},
		{"employee", "employee", "list", false},
		{"employee", "payroll", "create", false},
		{"employee", "payroll", "history", true},
		{"employee", "tax", "preview", true},
		{"employee", "leave", "create", true},
		{"employee", "leave", "decide", false},
		{"employee", "attendance", "mark", true},
		{"employee", "attendance", "mark_absent", false},
		{"employee", "payslip", "read", true},
		{"employee", "tax_rate", "list", false},
		{"guest", "employee", "read", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, err := rbac.NewService(zap.NewNop())
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rbac/permissions", nil)
	c.Set("role", "admin")

	rbac.NewHandler(svc).MyPermissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Permissions []rbac.Permission `json:"permissions"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, []rbac.Permission{{Resource: "*", Action: "*"}}, env.Data.Permissions)
}
