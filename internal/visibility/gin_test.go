package visibility_test

import (
	"net/http/httptest"
	"testing"

	"go-hrms/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses scope set by middleware", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(visibility.ContextKey, visibility.Self("emp-9"))
		c.Set("role", "ADMIN")

		s := visibility.FromGin(c)
		assert.False(t, s.IsAll())
		assert.Equal(t, "emp-9", s.EmployeeID())
	})

	t.Run("falls back to role", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("role", "HR")

		assert.True(t, visibility.FromGin(c).IsAll())
	})
}

func TestPrincipalFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id_validated", "user-1")
	c.Set("employee_id", "emp-1")
	c.Set("role", "EMPLOYEE")

	p := visibility.PrincipalFromGin(c)

	assert.Equal(t, visibility.Principal{UserID: "user-1", EmployeeID: "emp-1", Role: "EMPLOYEE"}, p)
	assert.False(t, p.IsPrivileged())
	assert.Equal(t, "self:emp-1", p.Scope().String())
}
