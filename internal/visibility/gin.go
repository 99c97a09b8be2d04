package visibility

import "github.com/gin-gonic/gin"

const ContextKey = "visibility_scope"

// FromGin returns the scope resolved by the auth middleware. Requests that
// bypassed it fall back to the role and employee id on the context.
func FromGin(c *gin.Context) Scope {
	if v, ok := c.Get(ContextKey); ok {
		if scope, ok := v.(Scope); ok {
			return scope
		}
	}
	return ForRole(c.GetString("role"), c.GetString("employee_id"))
}

// Principal is the verified caller of a request.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       string
}

func (p Principal) Scope() Scope {
	return ForRole(p.Role, p.EmployeeID)
}

func (p Principal) IsPrivileged() bool {
	return IsPrivileged(p.Role)
}

// PrincipalFromGin reads the caller placed on the context by the auth middleware.
func PrincipalFromGin(c *gin.Context) Principal {
	return Principal{
		UserID:     c.GetString("user_id_validated"),
		EmployeeID: c.GetString("employee_id"),
		Role:       c.GetString("role"),
	}
}
