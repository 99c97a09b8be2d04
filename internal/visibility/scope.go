// Package visibility resolves, once per request, which employees' rows a
// caller may read.
package visibility

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

type Scope struct {
	all        bool
	employeeID string
}

// All sees every employee.
func All() Scope {
	return Scope{all: true}
}

// Self sees only employeeID. An empty id sees nothing.
func Self(employeeID string) Scope {
	return Scope{employeeID: employeeID}
}

func IsPrivileged(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case RoleAdmin, RoleHR:
		return true
	default:
		return false
	}
}

func ForRole(role, employeeID string) Scope {
	if IsPrivileged(role) {
		return All()
	}
	return Self(employeeID)
}

func (s Scope) IsAll() bool {
	return s.all
}

func (s Scope) EmployeeID() string {
	return s.employeeID
}

// HasProfile is false for a Self scope whose caller has no employee profile.
func (s Scope) HasProfile() bool {
	return s.all || s.employeeID != ""
}

func (s Scope) Permits(employeeID string) bool {
	if s.all {
		return true
	}
	return s.employeeID != "" && s.employeeID == employeeID
}

// Apply is a gorm scope that filters column by the visible employee.
func (s Scope) Apply(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.all {
			return db
		}
		if s.employeeID == "" {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", s.employeeID)
	}
}

func (s Scope) String() string {
	if s.all {
		return "all"
	}
	return "self:" + s.employeeID
}
