package rbac

import "go-hrms/internal/visibility"

// Resources
const (
	ResourceAttendance = "attendance"
	ResourceLeave      = "leave"
	ResourcePayroll    = "payroll"
	ResourceEmployee   = "employee"
	ResourceSalary     = "salary"
)

// Actions
const (
	ActionSelf     = "self"
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionReadAll  = "read_all"
	ActionReadSelf = "read_self"
	ActionCancel   = "cancel"
	ActionApprove  = "approve"
	ActionExport   = "export"
	ActionWrite    = "write"
)

// DefaultPolicies are granted to the lowest role that needs them; higher
// roles inherit through RoleHierarchy.
var DefaultPolicies = [][]string{
	{visibility.RoleEmployee, ResourceAttendance, ActionSelf},
	{visibility.RoleEmployee, ResourceLeave, ActionCreate},
	{visibility.RoleEmployee, ResourceLeave, ActionRead},
	{visibility.RoleEmployee, ResourceLeave, ActionCancel},
	{visibility.RoleEmployee, ResourcePayroll, ActionRead},
	{visibility.RoleEmployee, ResourceEmployee, ActionReadSelf},

	{visibility.RoleHR, ResourceAttendance, ActionReadAll},
	{visibility.RoleHR, ResourceAttendance, ActionExport},
	{visibility.RoleHR, ResourceLeave, ActionApprove},
	{visibility.RoleHR, ResourceEmployee, ActionCreate},
	{visibility.RoleHR, ResourceEmployee, ActionRead},
	{visibility.RoleHR, ResourceSalary, ActionWrite},
	{visibility.RoleHR, ResourceSalary, ActionRead},
	{visibility.RoleHR, ResourcePayroll, ActionReadAll},
}

// RoleHierarchy pairs are (child inherits parent's permissions).
var RoleHierarchy = [][]string{
	{visibility.RoleAdmin, visibility.RoleHR},
	{visibility.RoleHR, visibility.RoleEmployee},
}
