package employee

type CreateEmployeeRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"omitempty,oneof=ADMIN HR EMPLOYEE"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	DateOfJoining string `json:"date_of_joining"` // YYYY-MM-DD, default hari ini
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	Department    string `json:"department,omitempty"`
	Designation   string `json:"designation,omitempty"`
	DateOfJoining string `json:"date_of_joining"`
}

type EmployeeOptionResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
}
