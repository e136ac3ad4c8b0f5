package viewmodels

// Employee is the wire shape of a directory record. JSON keys mirror the
// storage columns because existing clients key on them.
type Employee struct {
	ID          uint   `json:"id"`
	EmpID       string `json:"emp_id"`
	Name        string `json:"emp_name"`
	Email       string `json:"emp_email"`
	Phone       string `json:"emp_phone"`
	Designation string `json:"emp_designation"`
	Department  string `json:"emp_department"`
	Hierarchy   string `json:"emp_hierarchy"`
	ManagerID   string `json:"manager_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
