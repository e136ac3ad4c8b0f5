package viewmodels

type AuthLog struct {
	ID        uint   `json:"id"`
	EmpID     string `json:"emp_id"`
	Event     string `json:"event"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	CreatedAt string `json:"created_at"`
}
