package models

import (
	"database/sql"
	"time"
)

type Employee struct {
	ID          uint
	EmpID       string
	Name        string
	Email       string
	Phone       sql.NullString
	Designation sql.NullString
	Department  sql.NullString
	Hierarchy   sql.NullString
	ManagerID   sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
