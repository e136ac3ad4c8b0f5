package models

import "database/sql"

type Task struct {
	ID           string
	Name         string
	Description  sql.NullString
	Status       sql.NullString
	AssignedTo   sql.NullString
	AssignedBy   sql.NullString
	AssignedDate sql.NullString
	DueDate      sql.NullString
	Priority     sql.NullString
	Tags         sql.NullString
	Notes        sql.NullString
	CreatedDate  sql.NullString
	UpdatedDate  sql.NullString
	Duration     sql.NullString
}
