package models

import (
	"database/sql"
	"time"
)

type AuthLog struct {
	ID        uint
	EmpID     string
	Event     string
	IP        sql.NullString
	UserAgent sql.NullString
	CreatedAt time.Time
}
