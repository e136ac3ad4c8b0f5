package persistence

import (
	"database/sql"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/audit/infrastructure/persistence/models"
)

func ToDomainAuthLog(dbLog *models.AuthLog) *authlog.Entry {
	return &authlog.Entry{
		ID:        dbLog.ID,
		EmpID:     dbLog.EmpID,
		Event:     dbLog.Event,
		IP:        dbLog.IP.String,
		UserAgent: dbLog.UserAgent.String,
		CreatedAt: dbLog.CreatedAt,
	}
}

func ToDBAuthLog(entry *authlog.Entry) *models.AuthLog {
	return &models.AuthLog{
		ID:        entry.ID,
		EmpID:     entry.EmpID,
		Event:     entry.Event,
		IP:        nullString(entry.IP),
		UserAgent: nullString(entry.UserAgent),
		CreatedAt: entry.CreatedAt,
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
