package mappers

import (
	"time"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/audit/presentation/viewmodels"
)

func AuthLogToViewModel(entry *authlog.Entry) *viewmodels.AuthLog {
	return &viewmodels.AuthLog{
		ID:        entry.ID,
		EmpID:     entry.EmpID,
		Event:     entry.Event,
		IP:        entry.IP,
		UserAgent: entry.UserAgent,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}

func AuthLogsToViewModels(entries []*authlog.Entry) []*viewmodels.AuthLog {
	out := make([]*viewmodels.AuthLog, len(entries))
	for i, entry := range entries {
		out[i] = AuthLogToViewModel(entry)
	}
	return out
}
