package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/audit/infrastructure/persistence/models"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/repo"
)

const authLogFindQuery = `
	SELECT id, emp_id, event, ip, user_agent, created_at
	FROM auth_logs`

type PgAuthLogRepository struct{}

func NewAuthLogRepository() authlog.Repository {
	return &PgAuthLogRepository{}
}

func (r *PgAuthLogRepository) List(ctx context.Context, params *authlog.FindParams) ([]*authlog.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildAuthLogFilters(params)
	query := repo.Join(
		authLogFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY created_at DESC, id DESC",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*authlog.Entry
	for rows.Next() {
		var row models.AuthLog
		if err := rows.Scan(&row.ID, &row.EmpID, &row.Event, &row.IP, &row.UserAgent, &row.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, ToDomainAuthLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PgAuthLogRepository) Count(ctx context.Context, params *authlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := buildAuthLogFilters(params)
	query := repo.Join("SELECT COUNT(*) FROM auth_logs", repo.JoinWhere(where...))

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgAuthLogRepository) Create(ctx context.Context, entry *authlog.Entry) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbRow := ToDBAuthLog(entry)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	return tx.QueryRow(
		ctx,
		repo.Insert(
			"auth_logs",
			[]string{"emp_id", "event", "ip", "user_agent", "created_at"},
			"id", "created_at",
		),
		dbRow.EmpID,
		dbRow.Event,
		dbRow.IP,
		dbRow.UserAgent,
		dbRow.CreatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func buildAuthLogFilters(params *authlog.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}

	argPos := 1
	if params.EmpIDs != nil {
		where = append(where, fmt.Sprintf("emp_id = ANY($%d)", argPos))
		args = append(args, params.EmpIDs)
		argPos++
	}
	if event := strings.TrimSpace(params.Event); event != "" {
		where = append(where, fmt.Sprintf("event = $%d", argPos))
		args = append(args, event)
		argPos++
	}
	if params.From != nil && !params.From.IsZero() {
		where = append(where, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *params.From)
		argPos++
	}
	if params.To != nil && !params.To.IsZero() {
		where = append(where, fmt.Sprintf("created_at <= $%d", argPos))
		args = append(args, *params.To)
	}
	return where, args
}
