package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	peopleservices "github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/composables"
)

type AuditService struct {
	repo      authlog.Repository
	employees *peopleservices.EmployeeService
}

func NewAuditService(repo authlog.Repository, employees *peopleservices.EmployeeService) *AuditService {
	return &AuditService{
		repo:      repo,
		employees: employees,
	}
}

func (s *AuditService) RecordAuthEvent(ctx context.Context, entry *authlog.Entry) error {
	if entry == nil {
		return errors.New("auth log entry is required")
	}
	return s.repo.Create(ctx, entry)
}

// VisibleAuthEvents lists auth trail entries for everyone inside the
// caller's view, optionally rooted at targetID, and reports the unpaginated
// total. A target outside the caller's view scope yields an empty result
// rather than an error. The EmpIDs restriction in params is overwritten by
// the computed scope; Event, From, To, Limit and Offset pass through.
func (s *AuditService) VisibleAuthEvents(ctx context.Context, callerID, targetID string, params *authlog.FindParams) ([]*authlog.Entry, int64, error) {
	if params == nil {
		params = &authlog.FindParams{}
	}

	type page struct {
		entries []*authlog.Entry
		total   int64
	}
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		engine := s.employees.Engine()

		callerScope, err := engine.ViewScope(txCtx, callerID)
		if err != nil {
			return page{}, err
		}

		targetRoot := targetID
		if targetRoot == "" {
			targetRoot = callerID
		}
		if !callerScope.Contains(targetRoot) {
			return page{entries: []*authlog.Entry{}}, nil
		}

		displayScope, err := engine.ViewScope(txCtx, targetRoot)
		if err != nil {
			return page{}, err
		}
		params.EmpIDs = displayScope.IDs()

		entries, err := s.repo.List(txCtx, params)
		if err != nil {
			return page{}, err
		}
		total, err := s.repo.Count(txCtx, params)
		if err != nil {
			return page{}, err
		}
		return page{entries: entries, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out.entries, out.total, nil
}
