package hierarchy

import "context"

// Member is the minimal employee view the engine needs.
type Member interface {
	EmpID() string
	Designation() string
}

// Directory is the read port over the employee store. FindByEmpID returns
// (nil, nil) when no employee matches. DirectReports returns the employees
// whose manager reference equals managerID, in no particular order.
type Directory interface {
	FindByEmpID(ctx context.Context, empID string) (Member, error)
	DirectReports(ctx context.Context, managerID string) ([]Member, error)
}

// Engine evaluates organizational rules over a Directory snapshot. All
// methods are decision/query functions without side effects; consistency of
// the underlying reads is the caller's concern.
type Engine struct {
	ranks RankTable
	dir   Directory
}

func NewEngine(ranks RankTable, dir Directory) *Engine {
	return &Engine{ranks: ranks, dir: dir}
}

// ValidateManager decides whether managerID may manage an employee holding
// employeeDesignation. employeeID identifies the employee being created or
// updated; when it equals managerID the self-management rule applies instead
// of the strict rank comparison.
func (e *Engine) ValidateManager(ctx context.Context, managerID, employeeDesignation, employeeID string) error {
	manager, err := e.dir.FindByEmpID(ctx, managerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return ErrManagerNotFound
	}

	managerRank := e.ranks.RankOf(manager.Designation())
	employeeRank := e.ranks.RankOf(employeeDesignation)

	if employeeID != "" && employeeID == managerID {
		if employeeRank >= RankSelfManaged {
			return nil
		}
		return &SelfManagementError{Designation: employeeDesignation, Rank: employeeRank}
	}

	if managerRank > employeeRank {
		return nil
	}
	return &InsufficientManagerRankError{
		ManagerDesignation:  manager.Designation(),
		ManagerRank:         managerRank,
		EmployeeDesignation: employeeDesignation,
		EmployeeRank:        employeeRank,
	}
}

// Subordinates returns the transitive closure of employees reporting to
// managerID, excluding managerID itself. The walk trusts the validator to
// have kept the manager graph acyclic; there is no cycle detection here.
func (e *Engine) Subordinates(ctx context.Context, managerID string) (Scope, error) {
	scope := NewScope()
	queue := []string{managerID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		reports, err := e.dir.DirectReports(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, report := range reports {
			id := report.EmpID()
			if id == managerID || scope.Contains(id) {
				continue
			}
			scope.Add(id)
			queue = append(queue, id)
		}
	}
	return scope, nil
}

// ViewScope computes the identities viewerID may observe. Unknown viewers
// see nothing, viewers below RankTeamScope see only themselves, everyone
// else sees themselves plus their full subordinate closure.
func (e *Engine) ViewScope(ctx context.Context, viewerID string) (Scope, error) {
	viewer, err := e.dir.FindByEmpID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return NewScope(), nil
	}

	scope := NewScope(viewerID)
	if e.ranks.RankOf(viewer.Designation()) < RankTeamScope {
		return scope, nil
	}

	subs, err := e.Subordinates(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for id := range subs {
		scope.Add(id)
	}
	return scope, nil
}

// CheckAssignable rejects task assignment to members at or above the
// managerial tier.
func (e *Engine) CheckAssignable(m Member) error {
	rank := e.ranks.RankOf(m.Designation())
	if rank < RankManagerial {
		return nil
	}
	return &NotAssignableError{EmpID: m.EmpID(), Designation: m.Designation(), Rank: rank}
}
