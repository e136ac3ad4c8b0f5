package hierarchy

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

type fixtureMember struct {
	empID       string
	designation string
	managerID   string
}

func (m fixtureMember) EmpID() string       { return m.empID }
func (m fixtureMember) Designation() string { return m.designation }

type fixtureDirectory struct {
	members []fixtureMember
	err     error
}

func (d *fixtureDirectory) FindByEmpID(_ context.Context, empID string) (Member, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, m := range d.members {
		if m.empID == empID {
			return m, nil
		}
	}
	return nil, nil
}

func (d *fixtureDirectory) DirectReports(_ context.Context, managerID string) ([]Member, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []Member
	for _, m := range d.members {
		if m.managerID == managerID {
			out = append(out, m)
		}
	}
	return out, nil
}

// orgChart is the Owner→EM→L2→L1 tree from the org ladder, with a couple of
// leaf engineers under L2's team lead.
func orgChart() *fixtureDirectory {
	return &fixtureDirectory{members: []fixtureMember{
		{empID: "owner1", designation: "OWNER"},
		{empID: "em1", designation: "EM", managerID: "owner1"},
		{empID: "l2a", designation: "L2", managerID: "em1"},
		{empID: "l1a", designation: "L1", managerID: "l2a"},
		{empID: "se1a", designation: "SE1", managerID: "l1a"},
		{empID: "sse1", designation: "SSE", managerID: "l1a"},
	}}
}

func newTestEngine(dir Directory) *Engine {
	return NewEngine(DefaultRankTable(), dir)
}

func TestEngine_ValidateManager(t *testing.T) {
	engine := newTestEngine(orgChart())
	ctx := context.Background()

	t.Run("manager not found", func(t *testing.T) {
		err := engine.ValidateManager(ctx, "ghost", "SE1", "se1a")
		require.ErrorIs(t, err, ErrManagerNotFound)
	})

	t.Run("strictly higher manager rank passes", func(t *testing.T) {
		require.NoError(t, engine.ValidateManager(ctx, "em1", "L2", "newhire"))
		require.NoError(t, engine.ValidateManager(ctx, "l2a", "SE1", "newhire"))
	})

	t.Run("equal rank fails with both sides reported", func(t *testing.T) {
		err := engine.ValidateManager(ctx, "l2a", "L2", "newhire")

		var rankErr *InsufficientManagerRankError
		require.ErrorAs(t, err, &rankErr)
		require.Equal(t, "L2", rankErr.ManagerDesignation)
		require.Equal(t, 3, rankErr.ManagerRank)
		require.Equal(t, "L2", rankErr.EmployeeDesignation)
		require.Equal(t, 3, rankErr.EmployeeRank)
	})

	t.Run("lower manager rank fails", func(t *testing.T) {
		err := engine.ValidateManager(ctx, "l1a", "EM", "newhire")

		var rankErr *InsufficientManagerRankError
		require.ErrorAs(t, err, &rankErr)
		require.Equal(t, 2, rankErr.ManagerRank)
		require.Equal(t, 4, rankErr.EmployeeRank)
	})

	t.Run("self-management allowed at rank five and above", func(t *testing.T) {
		dir := &fixtureDirectory{members: []fixtureMember{
			{empID: "cto1", designation: "CTO", managerID: "cto1"},
		}}
		engine := newTestEngine(dir)

		require.NoError(t, engine.ValidateManager(ctx, "cto1", "CTO", "cto1"))
	})

	t.Run("self-management refused below rank five", func(t *testing.T) {
		err := engine.ValidateManager(ctx, "em1", "EM", "em1")

		var selfErr *SelfManagementError
		require.ErrorAs(t, err, &selfErr)
		require.Equal(t, "EM", selfErr.Designation)
		require.Equal(t, 4, selfErr.Rank)
	})

	t.Run("directory errors surface unchanged", func(t *testing.T) {
		boom := errors.New("directory down")
		engine := newTestEngine(&fixtureDirectory{err: boom})

		require.ErrorIs(t, engine.ValidateManager(ctx, "owner1", "SE1", "x"), boom)
	})
}

func TestEngine_Subordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("transitive closure excludes the root", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.Subordinates(ctx, "owner1")
		require.NoError(t, err)
		require.Equal(t, []string{"em1", "l1a", "l2a", "se1a", "sse1"}, scope.IDs())
		require.False(t, scope.Contains("owner1"))
	})

	t.Run("mid-tree closure", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.Subordinates(ctx, "l2a")
		require.NoError(t, err)
		require.Equal(t, []string{"l1a", "se1a", "sse1"}, scope.IDs())
	})

	t.Run("leaf has no subordinates", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.Subordinates(ctx, "se1a")
		require.NoError(t, err)
		require.Equal(t, 0, scope.Len())
	})

	t.Run("invariant to stored order", func(t *testing.T) {
		chart := orgChart()
		reversed := &fixtureDirectory{members: make([]fixtureMember, len(chart.members))}
		for i, m := range chart.members {
			reversed.members[len(chart.members)-1-i] = m
		}

		forward, err := newTestEngine(chart).Subordinates(ctx, "owner1")
		require.NoError(t, err)
		backward, err := newTestEngine(reversed).Subordinates(ctx, "owner1")
		require.NoError(t, err)

		require.Equal(t, forward.IDs(), backward.IDs())
	})

	t.Run("self-managed root is not its own subordinate", func(t *testing.T) {
		dir := &fixtureDirectory{members: []fixtureMember{
			{empID: "cto1", designation: "CTO", managerID: "cto1"},
			{empID: "em1", designation: "EM", managerID: "cto1"},
		}}
		engine := newTestEngine(dir)

		scope, err := engine.Subordinates(ctx, "cto1")
		require.NoError(t, err)
		require.Equal(t, []string{"em1"}, scope.IDs())
	})
}

func TestEngine_ViewScope(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown viewer sees nothing", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.ViewScope(ctx, "ghost")
		require.NoError(t, err)
		require.Equal(t, 0, scope.Len())
	})

	t.Run("below team scope sees only self", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.ViewScope(ctx, "se1a")
		require.NoError(t, err)
		require.Equal(t, []string{"se1a"}, scope.IDs())
	})

	t.Run("at team scope sees self plus closure", func(t *testing.T) {
		engine := newTestEngine(orgChart())

		scope, err := engine.ViewScope(ctx, "l1a")
		require.NoError(t, err)
		require.Equal(t, []string{"l1a", "se1a", "sse1"}, scope.IDs())

		scope, err = engine.ViewScope(ctx, "owner1")
		require.NoError(t, err)
		require.Equal(t, []string{"em1", "l1a", "l2a", "owner1", "se1a", "sse1"}, scope.IDs())
	})
}

func TestEngine_CheckAssignable(t *testing.T) {
	engine := newTestEngine(orgChart())

	t.Run("managerial tier and above refused", func(t *testing.T) {
		for _, designation := range []string{"EM", "CTO", "ADMIN", "SUPERADMIN", "OWNER"} {
			err := engine.CheckAssignable(fixtureMember{empID: "m1", designation: designation})

			var assignErr *NotAssignableError
			require.ErrorAs(t, err, &assignErr, "designation %s", designation)
			require.Equal(t, designation, assignErr.Designation)
			require.GreaterOrEqual(t, assignErr.Rank, RankManagerial)
		}
	})

	t.Run("below managerial tier allowed", func(t *testing.T) {
		for _, designation := range []string{"SE1", "SE2", "SSE", "TL", "L1", "L2", "", "consultant"} {
			require.NoError(t, engine.CheckAssignable(fixtureMember{empID: "e1", designation: designation}), "designation %q", designation)
		}
	})
}

// Mirrors the org bootstrap flow: an owner signs off a self-managed CTO, the
// CTO hires an EM, the EM hires an L2, and task assignment is only legal
// below the managerial tier.
func TestEngine_OrgBootstrapFlow(t *testing.T) {
	ctx := context.Background()
	dir := &fixtureDirectory{members: []fixtureMember{
		{empID: "o1", designation: "OWNER"},
	}}
	engine := newTestEngine(dir)

	require.NoError(t, engine.ValidateManager(ctx, "o1", "CTO", "cto1"))
	dir.members = append(dir.members, fixtureMember{empID: "cto1", designation: "CTO", managerID: "cto1"})
	require.NoError(t, engine.ValidateManager(ctx, "cto1", "CTO", "cto1"))

	require.NoError(t, engine.ValidateManager(ctx, "cto1", "EM", "em1"))
	dir.members = append(dir.members, fixtureMember{empID: "em1", designation: "EM", managerID: "cto1"})

	require.NoError(t, engine.ValidateManager(ctx, "em1", "L2", "l2a"))
	dir.members = append(dir.members, fixtureMember{empID: "l2a", designation: "L2", managerID: "em1"})

	em, err := dir.FindByEmpID(ctx, "em1")
	require.NoError(t, err)
	var assignErr *NotAssignableError
	require.ErrorAs(t, engine.CheckAssignable(em), &assignErr)

	l2, err := dir.FindByEmpID(ctx, "l2a")
	require.NoError(t, err)
	require.NoError(t, engine.CheckAssignable(l2))

	scope, err := engine.ViewScope(ctx, "l2a")
	require.NoError(t, err)
	require.Equal(t, []string{"l2a"}, scope.IDs())
}
