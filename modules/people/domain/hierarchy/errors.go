package hierarchy

import (
	"fmt"

	"github.com/go-faster/errors"
)

var ErrManagerNotFound = errors.New("manager not found")

type InsufficientManagerRankError struct {
	ManagerDesignation  string
	ManagerRank         int
	EmployeeDesignation string
	EmployeeRank        int
}

func (e *InsufficientManagerRankError) Error() string {
	return fmt.Sprintf(
		"manager rank %d (%q) must exceed employee rank %d (%q)",
		e.ManagerRank, e.ManagerDesignation, e.EmployeeRank, e.EmployeeDesignation,
	)
}

type SelfManagementError struct {
	Designation string
	Rank        int
}

func (e *SelfManagementError) Error() string {
	return fmt.Sprintf(
		"self-management requires rank %d or above, designation %q ranks %d",
		RankSelfManaged, e.Designation, e.Rank,
	)
}

type NotAssignableError struct {
	EmpID       string
	Designation string
	Rank        int
}

func (e *NotAssignableError) Error() string {
	return fmt.Sprintf(
		"tasks cannot be assigned to %q: designation %q ranks %d, managerial tier starts at %d",
		e.EmpID, e.Designation, e.Rank, RankManagerial,
	)
}
