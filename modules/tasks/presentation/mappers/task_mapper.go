package mappers

import (
	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/presentation/viewmodels"
)

func TaskToViewModel(entity task.Task) *viewmodels.Task {
	return &viewmodels.Task{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Description:  entity.Description(),
		Status:       entity.Status(),
		AssignedTo:   entity.AssignedTo(),
		AssignedBy:   entity.AssignedBy(),
		AssignedDate: entity.AssignedDate(),
		DueDate:      entity.DueDate(),
		Priority:     entity.Priority(),
		Tags:         entity.Tags(),
		Notes:        entity.Notes(),
		CreatedDate:  entity.CreatedDate(),
		UpdatedDate:  entity.UpdatedDate(),
		Duration:     entity.Duration(),
	}
}

func TasksToViewModels(entities []task.Task) []*viewmodels.Task {
	out := make([]*viewmodels.Task, len(entities))
	for i, entity := range entities {
		out[i] = TaskToViewModel(entity)
	}
	return out
}
