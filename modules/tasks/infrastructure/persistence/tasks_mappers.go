package persistence

import (
	"database/sql"

	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/infrastructure/persistence/models"
)

func ToDomainTask(dbTask *models.Task) task.Task {
	return task.New(
		dbTask.ID,
		dbTask.Name,
		task.WithDescription(dbTask.Description.String),
		task.WithStatus(dbTask.Status.String),
		task.WithAssignedTo(dbTask.AssignedTo.String),
		task.WithAssignedBy(dbTask.AssignedBy.String),
		task.WithAssignedDate(dbTask.AssignedDate.String),
		task.WithDueDate(dbTask.DueDate.String),
		task.WithPriority(dbTask.Priority.String),
		task.WithTags(dbTask.Tags.String),
		task.WithNotes(dbTask.Notes.String),
		task.WithCreatedDate(dbTask.CreatedDate.String),
		task.WithUpdatedDate(dbTask.UpdatedDate.String),
		task.WithDuration(dbTask.Duration.String),
	)
}

func ToDBTask(entity task.Task) *models.Task {
	return &models.Task{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Description:  nullString(entity.Description()),
		Status:       nullString(entity.Status()),
		AssignedTo:   nullString(entity.AssignedTo()),
		AssignedBy:   nullString(entity.AssignedBy()),
		AssignedDate: nullString(entity.AssignedDate()),
		DueDate:      nullString(entity.DueDate()),
		Priority:     nullString(entity.Priority()),
		Tags:         nullString(entity.Tags()),
		Notes:        nullString(entity.Notes()),
		CreatedDate:  nullString(entity.CreatedDate()),
		UpdatedDate:  nullString(entity.UpdatedDate()),
		Duration:     nullString(entity.Duration()),
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
