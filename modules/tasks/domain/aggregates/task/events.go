package task

type CreatedEvent struct {
	Result Task
}

type UpdatedEvent struct {
	Result Task
}
