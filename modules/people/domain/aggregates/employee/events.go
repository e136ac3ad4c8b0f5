package employee

type CreatedEvent struct {
	Result Employee
}

type UpdatedEvent struct {
	Result Employee
}
