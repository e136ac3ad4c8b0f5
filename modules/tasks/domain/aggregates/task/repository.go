package task

import "context"

// FindParams restricts task listings. A nil AssigneeIDs means unrestricted;
// an empty non-nil slice matches nothing, which is how an empty view scope
// stays empty instead of leaking the whole table.
type FindParams struct {
	AssigneeIDs []string
	Limit       int
	Offset      int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, data Task) (Task, error)
	Update(ctx context.Context, data Task) (Task, error)
}
