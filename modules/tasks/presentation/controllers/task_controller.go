package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/presentation/mappers"
	"github.com/iota-uz/teamtrack/modules/tasks/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/configuration"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
	"github.com/iota-uz/teamtrack/pkg/middleware"
)

type TasksController struct {
	app   application.Application
	tasks *services.TaskService
}

func NewTasksController(app application.Application) application.Controller {
	return &TasksController{
		app:   app,
		tasks: app.Service(services.TaskService{}).(*services.TaskService),
	}
}

func (c *TasksController) Key() string {
	return "/tasks"
}

func (c *TasksController) Register(r *mux.Router) {
	router := r.PathPrefix("/tasks").Subrouter()
	router.Use(middleware.RequireAuthorization())
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	// Upload goes first so POST /tasks/upload never reaches the update route.
	router.HandleFunc("/upload", c.Upload).Methods(http.MethodPost)
	router.HandleFunc("/{task_id}", c.Update).Methods(http.MethodPut)
}

func (c *TasksController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &task.CreateDTO{}
	if !decodeJSON(w, r, dto) {
		return
	}
	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			firstValidationMessage(errs, "Name"))
		return
	}

	created, err := c.tasks.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusCreated, "Task created successfully",
		mappers.TaskToViewModel(created))
}

// List returns tasks assigned to anyone inside the caller's view. An optional
// ?user_id= re-roots the view on another employee; targets outside the
// caller's scope come back as an empty list rather than an error.
func (c *TasksController) List(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("user_id"))
	visible, err := c.tasks.VisibleTasks(r.Context(), u.EmpID(), target)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Tasks fetched successfully",
		mappers.TasksToViewModels(visible))
}

func (c *TasksController) Update(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["task_id"]

	dto := &task.UpdateDTO{}
	if !decodeJSON(w, r, dto) {
		return
	}
	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			firstValidationMessage(errs, "Name"))
		return
	}

	updated, err := c.tasks.Update(r.Context(), taskID, dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Task updated successfully",
		mappers.TaskToViewModel(updated))
}

func (c *TasksController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(configuration.Use().MaxUploadSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_FILE", "malformed multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(header.Filename, ".csv") {
		writeError(w, r, http.StatusBadRequest, "INVALID_FILE", "file must be a CSV")
		return
	}

	added, err := c.tasks.BulkImport(r.Context(), file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	composables.UseLogger(r.Context()).
		WithField("added", added).
		Info("task bulk upload processed")
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Bulk upload successful",
		map[string]int{"added": added})
}
