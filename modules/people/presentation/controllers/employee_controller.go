package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/presentation/mappers"
	"github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/configuration"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
	"github.com/iota-uz/teamtrack/pkg/middleware"
)

type EmployeesController struct {
	app       application.Application
	employees *services.EmployeeService
}

func NewEmployeesController(app application.Application) application.Controller {
	return &EmployeesController{
		app:       app,
		employees: app.Service(services.EmployeeService{}).(*services.EmployeeService),
	}
}

func (c *EmployeesController) Key() string {
	return "/user"
}

func (c *EmployeesController) Register(r *mux.Router) {
	// Registration and bulk import stay open: the original system seeds its
	// directory through these before anyone can log in.
	r.HandleFunc("/user", c.Create).Methods(http.MethodPost)
	r.HandleFunc("/users/upload", c.Upload).Methods(http.MethodPost)

	authRouter := r.PathPrefix("/user").Subrouter()
	authRouter.Use(middleware.RequireAuthorization())
	authRouter.HandleFunc("", c.List).Methods(http.MethodGet)
	authRouter.HandleFunc("/{emp_id}", c.Update).Methods(http.MethodPut)
}

func (c *EmployeesController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &employee.CreateDTO{}
	if !decodeJSON(w, r, dto) {
		return
	}
	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			firstValidationMessage(errs, "EmpID", "Name", "Email"))
		return
	}

	created, err := c.employees.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusCreated, "User created successfully",
		mappers.EmployeeToViewModel(created))
}

// List returns the directory slice the caller may see. An optional ?user_id=
// re-roots the view on another employee; targets outside the caller's scope
// come back as an empty list rather than an error.
func (c *EmployeesController) List(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("user_id"))
	visible, err := c.employees.VisibleEmployees(r.Context(), u.EmpID(), target)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Users fetched successfully",
		mappers.EmployeesToViewModels(visible))
}

func (c *EmployeesController) Update(w http.ResponseWriter, r *http.Request) {
	empID := mux.Vars(r)["emp_id"]

	dto := &employee.UpdateDTO{}
	if !decodeJSON(w, r, dto) {
		return
	}
	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			firstValidationMessage(errs, "Email"))
		return
	}

	updated, err := c.employees.Update(r.Context(), empID, dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "User updated successfully",
		mappers.EmployeeToViewModel(updated))
}

func (c *EmployeesController) Upload(w http.ResponseWriter, r *http.Request) {
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

	summary, err := c.employees.ImportCSV(r.Context(), file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	composables.UseLogger(r.Context()).
		WithField("added", summary.Added).
		WithField("skipped", summary.Skipped).
		Info("employee bulk upload processed")
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Bulk upload complete", summary)
}
