package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/api/metrics"
	"github.com/trackhub/project-manager/internal/core/ports"
)

// TaskHandler handles HTTP requests for tasks nested under a project.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /api/projects/:projectID/tasks.
//
// @Summary      Add a task to a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectID  path      string             true  "Project id"
// @Param        body       body      createTaskRequest  true  "Task details"
// @Success      201        {object}  taskResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /projects/{projectID}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Create(c.Request().Context(), actor, c.Param("projectID"), ports.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(*task))
}

// Get handles GET /api/projects/:projectID/tasks/:taskID.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectID  path      string  true  "Project id"
// @Param        taskID     path      string  true  "Task id"
// @Success      200        {object}  taskResponse
// @Failure      404        {object}  map[string]string
// @Router       /projects/{projectID}/tasks/{taskID} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), actor, c.Param("projectID"), c.Param("taskID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// List handles GET /api/projects/:projectID/tasks.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectID      path      string  true   "Project id"
// @Param        sort_by        query     string  false  "title_asc or title_desc"
// @Param        issued_after   query     string  false  "Exclusive lower bound (RFC 3339)"
// @Param        issued_before  query     string  false  "Exclusive upper bound (RFC 3339)"
// @Param        completed      query     bool    false  "Filter by completion"
// @Success      200  {array}   taskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /projects/{projectID}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	q, err := parseListQuery(c)
	if err != nil {
		return err
	}

	filter := ports.TaskListFilter{
		SortBy:       q.SortBy,
		IssuedAfter:  q.IssuedAfter,
		IssuedBefore: q.IssuedBefore,
	}
	if raw := c.QueryParam("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "completed must be a boolean")
		}
		filter.Completed = &completed
	}

	tasks, err := h.tasks.List(c.Request().Context(), actor, c.Param("projectID"), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Update handles PUT /api/projects/:projectID/tasks/:taskID.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectID  path      string             true  "Project id"
// @Param        taskID     path      string             true  "Task id"
// @Param        body       body      updateTaskRequest  true  "New content"
// @Success      200        {object}  taskResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /projects/{projectID}/tasks/{taskID} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Update(c.Request().Context(), actor, c.Param("projectID"), c.Param("taskID"), ports.TaskUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// Delete handles DELETE /api/projects/:projectID/tasks/:taskID.
//
// @Summary      Soft-delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        projectID  path  string  true  "Project id"
// @Param        taskID     path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /projects/{projectID}/tasks/{taskID} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), actor, c.Param("projectID"), c.Param("taskID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Complete handles POST /api/projects/:projectID/tasks/:taskID/complete.
//
// @Summary      Mark a task completed
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectID  path      string  true  "Project id"
// @Param        taskID     path      string  true  "Task id"
// @Success      200        {object}  taskResponse
// @Failure      404        {object}  map[string]string
// @Router       /projects/{projectID}/tasks/{taskID}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Complete(c.Request().Context(), actor, c.Param("projectID"), c.Param("taskID"))
	if err != nil {
		return err
	}

	metrics.TasksCompletedTotal.Inc()
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}
