package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doit/internal/model"
	"doit/internal/repository"
	"doit/internal/validation"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
	listRepo repository.ListRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, listRepo repository.ListRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, listRepo: listRepo}
}

// Tasks shows the tasks of one list, important ones first, together
// with the minutes still needed to finish the undone ones.
func (h *TaskHandler) Tasks(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwnedList(c, userID, c.Param("id"))
	if list == nil {
		return
	}

	tasks, err := h.taskRepo.GetByListID(c.Request.Context(), list.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	total := 0
	for _, task := range tasks {
		total += task.RemainingMinutes()
	}

	c.HTML(http.StatusOK, "list_tasks.html", gin.H{
		"user":             username,
		"list":             list,
		"list_of_task":     tasks,
		"time_finish_list": total,
		"notifications":    takeFlashes(c),
	})
}

func (h *TaskHandler) NewForm(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwnedList(c, userID, c.Param("id"))
	if list == nil {
		return
	}

	h.renderTaskForm(c, list, &model.Task{}, "Adding a new task to the list", "/lists/"+list.ID.String()+"/tasks/new", "")
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwnedList(c, userID, c.Param("id"))
	if list == nil {
		return
	}

	task := &model.Task{ID: uuid.New(), ListID: list.ID}
	if msg := overlayTaskForm(c, task); msg != "" {
		h.renderTaskForm(c, list, task, "Adding a new task to the list",
			"/lists/"+list.ID.String()+"/tasks/new", msg)
		return
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "Task "+task.Name+" created successfully")
	c.Redirect(http.StatusFound, "/lists/"+list.ID.String())
}

func (h *TaskHandler) Detail(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	task, _ := h.loadOwnedTask(c, userID)
	if task == nil {
		return
	}

	c.HTML(http.StatusOK, "task_details.html", gin.H{"task": task})
}

func (h *TaskHandler) EditForm(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	task, list := h.loadOwnedTask(c, userID)
	if task == nil {
		return
	}

	h.renderTaskForm(c, list, task, "Editing task of "+list.Name,
		"/tasks/"+task.ID.String()+"/edit", "")
}

// Edit overlays the submitted fields on the stored task. Fields absent
// from the payload keep their stored values.
func (h *TaskHandler) Edit(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	task, list := h.loadOwnedTask(c, userID)
	if task == nil {
		return
	}

	if msg := overlayTaskForm(c, task); msg != "" {
		h.renderTaskForm(c, list, task, "Editing task of "+list.Name,
			"/tasks/"+task.ID.String()+"/edit", msg)
		return
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "Task "+task.Name+" edited")
	c.Redirect(http.StatusFound, "/lists/"+task.ListID.String())
}

func (h *TaskHandler) DeleteConfirm(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	task, _ := h.loadOwnedTask(c, userID)
	if task == nil {
		return
	}

	c.HTML(http.StatusOK, "task_confirm_delete.html", gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	task, _ := h.loadOwnedTask(c, userID)
	if task == nil {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), task.ID); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "Task "+task.Name+" deleted successfully")
	c.Redirect(http.StatusFound, "/lists/"+task.ListID.String())
}

func (h *TaskHandler) loadOwnedList(c *gin.Context, userID uuid.UUID, rawID string) *model.List {
	listID, err := uuid.Parse(rawID)
	if err != nil {
		renderNotFound(c)
		return nil
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil
	}
	if list == nil || list.UserID != userID {
		renderNotFound(c)
		return nil
	}
	return list
}

// loadOwnedTask resolves the task in the path and its parent list,
// enforcing ownership through the list.
func (h *TaskHandler) loadOwnedTask(c *gin.Context, userID uuid.UUID) (*model.Task, *model.List) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return nil, nil
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			renderNotFound(c)
			return nil, nil
		}
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil, nil
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), task.ListID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil, nil
	}
	if list == nil || list.UserID != userID {
		renderNotFound(c)
		return nil, nil
	}
	return task, list
}

func (h *TaskHandler) renderTaskForm(c *gin.Context, list *model.List, task *model.Task, title, action, errMsg string) {
	data := gin.H{
		"page_title":    title,
		"action":        action,
		"list":          list,
		"error":         errMsg,
		"name":          task.Name,
		"description":   task.Description,
		"is_done":       task.Done(),
		"is_important":  task.Important(),
		"start_date":    "",
		"end_date":      "",
		"time_it_takes": "",
	}
	if task.StartDate != nil {
		data["start_date"] = task.StartDate.Format("2006-01-02")
	}
	if task.EndDate != nil {
		data["end_date"] = task.EndDate.Format("2006-01-02")
	}
	if task.TimeItTakes != nil {
		data["time_it_takes"] = *task.TimeItTakes
	}
	c.HTML(http.StatusOK, "task_form.html", data)
}

// overlayTaskForm applies the submitted form fields onto the task and
// returns a validation message, or "" when the payload is acceptable.
// Only fields present in the payload are touched.
func overlayTaskForm(c *gin.Context, task *model.Task) string {
	if name, present := c.GetPostForm("name"); present || task.Name == "" {
		name = strings.TrimSpace(name)
		if name == "" {
			return validation.MsgFieldRequired
		}
		task.Name = name
	}

	if description, present := c.GetPostForm("description"); present {
		task.Description = description
	}
	// The form pairs each checkbox with a hidden "no" sentinel so the
	// key arrives even when unchecked; a checked box submits both values.
	if values, present := c.GetPostFormArray("is_done"); present {
		done := anyChecked(values)
		task.IsDone = &done
	}
	if values, present := c.GetPostFormArray("is_important"); present {
		important := anyChecked(values)
		task.IsImportant = &important
	}

	if raw, present := c.GetPostForm("start_date"); present {
		if raw == "" {
			task.StartDate = nil
		} else {
			date, err := parseDate(raw)
			if err != nil {
				return "Enter a valid date."
			}
			task.StartDate = date
		}
	}
	if raw, present := c.GetPostForm("end_date"); present {
		if raw == "" {
			task.EndDate = nil
		} else {
			date, err := parseDate(raw)
			if err != nil {
				return "Enter a valid date."
			}
			task.EndDate = date
		}
	}

	if raw, present := c.GetPostForm("time_it_takes"); present {
		if raw == "" {
			task.TimeItTakes = nil
		} else {
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				return "Enter a whole number."
			}
			if minutes < 0 {
				return "Ensure this value is greater than or equal to 0."
			}
			task.TimeItTakes = &minutes
		}
	}

	return ""
}

func anyChecked(values []string) bool {
	for _, v := range values {
		if parseCheckbox(v) {
			return true
		}
	}
	return false
}

// parseCheckbox accepts both browser checkbox values and the yes/no
// wording used by the pre-rendered forms.
func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes", "1":
		return true
	default:
		return false
	}
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

func parseDate(raw string) (*time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
