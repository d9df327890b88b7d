package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"construction-planner-api/internal/database"
	"construction-planner-api/internal/models"
	"construction-planner-api/internal/realtime"
	"construction-planner-api/internal/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for adding a task to the schedule
type CreateTaskRequest struct {
	Name      string `json:"name" binding:"required"`
	Duration  int    `json:"duration" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	DependsOn string `json:"dependsOn"`
	Progress  int    `json:"progress"`
}

// UpdateProgressRequest represents the execution-tracking update: progress
// plus the actual dates. Progress is a pointer so 0 is an accepted value.
type UpdateProgressRequest struct {
	Progress     *int   `json:"progress" binding:"required"`
	ActualStart  string `json:"actualStart"`
	ActualFinish string `json:"actualFinish"`
}

// TaskResponse is a Task enriched with its derived planned finish date.
type TaskResponse struct {
	models.Task
	EndDate string `json:"endDate"`
}

func toTaskResponse(t models.Task) TaskResponse {
	resp := TaskResponse{Task: t}
	if start, ok := schedule.ParseDay(t.StartDate); ok && t.Duration >= 1 {
		resp.EndDate = schedule.FormatDay(schedule.PlannedFinish(start, t.Duration))
	}
	return resp
}

// normalizeDate validates a request date and rewrites it in storage format.
// Empty stays empty.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	day, ok := schedule.ParseDay(s)
	if !ok {
		return "", false
	}
	return schedule.FormatDay(day), true
}

func broadcastEvent(eventType, taskID string) {
	evt := map[string]any{
		"type":    eventType,
		"taskId":  taskID,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(bytes)
	}
}

/*
*
GetTasks handles GET /api/tasks
Returns the full schedule in store (position) order.
*/
func GetTasks(c *gin.Context) {
	var tasks []models.Task
	if err := database.GetDB().Order("position asc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tasks",
		})
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": resp,
		"count": len(resp),
	})
}

/*
*
CreateTask handles POST /api/tasks
Adds a task to the schedule after validation. Task names are unique
case-insensitively; a duplicate add is rejected and the store is unchanged.
*/
func CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task name cannot be empty"})
		return
	}
	if req.Duration < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be at least 1 day"})
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 100"})
		return
	}
	startDate, ok := normalizeDate(req.StartDate)
	if !ok || startDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}

	db := database.GetDB()

	var existing int64
	if err := db.Model(&models.Task{}).Where("LOWER(name) = LOWER(?)", name).Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate task name"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Task name already exists"})
		return
	}

	var position int64
	if err := db.Model(&models.Task{}).Count(&position).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine task position"})
		return
	}

	task := models.Task{
		ID:        fmt.Sprintf("task-%d", time.Now().UnixNano()),
		Name:      name,
		Duration:  req.Duration,
		StartDate: startDate,
		DependsOn: strings.TrimSpace(req.DependsOn),
		Progress:  req.Progress,
		Position:  int(position),
	}

	if err := db.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create task",
		})
		return
	}

	invalidateChart()
	broadcastEvent("task_created", task.ID)

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var task models.Task
	result := database.GetDB().Where("id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// UpdateTaskProgress handles PATCH /api/tasks/:id/progress
// Rewrites progress and the actual dates, and recomputes the cached delay.
// Clearing the actual finish date clears the delay: "not yet finished" is a
// state of its own, distinct from a zero delay.
func UpdateTaskProgress(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var task models.Task
	result := database.GetDB().Where("id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Progress < 0 || *req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 100"})
		return
	}

	actualStart, ok := normalizeDate(req.ActualStart)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actual start date"})
		return
	}
	actualFinish, ok := normalizeDate(req.ActualFinish)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actual finish date"})
		return
	}

	delay, err := schedule.Delay(task.StartDate, task.Duration, actualFinish)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to compute delay: " + err.Error()})
		return
	}

	task.Progress = *req.Progress
	task.ActualStart = actualStart
	task.ActualFinish = actualFinish
	task.Delay = delay

	// Map update so clearing delay writes NULL; Save would skip nil fields.
	if err := database.GetDB().Model(&task).
		Updates(map[string]interface{}{
			"progress":      task.Progress,
			"actual_start":  task.ActualStart,
			"actual_finish": task.ActualFinish,
			"delay_days":    task.Delay,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	invalidateChart()
	broadcastEvent("task_updated", task.ID)

	c.JSON(http.StatusOK, toTaskResponse(task))
}
