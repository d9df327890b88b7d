package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"construction-planner-api/internal/database"
	"construction-planner-api/internal/models"
	"construction-planner-api/internal/realtime"
	"construction-planner-api/internal/sheet"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportTasks handles POST /api/tasks/import
// Replaces the whole schedule with the uploaded workbook in one transaction.
// A malformed workbook leaves the previous schedule untouched.
func ImportTasks(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	tasks, err := sheet.Read(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error loading file: " + err.Error()})
		return
	}

	importStamp := time.Now().UnixNano()
	for i := range tasks {
		tasks[i].ID = fmt.Sprintf("task-%d-%d", importStamp, i)
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Create(&tasks).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import tasks"})
		return
	}

	invalidateChart()
	evt := map[string]any{
		"type":    "tasks_imported",
		"count":   len(tasks),
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(bytes)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Data loaded successfully",
		"count":   len(tasks),
	})
}

// ExportTasks handles GET /api/tasks/export
// Serializes the current schedule, including the derived Delay column, as an
// .xlsx attachment.
func ExportTasks(c *gin.Context) {
	var tasks []models.Task
	if err := database.GetDB().Order("position asc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tasks to export"})
		return
	}

	f, err := sheet.Write(tasks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tasks_schedule.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
