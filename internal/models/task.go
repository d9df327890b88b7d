package models

import (
	"gorm.io/gorm"
)

// Task represents one line item of the construction schedule.
//
// All calendar fields are stored as "YYYY-MM-DD" strings; an empty string
// means the date is not set. Delay is a derived value cached on the record:
// it is recomputed whenever ActualFinish changes and stays nil until the task
// has an actual finish date. A nil delay ("not yet finished") is distinct
// from a zero delay ("finished on time").
//
// DependsOn is a free-form task name, not a foreign key. It is resolved
// lazily at chart-build time; an unresolved name simply draws no connector.
type Task struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;index"`
	Duration     int    `json:"duration" gorm:"not null;default:1"`
	StartDate    string `json:"startDate" gorm:"column:start_date;not null"`
	DependsOn    string `json:"dependsOn" gorm:"column:depends_on"`
	Progress     int    `json:"progress" gorm:"default:0"`
	ActualStart  string `json:"actualStart" gorm:"column:actual_start"`
	ActualFinish string `json:"actualFinish" gorm:"column:actual_finish"`
	Delay        *int   `json:"delay" gorm:"column:delay_days"`
	Position     int    `json:"position" gorm:"column:position;index"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// HasActuals reports whether both actual dates are recorded. The actual bar
// on the chart is only drawn when this holds.
func (t Task) HasActuals() bool {
	return t.ActualStart != "" && t.ActualFinish != ""
}
