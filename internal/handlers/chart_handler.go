package handlers

import (
	"net/http"
	"time"

	"construction-planner-api/internal/cache"
	"construction-planner-api/internal/database"
	"construction-planner-api/internal/models"
	"construction-planner-api/internal/schedule"

	"github.com/gin-gonic/gin"
)

// chartCache memoizes the built chart model between mutations. Every write
// path calls invalidateChart; the TTL only bounds staleness if an
// invalidation is ever missed.
var chartCache = cache.New[string, *schedule.Chart](30 * time.Second)

const chartCacheKey = "gantt"

func invalidateChart() {
	chartCache.Clear()
}

// GetChart handles GET /api/chart
// Builds the Gantt model (rows, bars, connectors, axis bounds) over a full
// snapshot of the store. A build failure discards the partial chart and is
// reported as a render error.
func GetChart(c *gin.Context) {
	if chart, ok := chartCache.Get(chartCacheKey); ok {
		c.JSON(http.StatusOK, chart)
		return
	}

	var tasks []models.Task
	if err := database.GetDB().Order("position asc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	chart, err := schedule.BuildChart(tasks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rendering chart: " + err.Error()})
		return
	}

	chartCache.Set(chartCacheKey, chart)
	c.JSON(http.StatusOK, chart)
}
