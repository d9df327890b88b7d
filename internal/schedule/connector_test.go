package schedule

import (
	"testing"

	"construction-planner-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestResolveConnector_CaseInsensitiveExactMatch(t *testing.T) {
	tasks := []models.Task{
		{Name: "foundation", Duration: 5, StartDate: "2024-01-01"},
		{Name: "Foundation Work", Duration: 2, StartDate: "2024-01-06"},
		{Name: "Framing", Duration: 3, StartDate: "2024-01-06", DependsOn: "Foundation"},
	}

	conn, err := ResolveConnector(tasks[2], 2, tasks)
	require.NoError(t, err)
	require.NotNil(t, conn, "\"Foundation\" must resolve to \"foundation\"")
	require.Equal(t, 0, conn.FromRow, "exact match wins over the prefix match")
	require.Equal(t, 2, conn.ToRow)
}

func TestResolveConnector_Geometry(t *testing.T) {
	tasks := []models.Task{
		{Name: "A", Duration: 5, StartDate: "2024-01-01"},
		{Name: "B", Duration: 2, StartDate: "2024-01-06", DependsOn: "A"},
	}

	conn, err := ResolveConnector(tasks[1], 1, tasks)
	require.NoError(t, err)
	require.NotNil(t, conn)

	// A's planned finish is 2024-01-05; the elbow sits on the day boundary
	// after it, which is exactly B's start.
	require.Equal(t, ms(t, "2024-01-06"), conn.ViaX)
	require.Equal(t, ms(t, "2024-01-06"), conn.HeadX)
	require.Equal(t, conn.HeadX-arrowGapMillis, conn.TailX)
}

func TestResolveConnector_UnknownAndEmpty(t *testing.T) {
	tasks := []models.Task{
		{Name: "A", Duration: 5, StartDate: "2024-01-01"},
		{Name: "B", Duration: 2, StartDate: "2024-01-06", DependsOn: "Groundwork"},
		{Name: "C", Duration: 2, StartDate: "2024-01-06"},
	}

	conn, err := ResolveConnector(tasks[1], 1, tasks)
	require.NoError(t, err)
	require.Nil(t, conn, "unknown predecessor name draws nothing")

	conn, err = ResolveConnector(tasks[2], 2, tasks)
	require.NoError(t, err)
	require.Nil(t, conn, "empty dependency draws nothing")
}

func TestResolveConnector_SelfDependencySkipped(t *testing.T) {
	tasks := []models.Task{
		{Name: "Sitework", Duration: 5, StartDate: "2024-01-01", DependsOn: "sitework"},
	}
	conn, err := ResolveConnector(tasks[0], 0, tasks)
	require.NoError(t, err)
	require.Nil(t, conn)
}

func TestResolveConnector_SharedPredecessorIndependentConnectors(t *testing.T) {
	tasks := []models.Task{
		{Name: "A", Duration: 5, StartDate: "2024-01-01"},
		{Name: "B", Duration: 2, StartDate: "2024-01-06", DependsOn: "A"},
		{Name: "C", Duration: 2, StartDate: "2024-01-10", DependsOn: "A"},
	}

	connB, err := ResolveConnector(tasks[1], 1, tasks)
	require.NoError(t, err)
	connC, err := ResolveConnector(tasks[2], 2, tasks)
	require.NoError(t, err)

	require.NotNil(t, connB)
	require.NotNil(t, connC)
	require.Equal(t, connB.ViaX, connC.ViaX, "both leave from A's end boundary")
	require.NotEqual(t, connB.ToRow, connC.ToRow)
	require.NotEqual(t, connB.HeadX, connC.HeadX)
}
