package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-churn/pkg/models"
	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

func update(t *testing.T, m RunModel, msg tea.Msg) (RunModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(RunModel)
	require.True(t, ok)
	return rm, cmd
}

func TestRunModel_CountsOperations(t *testing.T) {
	m := NewRunModel("churn", "", 3, func() {})

	m, _ = update(t, m, operationMsg{1, workload.Result{Op: workload.Op{Action: workload.ActionInsert, Entity: models.KindProduct}, Count: 3}})
	m, _ = update(t, m, operationMsg{2, workload.Result{Op: workload.Op{Action: workload.ActionUpdate, Entity: models.KindProduct}, IDs: []int64{1, 2}}})
	m, _ = update(t, m, operationMsg{3, workload.Result{Op: workload.Op{Action: workload.ActionDelete, Entity: models.KindProduct}}})

	assert.Equal(t, Stats{Operations: 3, Inserted: 3, Updated: 2, NoOps: 1}, m.stats)
	assert.Len(t, m.logs.Logs, 3)
	assert.Contains(t, m.View(), "Updated product id=1, id=2")
}

func TestRunModel_StopKeyCancelsOnce(t *testing.T) {
	cancels := 0
	m := NewRunModel("churn", "", 0, func() { cancels++ })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeStopping, m.mode)
	assert.Equal(t, 1, cancels)

	m, _ = update(t, m, stoppedMsg{reason: workload.StopInterrupted})
	m, cmd = update(t, m, runDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, ModeDone, m.mode)
	assert.Contains(t, m.View(), "Interrupted by user")
	assert.Equal(t, 1, cancels)
}

func TestRunModel_Failure(t *testing.T) {
	m := NewRunModel("churn", "", 0, func() {})

	m, _ = update(t, m, runDoneMsg{err: errors.New("connection reset")})
	assert.ErrorContains(t, m.Err(), "connection reset")
	assert.Contains(t, m.View(), "Failed: connection reset")
}

func TestLogView_KeepsLatest(t *testing.T) {
	l := NewLogView(2)
	l.AddLog("a")
	l.AddLog("b")
	l.AddLog("c")

	assert.Equal(t, []string{"b", "c"}, l.Logs)
}
