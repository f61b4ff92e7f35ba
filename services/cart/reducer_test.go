package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"serenity/models"
)

func entry(appointmentID, serviceID string) models.CartEntry {
	return models.CartEntry{
		AppointmentID:       appointmentID,
		Service:             models.Service{ID: serviceID, Title: "Massage", Price: 80},
		AppointmentDateTime: time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestReduce_AddAppends(t *testing.T) {
	state := Reduce(nil, Action{Type: ActionAdd, Entry: entry("a1", "s1")})
	state = Reduce(state, Action{Type: ActionAdd, Entry: entry("a2", "s2")})

	assert.Len(t, state, 2)
	assert.Equal(t, "a1", state[0].AppointmentID)
	assert.Equal(t, "a2", state[1].AppointmentID)
}

func TestReduce_RemoveMatchesAppointmentIDOnly(t *testing.T) {
	// Two entries share the same service; removal must touch exactly one.
	state := []models.CartEntry{entry("a1", "s1"), entry("a2", "s1"), entry("a3", "s2")}

	next := Reduce(state, Action{Type: ActionRemove, AppointmentID: "a2"})

	assert.Len(t, next, 2)
	assert.Equal(t, "a1", next[0].AppointmentID)
	assert.Equal(t, "a3", next[1].AppointmentID)
}

func TestReduce_RemoveUnknownIDIsNoop(t *testing.T) {
	state := []models.CartEntry{entry("a1", "s1")}
	next := Reduce(state, Action{Type: ActionRemove, AppointmentID: "missing"})
	assert.Equal(t, state, next)
}

func TestReduce_Clear(t *testing.T) {
	state := []models.CartEntry{entry("a1", "s1"), entry("a2", "s2")}
	next := Reduce(state, Action{Type: ActionClear})
	assert.Empty(t, next)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := []models.CartEntry{entry("a1", "s1"), entry("a2", "s2")}
	Reduce(state, Action{Type: ActionRemove, AppointmentID: "a1"})

	assert.Len(t, state, 2)
	assert.Equal(t, "a1", state[0].AppointmentID)
}
