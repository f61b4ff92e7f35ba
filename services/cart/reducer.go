package cart

import "serenity/models"

// ActionType enumerates the cart state transitions.
type ActionType string

const (
	ActionAdd    ActionType = "ADD_TO_CART"
	ActionRemove ActionType = "REMOVE_FROM_CART"
	ActionClear  ActionType = "CLEAR_CART"
)

// Action drives one cart transition. Entry is set for ActionAdd,
// AppointmentID for ActionRemove.
type Action struct {
	Type          ActionType
	Entry         models.CartEntry
	AppointmentID string
}

// Reduce applies an action to the cart state and returns the next state.
// The input slice is never mutated; removal matches by appointment ID
// only, so entries sharing a service are unaffected.
func Reduce(state []models.CartEntry, action Action) []models.CartEntry {
	switch action.Type {
	case ActionAdd:
		next := make([]models.CartEntry, 0, len(state)+1)
		next = append(next, state...)
		return append(next, action.Entry)
	case ActionRemove:
		next := make([]models.CartEntry, 0, len(state))
		for _, entry := range state {
			if entry.AppointmentID != action.AppointmentID {
				next = append(next, entry)
			}
		}
		return next
	case ActionClear:
		return []models.CartEntry{}
	default:
		return state
	}
}
