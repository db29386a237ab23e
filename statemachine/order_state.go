package statemachine

import (
	"errors"

	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
)

// validTransitions is the authoritative order lifecycle definition.
// Table orders only move forward: pending → preparing → completed.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusPreparing},
	models.StatusPreparing: {models.StatusCompleted},
	models.StatusCompleted: {},
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s models.OrderStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	return validTransitions[status]
}

// CanTransition checks whether an order may move from one state to another
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New(
		"invalid transition: cannot move from '" + string(from) + "' to '" + string(to) +
			"'. Valid next states: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	s := ""
	for i, n := range nexts {
		if i > 0 {
			s += ", "
		}
		s += string(n)
	}
	return s
}
