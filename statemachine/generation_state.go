package statemachine

import (
	"errors"
	"strings"

	"venus-recipe/models"
)

const (
	ActorSystem = "system"
	ActorStaff  = "staff"
)

// Transition defines a valid status change and who can perform it
type Transition struct {
	From  models.GenerationStatus
	To    models.GenerationStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Generator finishes a run, even when some slots were skipped
	{From: models.GenerationPending, To: models.GenerationCompleted, Actor: ActorSystem},
	// Generator could not start the run at all
	{From: models.GenerationPending, To: models.GenerationFailed, Actor: ActorSystem},
	// Staff may retire a stuck run
	{From: models.GenerationPending, To: models.GenerationFailed, Actor: ActorStaff},
}

type transitionKey struct {
	From  models.GenerationStatus
	To    models.GenerationStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.GenerationStatus) []models.GenerationStatus {
	var nexts []models.GenerationStatus
	seen := map[models.GenerationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a generation from one state to another
func CanTransition(from, to models.GenerationStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.GenerationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
