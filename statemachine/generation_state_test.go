package statemachine

import (
	"strings"
	"testing"

	"venus-recipe/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.GenerationStatus
		actor    string
		ok       bool
	}{
		{models.GenerationPending, models.GenerationCompleted, ActorSystem, true},
		{models.GenerationPending, models.GenerationFailed, ActorSystem, true},
		{models.GenerationPending, models.GenerationFailed, ActorStaff, true},
		{models.GenerationPending, models.GenerationCompleted, ActorStaff, false},
		{models.GenerationCompleted, models.GenerationFailed, ActorStaff, false},
		{models.GenerationFailed, models.GenerationCompleted, ActorSystem, false},
	}
	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to, tt.actor)
		if (err == nil) != tt.ok {
			t.Errorf("CanTransition(%s, %s, %s) err = %v, want ok=%v", tt.from, tt.to, tt.actor, err, tt.ok)
		}
	}
}

func TestTerminalStatesDescribed(t *testing.T) {
	err := CanTransition(models.GenerationCompleted, models.GenerationPending, ActorSystem)
	if err == nil || !strings.Contains(err.Error(), "terminal state") {
		t.Fatalf("err = %v, want terminal state message", err)
	}
	if nexts := ValidTransitionsFrom(models.GenerationPending); len(nexts) != 2 {
		t.Errorf("pending has %d next states, want 2", len(nexts))
	}
}
