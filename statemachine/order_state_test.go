package statemachine

import (
	"errors"
	"testing"

	"homechef-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		actor    Actor
		ok       bool
	}{
		{models.OrderPending, models.OrderAccepted, ActorChef, true},
		{models.OrderPending, models.OrderAccepted, ActorAdmin, true},
		{models.OrderPending, models.OrderCancelled, ActorChef, true},
		{models.OrderAccepted, models.OrderCancelled, ActorAdmin, true},
		{models.OrderAccepted, models.OrderDelivered, ActorChef, true},
		{models.OrderPending, models.OrderDelivered, ActorChef, false},
		{models.OrderPending, models.OrderDelivered, ActorAdmin, false},
		{models.OrderDelivered, models.OrderCancelled, ActorAdmin, false},
		{models.OrderCancelled, models.OrderAccepted, ActorAdmin, false},
		{models.OrderAccepted, models.OrderPending, ActorAdmin, false},
		{models.OrderPending, models.OrderAccepted, Actor("user"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to)+"/"+string(tt.actor), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("error %v does not wrap ErrInvalidTransition", err)
				}
			}
		})
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []models.OrderStatus{models.OrderDelivered, models.OrderCancelled} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []models.OrderStatus{models.OrderPending, models.OrderAccepted} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range Statuses() {
		if !IsKnownStatus(s) {
			t.Errorf("%s should be known", s)
		}
	}
	if IsKnownStatus("shipped") {
		t.Error("shipped must not be a known status")
	}
}

func TestValidTransitionsFromDeduplicatesActors(t *testing.T) {
	got := ValidTransitionsFrom(models.OrderAccepted)
	if len(got) != 2 {
		t.Fatalf("ValidTransitionsFrom(accepted) = %v, want 2 entries", got)
	}
}
