package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"homechef-api/models"
)

// Actor is the capacity in which a caller moves an order
type Actor string

const (
	ActorChef  Actor = "chef"
	ActorAdmin Actor = "admin"
)

// ErrInvalidTransition is wrapped by every CanTransition failure
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Chef or admin accepts a pending order
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorChef},
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorAdmin},
	// Either can cancel before delivery
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorChef},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorAdmin},
	{From: models.OrderAccepted, To: models.OrderCancelled, Actor: ActorChef},
	{From: models.OrderAccepted, To: models.OrderCancelled, Actor: ActorAdmin},
	// Delivery only follows acceptance
	{From: models.OrderAccepted, To: models.OrderDelivered, Actor: ActorChef},
	{From: models.OrderAccepted, To: models.OrderDelivered, Actor: ActorAdmin},
}

var knownStatuses = []models.OrderStatus{
	models.OrderPending,
	models.OrderAccepted,
	models.OrderCancelled,
	models.OrderDelivered,
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsKnownStatus reports whether s is one of the four order states
func IsKnownStatus(s models.OrderStatus) bool {
	for _, k := range knownStatuses {
		if k == s {
			return true
		}
	}
	return false
}

// Statuses returns every order state
func Statuses() []models.OrderStatus {
	return append([]models.OrderStatus(nil), knownStatuses...)
}

// IsTerminal reports whether no transition leaves s
func IsTerminal(s models.OrderStatus) bool {
	return len(ValidTransitionsFrom(s)) == 0
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s is not allowed for %s; valid transitions from %s: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
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
	return append([]Transition(nil), validTransitions...)
}
