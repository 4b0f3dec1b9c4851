package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"ecommerce-api/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Rule describes a guarded move into To. Moves into any status without a rule are free.
type Rule struct {
	To          models.OrderStatus   `json:"to"`
	BlockedFrom []models.OrderStatus `json:"blocked_from"`
}

// rules is the authoritative guard table. Once an order has left the warehouse it can
// no longer be canceled; every other status write is accepted as-is.
var rules = []Rule{
	{To: models.StatusCanceled, BlockedFrom: []models.OrderStatus{models.StatusShipped, models.StatusCompleted}},
}

type ruleKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var blocked = func() map[ruleKey]bool {
	m := make(map[ruleKey]bool)
	for _, r := range rules {
		for _, from := range r.BlockedFrom {
			m[ruleKey{From: from, To: r.To}] = true
		}
	}
	return m
}()

// CanTransition checks whether an order in status from may be moved to status to.
func CanTransition(from, to models.OrderStatus) error {
	if !blocked[ruleKey{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s is not allowed (blocked from: %s)",
		ErrInvalidTransition, from, to, describeBlocked(to))
}

// CanCancel is CanTransition(from, Canceled).
func CanCancel(from models.OrderStatus) error {
	return CanTransition(from, models.StatusCanceled)
}

func describeBlocked(to models.OrderStatus) string {
	var names []string
	for _, r := range rules {
		if r.To != to {
			continue
		}
		for _, s := range r.BlockedFrom {
			names = append(names, string(s))
		}
	}
	return strings.Join(names, ", ")
}

// KnownStatuses lists the statuses the service itself writes or guards against.
func KnownStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		models.StatusPending,
		models.StatusShipped,
		models.StatusCompleted,
		models.StatusCanceled,
	}
}

// GetAllRules returns the guard table for documentation.
func GetAllRules() []Rule {
	return rules
}
