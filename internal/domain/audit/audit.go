package audit

import (
	"fmt"
	"strings"
	"time"
)

// Action is what an admin did to a catalog entry.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is one admin change to a catalog entry.
type Event struct {
	ID        int64
	Timestamp time.Time
	ActorID   int64
	ActorName string
	Action    Action
	Entity    string // course, school_course, eresource, scheme, live_class
	EntityID  int64
}

// NewEvent records that actor performed action on entity entityID at now.
// PRE: action is one of the Action constants
func NewEvent(actorID int64, actorName string, action Action, entity string, entityID int64, now time.Time) Event {
	return Event{
		Timestamp: now,
		ActorID:   actorID,
		ActorName: actorName,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
	}
}

// Summary is the one-line description shown in the activity log.
func (e Event) Summary() string {
	verb := map[Action]string{
		ActionCreate: "added",
		ActionUpdate: "updated",
		ActionDelete: "deleted",
	}[e.Action]
	if verb == "" {
		verb = string(e.Action)
	}
	actor := e.ActorName
	if actor == "" {
		actor = "system"
	}
	return fmt.Sprintf("%s %s %s #%d", actor, verb, strings.ReplaceAll(e.Entity, "_", " "), e.EntityID)
}
