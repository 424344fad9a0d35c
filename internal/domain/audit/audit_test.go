package audit

import (
	"testing"
	"time"
)

func TestEvent_Summary(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		e    Event
		want string
	}{
		{"create", NewEvent(1, "asha", ActionCreate, "course", 4, now), "asha added course #4"},
		{"update with underscore entity", NewEvent(1, "asha", ActionUpdate, "live_class", 2, now), "asha updated live class #2"},
		{"delete without actor", NewEvent(0, "", ActionDelete, "scheme", 9, now), "system deleted scheme #9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
