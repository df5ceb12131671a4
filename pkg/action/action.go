// Package action describes the workflow action history of an event. The
// history is owned by the workflow platform; the form engine only reads it to
// answer eventHasAction predicates.
package action

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Type identifies a workflow action.
type Type string

const (
	Create            Type = "CREATE"
	Assign            Type = "ASSIGN"
	Unassign          Type = "UNASSIGN"
	Read              Type = "READ"
	Notify            Type = "NOTIFY"
	Declare           Type = "DECLARE"
	Validate          Type = "VALIDATE"
	Register          Type = "REGISTER"
	Reject            Type = "REJECT"
	Archive           Type = "ARCHIVE"
	PrintCertificate  Type = "PRINT_CERTIFICATE"
	RequestCorrection Type = "REQUEST_CORRECTION"
	ApproveCorrection Type = "APPROVE_CORRECTION"
	RejectCorrection  Type = "REJECT_CORRECTION"
)

// Known reports whether t is one of the action types defined above.
func (t Type) Known() bool {
	switch t {
	case Create, Assign, Unassign, Read, Notify, Declare, Validate, Register,
		Reject, Archive, PrintCertificate, RequestCorrection, ApproveCorrection,
		RejectCorrection:
		return true
	default:
		return false
	}
}

// Normalize upper-cases and trims a raw action type.
func Normalize(raw string) Type {
	return Type(strings.ToUpper(strings.TrimSpace(raw)))
}

// Action is a single entry of the history.
type Action struct {
	Type      Type      `json:"type" yaml:"type"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
}

// History is the ordered action log of an event, oldest first.
type History []Action

// HasAction reports whether any entry has the given type.
func (h History) HasAction(t string) bool {
	want := Normalize(t)
	for _, entry := range h {
		if entry.Type == want {
			return true
		}
	}
	return false
}

// Latest returns the most recent entry of the given type.
func (h History) Latest(t Type) (Action, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Type == t {
			return h[i], true
		}
	}
	return Action{}, false
}

// ParseHistory decodes a JSON array of actions and checks ordering.
func ParseHistory(data []byte) (History, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("action: decode history: %w", err)
	}
	for i := range history {
		history[i].Type = Normalize(string(history[i].Type))
		if history[i].Type == "" {
			return nil, fmt.Errorf("action: entry %d has no type", i)
		}
		if i > 0 && history[i].CreatedAt.Before(history[i-1].CreatedAt) {
			return nil, fmt.Errorf("action: entry %d (%s) is older than its predecessor", i, history[i].Type)
		}
	}
	return history, nil
}
