package models

import (
	"encoding/json"
	"time"
)

// Inspection is the structural state of one table, recomputed on every run.
type Inspection struct {
	Exists           bool `json:"exists"`
	HasPrimaryKey    bool `json:"has_primary_key"`
	HasAutoIncrement bool `json:"has_auto_increment"`
}

// Sound reports whether the primary identifier column is both PRIMARY KEY
// and AUTO_INCREMENT.
func (i Inspection) Sound() bool {
	return i.HasPrimaryKey && i.HasAutoIncrement
}

// AuditLog is the ordered list of human-readable lines describing what a
// repair run did. It is passed explicitly through the run.
type AuditLog struct {
	entries []string
	actions int
}

// Action appends an entry for a table mutation.
func (a *AuditLog) Action(msg string) {
	a.entries = append(a.entries, msg)
	a.actions++
}

// Note appends an informational entry that is not a mutation.
func (a *AuditLog) Note(msg string) {
	a.entries = append(a.entries, msg)
}

// Entries returns a copy of the recorded lines.
func (a *AuditLog) Entries() []string {
	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out
}

// Actions returns how many mutations were recorded.
func (a *AuditLog) Actions() int {
	return a.actions
}

// RepairRecord is the persisted outcome of a repair attempt.
// Its presence in the settings store, not its content, marks the repair as
// already attempted.
type RepairRecord struct {
	RunID        string    `json:"run_id,omitempty"`
	RunCompleted bool      `json:"run_completed"`
	Skipped      bool      `json:"skipped,omitempty"`
	Failed       bool      `json:"failed,omitempty"`
	Suffix       string    `json:"suffix,omitempty"`
	Entries      []string  `json:"entries"`
	Notified     bool      `json:"notified,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Marshal encodes the record for the settings store.
func (r *RepairRecord) Marshal() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalRepairRecord decodes a stored record.
func UnmarshalRepairRecord(raw string) (*RepairRecord, error) {
	var rec RepairRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// NoticeLevel controls how a notice is presented.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-time, dismissible message shown to the operator.
type Notice struct {
	Level       NoticeLevel `json:"level"`
	Messages    []string    `json:"messages"`
	Dismissible bool        `json:"dismissible"`
}
