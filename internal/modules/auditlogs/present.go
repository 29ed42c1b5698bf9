// Package auditlogs turns audit log entries into table rows. The status
// column shows what the backend recorded; it is never derived from the
// operation type.
package auditlogs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
)

const StatusUnknown = "unknown"

type Row struct {
	ID        string
	When      string
	Actor     string
	Operation string
	Entity    string
	Status    string
	// Tone picks the badge colour: "success", "danger", "warning" or "muted".
	Tone    string
	Reason  string
	Changes []string
}

func Present(e kameroapi.AuditLogEntry) Row {
	status, tone := Status(e)
	return Row{
		ID:        e.ID,
		When:      e.CreatedAt.Format("02 Jan 2006 15:04"),
		Actor:     e.ActorEmail.Or(e.ActorID),
		Operation: humanize(e.OperationType),
		Entity:    strings.TrimSpace(e.EntityType + " " + e.EntityID),
		Status:    status,
		Tone:      tone,
		Reason:    e.Reason.Or(""),
		Changes:   changes(e),
	}
}

func PresentAll(entries []kameroapi.AuditLogEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Present(e))
	}
	return rows
}

// Status returns the recorded status, lower-cased, or StatusUnknown when the
// backend sent none.
func Status(e kameroapi.AuditLogEntry) (string, string) {
	raw, ok := e.Status.Get()
	raw = strings.ToLower(strings.TrimSpace(raw))
	if !ok || raw == "" {
		return StatusUnknown, "muted"
	}
	switch raw {
	case "success", "succeeded", "completed", "ok":
		return raw, "success"
	case "failed", "failure", "error", "rejected":
		return raw, "danger"
	case "pending", "in_progress", "processing":
		return raw, "warning"
	default:
		return raw, "muted"
	}
}

func humanize(op string) string {
	s := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(op)))
	if s == "" {
		return "-"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// changes lists "field: value" pairs in key order.
func changes(e kameroapi.AuditLogEntry) []string {
	m, ok := e.Changes.Get()
	if !ok || len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return out
}
