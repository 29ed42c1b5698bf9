package auditlogs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

func TestStatusComesOnlyFromBackend(t *testing.T) {
	failedSettle := kameroapi.AuditLogEntry{OperationType: "WALLET_SETTLE_SUCCESS", Status: opt.Some("FAILED")}
	st, tone := Status(failedSettle)
	assert.Equal(t, "failed", st)
	assert.Equal(t, "danger", tone)

	// The operation name suggests success, but nothing was recorded.
	noStatus := kameroapi.AuditLogEntry{OperationType: "WALLET_SETTLE_SUCCESS"}
	st, tone = Status(noStatus)
	assert.Equal(t, StatusUnknown, st)
	assert.Equal(t, "muted", tone)

	blank := kameroapi.AuditLogEntry{Status: opt.Some("  ")}
	st, _ = Status(blank)
	assert.Equal(t, StatusUnknown, st)
}

func TestPresent(t *testing.T) {
	e := kameroapi.AuditLogEntry{
		ID:            "a1",
		ActorID:       "uid-1",
		OperationType: "EVENT_UPDATE",
		EntityType:    "event",
		EntityID:      "ev1",
		Changes:       opt.Some(map[string]any{"maxPhotos": 8000.0, "isPublished": false}),
		Reason:        opt.Some("customer request"),
		Status:        opt.Some("Success"),
		CreatedAt:     time.Date(2026, 9, 1, 14, 5, 0, 0, time.UTC),
	}

	r := Present(e)
	assert.Equal(t, "uid-1", r.Actor)
	assert.Equal(t, "Event update", r.Operation)
	assert.Equal(t, "event ev1", r.Entity)
	assert.Equal(t, "success", r.Status)
	assert.Equal(t, "success", r.Tone)
	assert.Equal(t, "01 Sep 2026 14:05", r.When)
	assert.Equal(t, []string{"isPublished: false", "maxPhotos: 8000"}, r.Changes)

	e.ActorEmail = opt.Some("ops@kamero.in")
	assert.Equal(t, "ops@kamero.in", Present(e).Actor)
}
