package guard

import (
	"context"
	"errors"

	"go-guardian/internal/logging"
)

// ErrNoAttribution means the audit trail produced no usable executor for an
// event. Callers must treat it as "do nothing", never as grounds to punish.
var ErrNoAttribution = errors.New("no matching audit log entry")

// AuditEntry is one audit trail record, most recent first.
type AuditEntry struct {
	Executor Actor
	TargetID string
}

// AuditSource queries a guild's audit trail for recent entries of one
// action type.
type AuditSource interface {
	QueryAuditLog(ctx context.Context, guildID string, action int, limit int) ([]AuditEntry, error)
}

// AuditAttributor resolves which principal executed a change event by
// reading the single most recent matching audit log entry. The lookup is
// performed fresh for every event; the audit trail is the only source of
// truth for who acted.
//
// Taking only the newest entry is fast but can misattribute when a second
// unrelated action of the same kind lands between the event and the query.
type AuditAttributor struct {
	source AuditSource
}

func NewAuditAttributor(source AuditSource) *AuditAttributor {
	return &AuditAttributor{source: source}
}

// Attribute returns the executor of event, or ErrNoAttribution if the audit
// trail yields nothing usable (empty trail, permission denied, bot executor).
func (aa *AuditAttributor) Attribute(ctx context.Context, event ChangeEvent) (Actor, error) {
	entries, err := aa.source.QueryAuditLog(ctx, event.GuildID, event.Kind.AuditAction(), 1)
	if err != nil {
		logging.Warn("Audit log query failed for guild %s action %d: %v",
			event.GuildID, event.Kind.AuditAction(), err)
		return Actor{}, ErrNoAttribution
	}

	if len(entries) == 0 {
		return Actor{}, ErrNoAttribution
	}

	executor := entries[0].Executor
	if executor.ID == "" {
		return Actor{}, ErrNoAttribution
	}

	// Actions by other automations are not ours to police.
	if executor.Bot {
		logging.Debug("Skipping %s in guild %s executed by bot %s",
			event.Kind, event.GuildID, executor.ID)
		return Actor{}, ErrNoAttribution
	}

	return executor, nil
}
