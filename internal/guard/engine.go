package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-guardian/internal/logging"
)

// Actuator issues punitive actions against the platform's live state. Every
// call may fail with a permission or not-found error; the engine downgrades
// such failures to log records.
type Actuator interface {
	Ban(ctx context.Context, guildID, userID, reason string) error
	DeleteChannel(ctx context.Context, channelID string) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	Timeout(ctx context.Context, guildID, userID string, d time.Duration, reason string) error
}

// LogSink receives human-readable audit records. Delivery is best-effort.
type LogSink interface {
	Record(guildID, message string)
}

// Engine is the attribution-and-response core. For each change event it
// resolves the executor from the audit trail, exempts the owner and trusted
// principals, collapses repeat offenses inside the cooldown window, and bans
// the rest.
type Engine struct {
	trust      *TrustRegistry
	cooldowns  *CooldownTracker
	attributor *AuditAttributor
	actuator   Actuator
	sink       LogSink

	now func() time.Time
}

func NewEngine(trust *TrustRegistry, cooldowns *CooldownTracker, attributor *AuditAttributor, actuator Actuator, sink LogSink) *Engine {
	return &Engine{
		trust:      trust,
		cooldowns:  cooldowns,
		attributor: attributor,
		actuator:   actuator,
		sink:       sink,
		now:        time.Now,
	}
}

// Handle evaluates one change event. It never returns an error to the event
// loop: attribution misses are silent, actuation failures become log
// records. A single bad event must not stop the guard.
func (e *Engine) Handle(ctx context.Context, event ChangeEvent) {
	executor, err := e.attributor.Attribute(ctx, event)
	if err != nil {
		if !errors.Is(err, ErrNoAttribution) {
			logging.Warn("Attribution error for %s in guild %s: %v", event.Kind, event.GuildID, err)
		}
		return
	}

	if executor.ID == e.trust.OwnerID() {
		return
	}
	if e.trust.IsTrusted(event.GuildID, executor.ID) {
		return
	}

	// Check and stamp in one step so concurrent events for the same actor
	// produce exactly one punishment.
	if !e.cooldowns.Claim(event.GuildID, executor.ID, e.now()) {
		return
	}

	e.punish(ctx, event, executor)
}

func (e *Engine) punish(ctx context.Context, event ChangeEvent, executor Actor) {
	reason := event.Reason()

	if err := e.actuator.Ban(ctx, event.GuildID, executor.ID, reason); err != nil {
		logging.Error("Ban failed for %s in guild %s: %v", executor.ID, event.GuildID, err)
		e.sink.Record(event.GuildID, fmt.Sprintf(
			"⚠️ Failed to punish <@%s> (`%s`) — %s\nError: `%v`",
			executor.ID, executor.ID, reason, err))
		return
	}

	// Revert the damage where the event leaves something behind to revert.
	if event.Kind == EventChannelCreate && event.TargetID != "" {
		if err := e.actuator.DeleteChannel(ctx, event.TargetID); err != nil {
			logging.Warn("Failed to delete created channel %s: %v", event.TargetID, err)
		}
	}

	logging.Info("Auto-ban issued: actor=%s guild=%s reason=%q", executor.ID, event.GuildID, reason)
	e.sink.Record(event.GuildID, fmt.Sprintf(
		"🚨 **Auto-ban** → <@%s> (`%s`) — %s", executor.ID, executor.ID, reason))
}
