package guard

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go-guardian/internal/logging"
)

// LinkTimeout is the mute applied to non-exempt link posters.
const LinkTimeout = 10 * time.Minute

// Any http(s) URL-looking substring counts. The guard does not resolve or
// classify URLs; links inside code blocks are an accepted false positive.
var linkPattern = regexp.MustCompile(`https?://\S+`)

// Message is the slice of a platform message the content guard inspects.
type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	AuthorID  string
	AuthorBot bool
	Content   string
}

// ContentGuard polices message content for unsolicited links. It is
// independent of the audit-based flow; it shares only the trust-adjacent
// exemption configuration and the log sink.
type ContentGuard struct {
	safeRoles map[string]struct{}
	safeIDs   map[string]struct{}
	members   MemberProvider
	actuator  Actuator
	sink      LogSink
}

func NewContentGuard(safeRoles, safeIDs []string, members MemberProvider, actuator Actuator, sink LogSink) *ContentGuard {
	cg := &ContentGuard{
		safeRoles: make(map[string]struct{}, len(safeRoles)),
		safeIDs:   make(map[string]struct{}, len(safeIDs)),
		members:   members,
		actuator:  actuator,
		sink:      sink,
	}
	for _, r := range safeRoles {
		cg.safeRoles[r] = struct{}{}
	}
	for _, id := range safeIDs {
		cg.safeIDs[id] = struct{}{}
	}
	return cg
}

// Inspect checks one message and, on a violation by a non-exempt author,
// deletes the message and times the author out. Both actions are
// best-effort; failures are logged and message processing continues.
func (cg *ContentGuard) Inspect(ctx context.Context, msg Message) {
	if msg.AuthorBot {
		return
	}
	if !linkPattern.MatchString(msg.Content) {
		return
	}
	if cg.exempt(msg.GuildID, msg.AuthorID) {
		return
	}

	if err := cg.actuator.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		logging.Warn("Failed to delete link message %s: %v", msg.ID, err)
	}
	if err := cg.actuator.Timeout(ctx, msg.GuildID, msg.AuthorID, LinkTimeout, "Unsolicited link posting"); err != nil {
		logging.Warn("Failed to timeout %s for link posting: %v", msg.AuthorID, err)
	}

	logging.Info("Link violation: author=%s guild=%s message=%s", msg.AuthorID, msg.GuildID, msg.ID)
	cg.sink.Record(msg.GuildID, fmt.Sprintf(
		"🔗 **Link removed** → <@%s> (`%s`) timed out for %s", msg.AuthorID, msg.AuthorID, LinkTimeout))
}

func (cg *ContentGuard) exempt(guildID, userID string) bool {
	if _, ok := cg.safeIDs[userID]; ok {
		return true
	}
	if len(cg.safeRoles) == 0 || cg.members == nil {
		return false
	}

	_, roles, found := cg.members.Member(guildID, userID)
	if !found {
		return false
	}
	for _, r := range roles {
		if _, ok := cg.safeRoles[r]; ok {
			return true
		}
	}
	return false
}
