package bot

import (
	"context"

	"go-guardian/internal/guard"

	"github.com/bwmarrin/discordgo"
)

// AuditSource adapts discordgo's audit log endpoint to guard.AuditSource.
type AuditSource struct {
	discord *discordgo.Session
}

func NewAuditSource(discord *discordgo.Session) *AuditSource {
	return &AuditSource{discord: discord}
}

func (a *AuditSource) QueryAuditLog(ctx context.Context, guildID string, action int, limit int) ([]guard.AuditEntry, error) {
	audit, err := a.discord.GuildAuditLog(guildID, "", "", action, limit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	// Audit responses carry the referenced users separately.
	users := make(map[string]*discordgo.User, len(audit.Users))
	for _, u := range audit.Users {
		users[u.ID] = u
	}

	entries := make([]guard.AuditEntry, 0, len(audit.AuditLogEntries))
	for _, e := range audit.AuditLogEntries {
		executor := guard.Actor{ID: e.UserID}
		if u, ok := users[e.UserID]; ok {
			executor.Username = u.Username
			executor.Bot = u.Bot
		}
		entries = append(entries, guard.AuditEntry{
			Executor: executor,
			TargetID: e.TargetID,
		})
	}
	return entries, nil
}

// MemberProvider adapts live guild state to guard.MemberProvider. It reads
// gateway state first and falls back to the REST API, so the answer always
// reflects current membership rather than a policy-time cache.
type MemberProvider struct {
	discord *discordgo.Session
}

func NewMemberProvider(discord *discordgo.Session) *MemberProvider {
	return &MemberProvider{discord: discord}
}

func (mp *MemberProvider) Member(guildID, userID string) (bool, []string, bool) {
	member, err := mp.discord.State.Member(guildID, userID)
	if err != nil || member == nil {
		member, err = mp.discord.GuildMember(guildID, userID)
		if err != nil || member == nil {
			return false, nil, false
		}
	}

	return mp.isAdmin(guildID, userID, member.Roles), member.Roles, true
}

func (mp *MemberProvider) isAdmin(guildID, userID string, roleIDs []string) bool {
	g, err := mp.discord.State.Guild(guildID)
	if err != nil || g == nil {
		g, err = mp.discord.Guild(guildID)
		if err != nil || g == nil {
			return false
		}
	}

	if g.OwnerID == userID {
		return true
	}

	roles := make(map[string]*discordgo.Role, len(g.Roles))
	for _, r := range g.Roles {
		roles[r.ID] = r
	}
	for _, id := range roleIDs {
		if r, ok := roles[id]; ok && r.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}
