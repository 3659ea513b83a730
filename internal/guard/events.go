package guard

import "fmt"

// EventKind identifies the destructive action a change event describes.
type EventKind uint8

const (
	EventBan EventKind = iota
	EventKick
	EventChannelCreate
	EventChannelDelete
	EventRoleDelete
	EventRoleUpdate
)

// Discord audit log action codes for each event kind.
const (
	auditActionChannelCreate = 10
	auditActionChannelDelete = 12
	auditActionKick          = 20
	auditActionBan           = 22
	auditActionRoleUpdate    = 31
	auditActionRoleDelete    = 32
)

// AuditAction returns the Discord audit log action code used to attribute
// an event of this kind.
func (k EventKind) AuditAction() int {
	switch k {
	case EventBan:
		return auditActionBan
	case EventKick:
		return auditActionKick
	case EventChannelCreate:
		return auditActionChannelCreate
	case EventChannelDelete:
		return auditActionChannelDelete
	case EventRoleDelete:
		return auditActionRoleDelete
	case EventRoleUpdate:
		return auditActionRoleUpdate
	default:
		return 0
	}
}

func (k EventKind) String() string {
	switch k {
	case EventBan:
		return "ban"
	case EventKick:
		return "kick"
	case EventChannelCreate:
		return "channel_create"
	case EventChannelDelete:
		return "channel_delete"
	case EventRoleDelete:
		return "role_delete"
	case EventRoleUpdate:
		return "role_update"
	default:
		return "unknown"
	}
}

// ChangeEvent is a destructive administrative action observed on the gateway.
// Events are ephemeral; the audit log is the source of truth for who acted.
type ChangeEvent struct {
	Kind       EventKind
	GuildID    string
	TargetID   string
	TargetName string // display label for log records only
}

// Reason builds the human-readable punishment reason for this event.
func (e ChangeEvent) Reason() string {
	switch e.Kind {
	case EventBan:
		return fmt.Sprintf("Unauthorized ban attempt on %s", e.targetLabel())
	case EventKick:
		return fmt.Sprintf("Unauthorized kick attempt on %s", e.targetLabel())
	case EventChannelCreate:
		return "Unauthorized channel creation"
	case EventChannelDelete:
		return "Unauthorized channel deletion"
	case EventRoleDelete:
		return fmt.Sprintf("Unauthorized role deletion (%s)", e.targetLabel())
	case EventRoleUpdate:
		return fmt.Sprintf("Unauthorized role update (%s)", e.targetLabel())
	default:
		return "Unauthorized administrative action"
	}
}

func (e ChangeEvent) targetLabel() string {
	if e.TargetName != "" {
		return e.TargetName
	}
	return e.TargetID
}

// Actor is the principal an event was attributed to.
type Actor struct {
	ID       string
	Username string
	Bot      bool
}
