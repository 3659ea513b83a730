package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditActionMapping(t *testing.T) {
	tests := []struct {
		kind   EventKind
		action int
	}{
		{EventBan, 22},
		{EventKick, 20},
		{EventChannelCreate, 10},
		{EventChannelDelete, 12},
		{EventRoleUpdate, 31},
		{EventRoleDelete, 32},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.action, tc.kind.AuditAction(), tc.kind.String())
	}
}

func TestReasonUsesTargetNameWhenPresent(t *testing.T) {
	ev := ChangeEvent{Kind: EventRoleDelete, TargetID: "r1", TargetName: "moderators"}
	assert.Equal(t, "Unauthorized role deletion (moderators)", ev.Reason())

	ev.TargetName = ""
	assert.Equal(t, "Unauthorized role deletion (r1)", ev.Reason())
}

func TestReasonPerKind(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventBan, "Unauthorized ban attempt on victim"},
		{EventKick, "Unauthorized kick attempt on victim"},
		{EventChannelCreate, "Unauthorized channel creation"},
		{EventChannelDelete, "Unauthorized channel deletion"},
		{EventRoleUpdate, "Unauthorized role update (victim)"},
	}

	for _, tc := range tests {
		ev := ChangeEvent{Kind: tc.kind, TargetName: "victim"}
		assert.Equal(t, tc.want, ev.Reason())
	}
}
