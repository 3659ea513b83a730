package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeReturnsMostRecentExecutor(t *testing.T) {
	source := &fakeAuditSource{entries: []AuditEntry{
		{Executor: Actor{ID: "U1", Username: "mallory"}},
		{Executor: Actor{ID: "U2"}},
	}}
	aa := NewAuditAttributor(source)

	actor, err := aa.Attribute(context.Background(), ChangeEvent{Kind: EventBan, GuildID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "U1", actor.ID)
}

func TestAttributeEmptyTrail(t *testing.T) {
	aa := NewAuditAttributor(&fakeAuditSource{})

	_, err := aa.Attribute(context.Background(), ChangeEvent{Kind: EventKick, GuildID: "g1"})
	assert.ErrorIs(t, err, ErrNoAttribution)
}

func TestAttributeQueryError(t *testing.T) {
	aa := NewAuditAttributor(&fakeAuditSource{err: errors.New("403")})

	_, err := aa.Attribute(context.Background(), ChangeEvent{Kind: EventKick, GuildID: "g1"})
	assert.ErrorIs(t, err, ErrNoAttribution)
}

func TestAttributeSkipsBotExecutor(t *testing.T) {
	source := &fakeAuditSource{entries: []AuditEntry{
		{Executor: Actor{ID: "B1", Bot: true}},
	}}
	aa := NewAuditAttributor(source)

	_, err := aa.Attribute(context.Background(), ChangeEvent{Kind: EventChannelDelete, GuildID: "g1"})
	assert.ErrorIs(t, err, ErrNoAttribution)
}

func TestAttributeEmptyExecutorID(t *testing.T) {
	source := &fakeAuditSource{entries: []AuditEntry{{}}}
	aa := NewAuditAttributor(source)

	_, err := aa.Attribute(context.Background(), ChangeEvent{Kind: EventRoleDelete, GuildID: "g1"})
	assert.ErrorIs(t, err, ErrNoAttribution)
}
