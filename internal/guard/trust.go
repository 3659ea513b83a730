package guard

import (
	"errors"
	"sync"
)

// ErrUnauthorized is returned when a non-owner attempts a privileged mutation.
var ErrUnauthorized = errors.New("unauthorized: owner only")

// MemberProvider exposes live membership state for derived-trust checks.
// Lookups go to the platform at decision time, never a cache.
type MemberProvider interface {
	// Member returns the member's admin flag and role ids, or found=false
	// if the user is not (or no longer) a member of the guild.
	Member(guildID, userID string) (admin bool, roles []string, found bool)
}

// TrustRegistry holds the explicitly trusted principals per guild and decides
// whether an actor is exempt from punishment. A principal is trusted if it is
// in the guild's explicit set or currently holds Administrator in that guild.
type TrustRegistry struct {
	mu      sync.RWMutex
	trusted map[string]map[string]struct{} // guildID -> set of userIDs

	ownerID string
	members MemberProvider
	store   TrustStore
}

// TrustStore mirrors explicit trust mutations to a durable backing store.
// A nil store keeps the registry memory-only.
type TrustStore interface {
	AddTrusted(guildID, userID, addedBy string) error
	RemoveTrusted(guildID, userID string) error
}

func NewTrustRegistry(ownerID string, members MemberProvider, store TrustStore) *TrustRegistry {
	return &TrustRegistry{
		trusted: make(map[string]map[string]struct{}),
		ownerID: ownerID,
		members: members,
		store:   store,
	}
}

// OwnerID returns the designated owner principal.
func (tr *TrustRegistry) OwnerID() string {
	return tr.ownerID
}

// IsTrusted reports whether userID is exempt from punishment in guildID.
func (tr *TrustRegistry) IsTrusted(guildID, userID string) bool {
	tr.mu.RLock()
	_, explicit := tr.trusted[guildID][userID]
	tr.mu.RUnlock()

	if explicit {
		return true
	}

	if tr.members != nil {
		if admin, _, found := tr.members.Member(guildID, userID); found && admin {
			return true
		}
	}
	return false
}

// AddTrusted adds userID to guildID's explicit trust set. Only the owner may
// call this; any other actor gets ErrUnauthorized and no state change.
func (tr *TrustRegistry) AddTrusted(actorID, guildID, userID string) error {
	if actorID != tr.ownerID {
		return ErrUnauthorized
	}

	tr.mu.Lock()
	set, ok := tr.trusted[guildID]
	if !ok {
		set = make(map[string]struct{})
		tr.trusted[guildID] = set
	}
	set[userID] = struct{}{}
	tr.mu.Unlock()

	if tr.store != nil {
		return tr.store.AddTrusted(guildID, userID, actorID)
	}
	return nil
}

// RemoveTrusted removes userID from guildID's explicit trust set, owner only.
func (tr *TrustRegistry) RemoveTrusted(actorID, guildID, userID string) error {
	if actorID != tr.ownerID {
		return ErrUnauthorized
	}

	tr.mu.Lock()
	delete(tr.trusted[guildID], userID)
	tr.mu.Unlock()

	if tr.store != nil {
		return tr.store.RemoveTrusted(guildID, userID)
	}
	return nil
}

// Trusted returns a snapshot of guildID's explicit trust set.
func (tr *TrustRegistry) Trusted(guildID string) []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	ids := make([]string, 0, len(tr.trusted[guildID]))
	for id := range tr.trusted[guildID] {
		ids = append(ids, id)
	}
	return ids
}

// Seed loads an explicit trust entry without an owner check. Used when
// replaying the persisted trust list at startup.
func (tr *TrustRegistry) Seed(guildID, userID string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	set, ok := tr.trusted[guildID]
	if !ok {
		set = make(map[string]struct{})
		tr.trusted[guildID] = set
	}
	set[userID] = struct{}{}
}
