package guard

import (
	"sync"
	"time"
)

// CooldownWindow is how long after a punishment further punishment of the
// same actor is suppressed. It absorbs duplicate audit deliveries and
// cascading events (a bulk delete fans out into many single deletes with the
// same executor) into one ban.
const CooldownWindow = 15 * time.Second

// CooldownTracker remembers when each actor was last punished, per guild.
// Entries are overwritten on each punishment and live for the process
// lifetime.
type CooldownTracker struct {
	mu       sync.Mutex
	window   time.Duration
	punished map[string]map[string]time.Time // guildID -> userID -> last punished
}

func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window:   window,
		punished: make(map[string]map[string]time.Time),
	}
}

// ShouldSuppress reports whether userID was punished in guildID less than
// one window before now.
func (ct *CooldownTracker) ShouldSuppress(guildID, userID string, now time.Time) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.suppressed(guildID, userID, now)
}

// RecordPunishment stamps userID as punished at now, overwriting any
// previous entry.
func (ct *CooldownTracker) RecordPunishment(guildID, userID string, now time.Time) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.record(guildID, userID, now)
}

// Claim performs the check and the record as one critical section: it
// returns true and stamps the actor iff the actor is not in cooldown. Two
// concurrent events for the same actor cannot both claim, so at most one
// punishment is issued per window.
func (ct *CooldownTracker) Claim(guildID, userID string, now time.Time) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	if ct.suppressed(guildID, userID, now) {
		return false
	}
	ct.record(guildID, userID, now)
	return true
}

func (ct *CooldownTracker) suppressed(guildID, userID string, now time.Time) bool {
	last, ok := ct.punished[guildID][userID]
	if !ok {
		return false
	}
	return now.Sub(last) < ct.window
}

func (ct *CooldownTracker) record(guildID, userID string, now time.Time) {
	guild, ok := ct.punished[guildID]
	if !ok {
		guild = make(map[string]time.Time)
		ct.punished[guildID] = guild
	}
	guild[userID] = now
}
