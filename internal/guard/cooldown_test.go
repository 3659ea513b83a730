package guard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownSuppressesWithinWindow(t *testing.T) {
	ct := NewCooldownTracker(CooldownWindow)
	t0 := time.Unix(1000, 0)

	assert.False(t, ct.ShouldSuppress("g1", "u1", t0))

	ct.RecordPunishment("g1", "u1", t0)

	assert.True(t, ct.ShouldSuppress("g1", "u1", t0.Add(5*time.Second)))
	assert.True(t, ct.ShouldSuppress("g1", "u1", t0.Add(14*time.Second)))
}

func TestCooldownExpiresAfterWindow(t *testing.T) {
	ct := NewCooldownTracker(CooldownWindow)
	t0 := time.Unix(1000, 0)

	ct.RecordPunishment("g1", "u1", t0)

	assert.False(t, ct.ShouldSuppress("g1", "u1", t0.Add(15*time.Second)))
	assert.False(t, ct.ShouldSuppress("g1", "u1", t0.Add(time.Minute)))
}

func TestCooldownIsScopedPerGuildAndActor(t *testing.T) {
	ct := NewCooldownTracker(CooldownWindow)
	t0 := time.Unix(1000, 0)

	ct.RecordPunishment("g1", "u1", t0)

	assert.False(t, ct.ShouldSuppress("g1", "u2", t0.Add(time.Second)))
	assert.False(t, ct.ShouldSuppress("g2", "u1", t0.Add(time.Second)))
}

func TestRecordOverwritesPreviousPunishment(t *testing.T) {
	ct := NewCooldownTracker(CooldownWindow)
	t0 := time.Unix(1000, 0)

	ct.RecordPunishment("g1", "u1", t0)
	ct.RecordPunishment("g1", "u1", t0.Add(20*time.Second))

	// The second stamp restarts the window.
	assert.True(t, ct.ShouldSuppress("g1", "u1", t0.Add(30*time.Second)))
}

func TestClaimAllowsExactlyOneConcurrentWinner(t *testing.T) {
	ct := NewCooldownTracker(CooldownWindow)
	now := time.Unix(1000, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	claims := 0

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ct.Claim("g1", "u1", now) {
				mu.Lock()
				claims++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, claims)
}
