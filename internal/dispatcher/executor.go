package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go-guardian/internal/logging"

	"github.com/valyala/fasthttp"
)

const apiBase = "https://discord.com/api/v10"

// Executor issues moderation REST calls directly over fasthttp, carrying the
// punishment reason in the X-Audit-Log-Reason header so the guild's own
// audit trail records why the guard acted.
type Executor struct {
	pool  *HTTPPool
	token string
}

func NewExecutor(pool *HTTPPool, token string) *Executor {
	return &Executor{pool: pool, token: token}
}

// Ban implements the ban actuation. Messages are left intact
// (delete_message_seconds=0), matching a revert-not-erase posture.
func (ex *Executor) Ban(ctx context.Context, guildID, userID, reason string) error {
	body, _ := json.Marshal(map[string]interface{}{
		"delete_message_seconds": 0,
	})
	return ex.do(ctx, "PUT", banEndpoint(guildID, userID), reason, body)
}

// Timeout sets the member's communication_disabled_until to now+d.
func (ex *Executor) Timeout(ctx context.Context, guildID, userID string, d time.Duration, reason string) error {
	until := time.Now().UTC().Add(d).Format(time.RFC3339)
	body, _ := json.Marshal(map[string]interface{}{
		"communication_disabled_until": until,
	})
	return ex.do(ctx, "PATCH", memberEndpoint(guildID, userID), reason, body)
}

// DeleteChannel removes a channel, used to revert unauthorized creation.
func (ex *Executor) DeleteChannel(ctx context.Context, channelID string) error {
	return ex.do(ctx, "DELETE", channelEndpoint(channelID), "Reverting unauthorized channel creation", nil)
}

// DeleteMessage removes a single message.
func (ex *Executor) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return ex.do(ctx, "DELETE", messageEndpoint(channelID, messageID), "Disallowed link content", nil)
}

func (ex *Executor) do(ctx context.Context, method, endpoint, reason string, body []byte) error {
	start := time.Now()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bot "+ex.token)
	req.Header.Set("X-Audit-Log-Reason", url.PathEscape(reason))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(body)
	}

	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	client := ex.pool.GetClient()
	if err := client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("%s %s: status %d", method, endpoint, status)
	}

	logging.Debug("%s %s completed in %d ms (status %d)",
		method, endpoint, time.Since(start).Milliseconds(), status)
	return nil
}

func banEndpoint(guildID, userID string) string {
	return fmt.Sprintf("%s/guilds/%s/bans/%s", apiBase, guildID, userID)
}

func memberEndpoint(guildID, userID string) string {
	return fmt.Sprintf("%s/guilds/%s/members/%s", apiBase, guildID, userID)
}

func channelEndpoint(channelID string) string {
	return fmt.Sprintf("%s/channels/%s", apiBase, channelID)
}

func messageEndpoint(channelID, messageID string) string {
	return fmt.Sprintf("%s/channels/%s/messages/%s", apiBase, channelID, messageID)
}
