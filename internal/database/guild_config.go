package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SetLogChannel stores the per-guild log channel binding.
func (d *Database) SetLogChannel(guildID, channelID string) error {
	_, err := d.db.Exec(
		`INSERT INTO guild_config (guild_id, log_channel_id, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET
			log_channel_id = excluded.log_channel_id,
			updated_at = excluded.updated_at`,
		guildID, channelID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set log channel: %w", err)
	}
	return nil
}

// GetLogChannel returns the bound log channel id, "" when no binding exists.
func (d *Database) GetLogChannel(guildID string) (string, error) {
	var channelID string
	err := d.db.QueryRow(
		`SELECT log_channel_id FROM guild_config WHERE guild_id = ?`,
		guildID).Scan(&channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get log channel: %w", err)
	}
	return channelID, nil
}

// AllLogChannels returns every non-empty binding, for startup replay.
func (d *Database) AllLogChannels() (map[string]string, error) {
	rows, err := d.db.Query(
		`SELECT guild_id, log_channel_id FROM guild_config WHERE log_channel_id != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to query log channels: %w", err)
	}
	defer rows.Close()

	bindings := make(map[string]string)
	for rows.Next() {
		var guildID, channelID string
		if err := rows.Scan(&guildID, &channelID); err != nil {
			return nil, fmt.Errorf("failed to scan log channel: %w", err)
		}
		bindings[guildID] = channelID
	}
	return bindings, rows.Err()
}
