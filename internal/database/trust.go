package database

import (
	"fmt"
	"time"
)

// TrustedUser is one persisted explicit-trust entry.
type TrustedUser struct {
	GuildID   string
	UserID    string
	AddedBy   string
	CreatedAt int64
}

// AddTrusted stores or refreshes a trust entry.
func (d *Database) AddTrusted(guildID, userID, addedBy string) error {
	_, err := d.db.Exec(
		`INSERT INTO trusted_users (guild_id, user_id, added_by, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(guild_id, user_id) DO UPDATE SET added_by = excluded.added_by`,
		guildID, userID, addedBy, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to add trusted user: %w", err)
	}
	return nil
}

// RemoveTrusted deletes a trust entry. Removing an absent entry is not an error.
func (d *Database) RemoveTrusted(guildID, userID string) error {
	_, err := d.db.Exec(
		`DELETE FROM trusted_users WHERE guild_id = ? AND user_id = ?`,
		guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove trusted user: %w", err)
	}
	return nil
}

// AllTrusted returns every persisted trust entry, for startup replay.
func (d *Database) AllTrusted() ([]TrustedUser, error) {
	rows, err := d.db.Query(
		`SELECT guild_id, user_id, added_by, created_at FROM trusted_users`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trusted users: %w", err)
	}
	defer rows.Close()

	var users []TrustedUser
	for rows.Next() {
		var u TrustedUser
		if err := rows.Scan(&u.GuildID, &u.UserID, &u.AddedBy, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trusted user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
