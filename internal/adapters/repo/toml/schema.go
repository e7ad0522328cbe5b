package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int                  `toml:"version"`
	Users   []subscriptionSchema `toml:"users"`
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported subscriptions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// Field names are shared with the admin tooling; do not rename.
type subscriptionSchema struct {
	UserID        string `toml:"user_id"`
	Username      string `toml:"username,omitempty"`
	FirstName     string `toml:"first_name,omitempty"`
	Plan          string `toml:"plan"`
	PaymentAmount int    `toml:"payment_amount"`
	CreatedDate   string `toml:"created_date"`
	Expires       string `toml:"expires,omitempty"`
	SearchesUsed  int    `toml:"searches_used"`
	LastReset     string `toml:"last_reset"`
	TotalSearches int    `toml:"total_searches"`
	Status        string `toml:"status"`
}
