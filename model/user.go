package model

// UserRecord tracks per-user aggregate state. Rows are created lazily the
// first time a user is referenced.
type UserRecord struct {
	ID       string `db:"id"` // Primary Key
	Warnings int64  `db:"warnings"`
	XPPoints int64  `db:"xp_points"`
	Currency int64  `db:"currency_amount"`
	LastSeen int64  `db:"last_seen"` // Unix seconds
}
