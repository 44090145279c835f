package model

// User is an account row in the users table. The password column holds a
// bcrypt hash, never the raw password.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"`
	Tasks        string `db:"tasks" json:"tasks"`
}

// ScriptStatus is the latest known status of one scraper script, one row
// per script name in scripts_status.
type ScriptStatus struct {
	Script string `db:"script" json:"script"`
	Status string `db:"status" json:"status"`
}
