package domain

// Table describes one table this service is permitted to read and delete
// from. Table and column names only ever reach SQL through this closed
// registry, never straight from request input.
type Table struct {
	Name        string
	DeleteKey   string // key column for record deletes; empty means read-only
	LiteralDate bool   // date deletes use the raw date string, no time suffix
}

// dateRanSuffix turns a bare date into the midnight-UTC timestamp format
// most listing tables store in date_ran.
const dateRanSuffix = "T00:00:00.000Z"

// DateRanColumn is the column targeted by date-based deletes.
const DateRanColumn = "date_ran"

var tables = map[string]Table{
	"tnledger_courts":                 {Name: "tnledger_courts", DeleteKey: "id"},
	"tn_public_notice_probate_notice": {Name: "tn_public_notice_probate_notice", DeleteKey: "id", LiteralDate: true},
	"tn_courts":                       {Name: "tn_courts", DeleteKey: "url"},
	"tnledger_foreclosures":           {Name: "tnledger_foreclosures", DeleteKey: "tdn_no"},
	"tn_public_notices":               {Name: "tn_public_notices", DeleteKey: "tdn_no"},
	"scripts_status":                  {Name: "scripts_status"},
}

// LookupTable resolves a caller-supplied table name against the registry.
func LookupTable(name string) (Table, bool) {
	t, ok := tables[name]
	return t, ok
}

// Deletable reports whether record deletes are allowed on the table.
func (t Table) Deletable() bool {
	return t.DeleteKey != ""
}

// DateValue formats a selected date for a date_ran delete on this table.
func (t Table) DateValue(date string) string {
	if t.LiteralDate {
		return date
	}
	return date + dateRanSuffix
}
