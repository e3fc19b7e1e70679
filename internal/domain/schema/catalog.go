package schema

import (
	"fmt"
	"strings"
)

// Action Scheduler table names, without the host prefix.
const (
	ActionsTable = "actionscheduler_actions"
	ClaimsTable  = "actionscheduler_claims"
	GroupsTable  = "actionscheduler_groups"
	LogsTable    = "actionscheduler_logs"
)

// MaxIndexLength mirrors the 191 character prefix limit used for utf8mb4 indexes.
const MaxIndexLength = 191

// TableSpec describes one table of the Action Scheduler set: its name, the
// column that must be PRIMARY KEY + AUTO_INCREMENT, and its canonical DDL.
type TableSpec struct {
	Name          string `json:"name"`
	PrimaryColumn string `json:"primary_column"`
	ddl           string
}

// Placeholders substituted by DDL.
const (
	placeholderTable     = "{table}"
	placeholderIndex     = "{max_index_length}"
	placeholderCollation = "{charset_collate}"
)

var catalog = []TableSpec{
	{
		Name:          ActionsTable,
		PrimaryColumn: "action_id",
		ddl: `CREATE TABLE {table} (
	action_id bigint(20) unsigned NOT NULL auto_increment,
	hook varchar(191) NOT NULL,
	status varchar(20) NOT NULL,
	scheduled_date_gmt datetime NOT NULL default '0000-00-00 00:00:00',
	scheduled_date_local datetime NOT NULL default '0000-00-00 00:00:00',
	args varchar({max_index_length}),
	schedule longtext,
	group_id bigint(20) unsigned NOT NULL default '0',
	attempts int(11) NOT NULL default '0',
	last_attempt_gmt datetime NOT NULL default '0000-00-00 00:00:00',
	last_attempt_local datetime NOT NULL default '0000-00-00 00:00:00',
	claim_id bigint(20) unsigned NOT NULL default '0',
	extended_args varchar(8000) DEFAULT NULL,
	PRIMARY KEY  (action_id),
	KEY hook (hook({max_index_length})),
	KEY status (status),
	KEY scheduled_date_gmt (scheduled_date_gmt),
	KEY args (args({max_index_length})),
	KEY group_id (group_id),
	KEY last_attempt_gmt (last_attempt_gmt),
	KEY claim_id (claim_id)
	) {charset_collate}`,
	},
	{
		Name:          ClaimsTable,
		PrimaryColumn: "claim_id",
		ddl: `CREATE TABLE {table} (
	claim_id bigint(20) unsigned NOT NULL auto_increment,
	date_created_gmt datetime NOT NULL default '0000-00-00 00:00:00',
	PRIMARY KEY  (claim_id),
	KEY date_created_gmt (date_created_gmt)
	) {charset_collate}`,
	},
	{
		Name:          GroupsTable,
		PrimaryColumn: "group_id",
		ddl: `CREATE TABLE {table} (
	group_id bigint(20) unsigned NOT NULL auto_increment,
	slug varchar(255) NOT NULL,
	PRIMARY KEY  (group_id),
	KEY slug (slug({max_index_length}))
	) {charset_collate}`,
	},
	{
		Name:          LogsTable,
		PrimaryColumn: "log_id",
		ddl: `CREATE TABLE {table} (
	log_id bigint(20) unsigned NOT NULL auto_increment,
	action_id bigint(20) unsigned NOT NULL,
	message text NOT NULL,
	log_date_gmt datetime NOT NULL default '0000-00-00 00:00:00',
	log_date_local datetime NOT NULL default '0000-00-00 00:00:00',
	PRIMARY KEY  (log_id),
	KEY action_id (action_id),
	KEY log_date_gmt (log_date_gmt)
	) {charset_collate}`,
	},
}

// Catalog returns the four table specs in repair order: actions, claims,
// groups, logs. Later tables reference ids of earlier ones.
func Catalog() []TableSpec {
	out := make([]TableSpec, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a spec by its unprefixed table name.
func Lookup(name string) (TableSpec, bool) {
	for _, spec := range catalog {
		if spec.Name == name {
			return spec, true
		}
	}
	return TableSpec{}, false
}

// MustLookup is Lookup for names that are known at compile time.
// An unknown name is a programming error and panics.
func MustLookup(name string) TableSpec {
	spec, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("schema: unknown table %q", name))
	}
	return spec
}

// GetSchema renders the CREATE TABLE statement for a catalog table.
func GetSchema(name, prefix, charsetCollate string) string {
	return MustLookup(name).DDL(prefix, charsetCollate)
}

// TableName returns the prefixed physical table name.
func (s TableSpec) TableName(prefix string) string {
	return prefix + s.Name
}

// ArchiveName returns the name the table is renamed to during a reset.
func (s TableSpec) ArchiveName(suffix string) string {
	return s.Name + suffix
}

// DDL renders the CREATE TABLE statement for the prefixed table.
// The statement deliberately has no IF NOT EXISTS.
func (s TableSpec) DDL(prefix, charsetCollate string) string {
	r := strings.NewReplacer(
		placeholderTable, s.TableName(prefix),
		placeholderIndex, fmt.Sprint(MaxIndexLength),
		placeholderCollation, charsetCollate,
	)
	return strings.TrimRight(r.Replace(s.ddl), " ")
}

// CharsetCollate renders the table option tail used by DDL,
// e.g. "DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_520_ci".
func CharsetCollate(charset, collate string) string {
	var parts []string
	if charset != "" {
		parts = append(parts, "DEFAULT CHARACTER SET "+charset)
	}
	if collate != "" {
		parts = append(parts, "COLLATE "+collate)
	}
	return strings.Join(parts, " ")
}
