package database

// Config holds configuration for the quote record store connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"quotes"`
	// Schema selects the record-store schema generation (current, legacy, auto).
	Schema string `mapstructure:"schema" default:"auto"`
	// TimeoutSeconds is the connection and I/O timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	// SchemaCurrent is the schema written by current releases (quote_items).
	SchemaCurrent = "current"
	// SchemaLegacy is the pre-rewrite schema (quote_line_items).
	SchemaLegacy = "legacy"
	// SchemaAuto probes the database for whichever table exists.
	SchemaAuto = "auto"
)

// IsValidSchema checks if the configured schema profile is valid.
func (c Config) IsValidSchema() bool {
	switch c.Schema {
	case SchemaCurrent, SchemaLegacy, SchemaAuto:
		return true
	default:
		return false
	}
}
