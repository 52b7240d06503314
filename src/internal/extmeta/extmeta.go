// Package extmeta holds the static extension metadata table used by the
// CLI and HTTP layers for presentation, plus the shipped default
// extension and setting lists the CLI passes to the transformer. The
// locator and transformer never read this package; the lists are always
// caller-supplied parameters.
package extmeta

import "github.com/phptune/phptune/src/internal/inifile"

// Category groups extensions for presentation.
type Category string

// Extension categories
const (
	CategoryCore     Category = "core"
	CategoryDatabase Category = "database"
	CategoryWeb      Category = "web"
	CategoryDebug    Category = "debug"
	CategoryCache    Category = "cache"
	CategoryImage    Category = "image"
)

// Info describes one extension for display purposes.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Zend        bool     `json:"zend"`
}

// table is the immutable metadata table. Access it through Lookup/All.
var table = []Info{
	{Name: "bcmath", Description: "Arbitrary precision mathematics", Category: CategoryCore},
	{Name: "curl", Description: "HTTP client library bindings", Category: CategoryWeb},
	{Name: "exif", Description: "Image metadata reading", Category: CategoryImage},
	{Name: "fileinfo", Description: "File type detection", Category: CategoryCore},
	{Name: "gd", Description: "Image processing", Category: CategoryImage},
	{Name: "gmp", Description: "Arbitrary precision arithmetic (GMP)", Category: CategoryCore},
	{Name: "intl", Description: "Internationalization (ICU)", Category: CategoryCore},
	{Name: "mbstring", Description: "Multibyte string handling", Category: CategoryCore},
	{Name: "mysqli", Description: "MySQL improved driver", Category: CategoryDatabase},
	{Name: "opcache", Description: "Opcode cache", Category: CategoryCache, Zend: true},
	{Name: "openssl", Description: "TLS and crypto primitives", Category: CategoryWeb},
	{Name: "pdo_mysql", Description: "PDO driver for MySQL", Category: CategoryDatabase},
	{Name: "pdo_pgsql", Description: "PDO driver for PostgreSQL", Category: CategoryDatabase},
	{Name: "pdo_sqlite", Description: "PDO driver for SQLite", Category: CategoryDatabase},
	{Name: "pgsql", Description: "PostgreSQL driver", Category: CategoryDatabase},
	{Name: "redis", Description: "Redis client", Category: CategoryCache},
	{Name: "soap", Description: "SOAP protocol support", Category: CategoryWeb},
	{Name: "sockets", Description: "Low-level socket API", Category: CategoryWeb},
	{Name: "sodium", Description: "Modern cryptography (libsodium)", Category: CategoryCore},
	{Name: "sqlite3", Description: "SQLite database driver", Category: CategoryDatabase},
	{Name: "xdebug", Description: "Debugger and profiler", Category: CategoryDebug, Zend: true},
	{Name: "xsl", Description: "XSLT transformations", Category: CategoryWeb},
	{Name: "zip", Description: "Zip archive handling", Category: CategoryCore},
}

// All returns a copy of the metadata table.
func All() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Lookup returns the metadata for an extension name, if known.
func Lookup(name string) (Info, bool) {
	for _, info := range table {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// DefaultExtensions is the shipped extension list tuned for Laravel-style
// web development. The CLI passes it to the transformer; callers with
// different needs supply their own list.
func DefaultExtensions() []string {
	return []string{
		"bcmath",
		"curl",
		"fileinfo",
		"gd",
		"intl",
		"mbstring",
		"openssl",
		"pdo_mysql",
		"pdo_sqlite",
		"sodium",
		"sqlite3",
		"zip",
		"opcache",
	}
}

// DefaultSettings is the shipped opinionated settings list.
func DefaultSettings() []inifile.Setting {
	return []inifile.Setting{
		{Key: "memory_limit", Value: "512M"},
		{Key: "max_execution_time", Value: "120"},
		{Key: "upload_max_filesize", Value: "64M"},
		{Key: "post_max_size", Value: "64M"},
		{Key: "max_input_vars", Value: "5000"},
		{Key: "opcache.enable", Value: "1"},
		{Key: "opcache.memory_consumption", Value: "128"},
	}
}
