package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/lithammer/dedent"
	"github.com/spf13/pflag"
)

var k = koanf.New(".")

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTIONS] [FILTER [ATTRIBUTES...]]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Stderr.Write([]byte(dedent.Dedent(`

		phpldap binds to a directory server and prints search results in PHP
		print_r notation, the exact shape PHP scripts read from ldap_get_entries.
		Target and credentials come from ldap.conf(5) files, LDAP* environment
		variables and --ldap* flags, or from a YAML run file.
		`)))
	}
}

func setupFlags() {
	pflag.StringP("config", "c", "", "Path to YAML run file. Use - for stdin.")
	pflag.Bool("color", false, "Force color output.")
	pflag.BoolP("help", "?", false, "Show this help message and exit.")
	pflag.BoolP("version", "V", false, "Show version and exit.")
	pflag.CountP("quiet", "q", "Decrease log verbosity.")
	pflag.CountP("verbose", "v", "Increase log verbosity.")

	pflag.String("ldapuri", "", "URI of the directory server.")
	pflag.Int("ldapport", 0, "Port of the directory server. 0 picks the scheme default.")
	pflag.String("ldapbinddn", "", "DN to bind as. Empty binds anonymously.")
	pflag.String("ldappassword", "", "Password for the bind DN.")
	pflag.String("ldappassword-file", "", "Path to a file holding the bind password.")
	pflag.String("ldapbase", "", "Base DN for searches.")

	pflag.StringP("scope", "s", "", "Search scope: base, one or sub.")
	pflag.StringP("deref", "a", "", "Alias dereferencing: never, search, find or always.")
	pflag.BoolP("attrs-only", "A", false, "Fetch attribute names only, no values.")
	pflag.IntP("size-limit", "z", 0, "Maximum number of entries, 0 for no limit.")
	pflag.IntP("time-limit", "l", 0, "Maximum search seconds, 0 for no limit.")
	pflag.Int("protocol-version", 0, "LDAP protocol version, 2 or 3.")
	pflag.Bool("referrals", false, "Follow referrals.")

	pflag.Parse()
	_ = k.Load(posflag.Provider(pflag.CommandLine, k.Delim(), k), nil)
}

var levels = []slog.Level{
	slog.LevelDebug,
	slog.LevelInfo,
	slog.LevelWarn,
	slog.LevelError,
}

func logLevel() slog.Level {
	// Default log level is INFO, which index is 1.
	levelIndex := 1 - k.Int("verbose") + k.Int("quiet")
	levelIndex = int(math.Max(0, float64(levelIndex)))
	levelIndex = int(math.Min(float64(levelIndex), float64(len(levels)-1)))
	return levels[levelIndex]
}
