// Package rc loads LDAP runtime options the way libldap does, layering
// built-in defaults, ldap.conf(5) files, LDAP* environment variables and
// --ldap* command line flags. The phpldap CLI reads its target and
// credentials from here.
package rc

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

var k = koanf.New("_")

// cf. https://git.openldap.org/openldap/openldap/-/blob/master/libraries/libldap/init.c
func Initialize(flags *pflag.FlagSet) error {
	// Environment may come from a .env file, loaded before the env
	// provider reads it.
	_ = godotenv.Load()

	_, ok := os.LookupEnv("LDAPNOINIT")
	if ok {
		slog.Debug("Skip LDAP initialization.")
		return nil
	}

	_ = k.Load(confmap.Provider(map[string]interface{}{
		"URI":   "ldap://localhost",
		"BASE":  "",
		"RC":    "ldaprc",
		"DEREF": "never",
		"SCOPE": "sub",
	}, "_"), nil)

	home, _ := os.UserHomeDir()
	files := []string{
		"/etc/ldap/ldap.conf",
		filepath.Join(home, "ldaprc"),
		filepath.Join(home, ".ldaprc"),
		"ldaprc", // search in CWD
		// Read CONF and RC only from env, before above files are effectively read.
		os.Getenv("LDAPCONF"),
		filepath.Join(home, k.String("RC")),
		filepath.Join(home, fmt.Sprintf(".%s", k.String("RC"))),
		k.String("RC"), // Search in CWD.
	}
	for _, candidate := range files {
		if candidate == "" {
			continue
		}

		err := k.Load(newLooseFileProvider(candidate), parser{})
		if err != nil {
			return fmt.Errorf("%s: %w", candidate, err)
		}
	}

	_ = k.Load(env.Provider("LDAP", "_", func(key string) string {
		return strings.TrimPrefix(key, "LDAP")
	}), nil)

	if flags != nil {
		_ = k.Load(posflag.ProviderWithFlag(flags, "_", k, func(f *pflag.Flag) (string, any) {
			if !strings.HasPrefix(f.Name, "ldap") {
				return "", nil
			}
			// Rename LDAP flags, e.g. --ldappassword-file -> PASSWORD_FILE.
			key := strings.ToUpper(f.Name)
			key = strings.TrimPrefix(key, "LDAP")
			key = strings.ReplaceAll(key, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil)
	}

	passwordFilePath := k.String("PASSWORD_FILE")
	if passwordFilePath != "" {
		slog.Debug("Reading password from file.", "path", passwordFilePath)
		data, err := readSecretFromFile(passwordFilePath)
		if err != nil {
			return fmt.Errorf("ldap password: %w", err)
		}
		// Set() only throws error when using StrictMerge which is not the case.
		_ = k.Set("PASSWORD", data)
	}
	return nil
}

// String returns an option value, empty when unset.
func String(name string) string {
	return k.String(name)
}

// Int returns an option value, zero when unset.
func Int(name string) int {
	return k.Int(name)
}

// readSecretFromFile reads a file and returns its content.
// It returns an error if the file does not exist or has too open permissions.
func readSecretFromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if (info.Mode().Perm() & 0o007) != 0 {
		return "", errors.New("permissions too wide")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
