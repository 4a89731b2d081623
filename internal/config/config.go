// Package config loads the optional YAML run file describing the target
// directory and the searches to execute.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/phpldap/phpldap"
)

type Config struct {
	URI      string
	Port     int
	BindDN   string `mapstructure:"binddn"`
	Password string
	Searches []Search
}

// Search is one search to run, scope and deref spelled as in ldapsearch
// (base/one/sub, never/search/find/always).
type Search struct {
	Base       string
	Filter     string
	Scope      phpldap.Scope
	Deref      phpldap.Deref
	Attributes []string
	AttrsOnly  bool `mapstructure:"attrs_only"`
	SizeLimit  int  `mapstructure:"size_limit"`
	TimeLimit  int  `mapstructure:"time_limit"`
}

func New() Config {
	return Config{
		URI: "ldap://localhost",
	}
}

// Load reads and decodes a YAML run file. Use - for stdin.
func Load(path string) (Config, error) {
	c := New()
	values, err := ReadYaml(path)
	if err != nil {
		return c, err
	}
	err = c.LoadYaml(values)
	return c, err
}

// ReadYaml unmarshals YAML from a file path, or stdin if path is -.
func ReadYaml(path string) (values interface{}, err error) {
	var fo io.ReadCloser
	if path == "-" {
		slog.Info("Reading configuration from standard input.")
		fo = os.Stdin
	} else {
		fo, err = os.Open(path)
		if err != nil {
			return
		}
	}
	defer fo.Close()
	dec := yaml.NewDecoder(fo)
	err = dec.Decode(&values)
	return
}

// LoadYaml normalizes then decodes YAML data into the config.
func (c *Config) LoadYaml(values interface{}) error {
	root, err := NormalizeRoot(values)
	if err != nil {
		return err
	}
	return c.decode(root)
}

// decode wraps mapstructure for the config object.
func (c *Config) decode(root map[string]interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook,
		Metadata:         &mapstructure.Metadata{},
		Result:           c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return d.Decode(root)
}

// decodeHook parses scope and deref words. Implements
// mapstructure.DecodeHookFuncValue.
func decodeHook(from, to reflect.Value) (any, error) {
	switch to.Type() {
	case reflect.TypeOf(phpldap.Scope(0)):
		if from.Kind() != reflect.String {
			return nil, fmt.Errorf("scope: expected string, got %s", from.Kind())
		}
		return phpldap.ParseScope(from.String())
	case reflect.TypeOf(phpldap.Deref(0)):
		if from.Kind() != reflect.String {
			return nil, fmt.Errorf("deref: expected string, got %s", from.Kind())
		}
		return phpldap.ParseDeref(from.String())
	}
	return from.Interface(), nil
}
