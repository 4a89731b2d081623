// Package cmd implements the phpldap command line.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/phpldap/phpldap"
	"github.com/phpldap/phpldap/internal/config"
	"github.com/phpldap/phpldap/internal/rc"
)

func Main() {
	defer logPanic()

	// Bootstrap logging first to log in setup.
	SetLoggingHandler(slog.LevelInfo, defaultColor())
	if err := SetupLogging(); err != nil {
		slog.Error("Fatal error.", "err", err)
		os.Exit(1)
	}
	setupFlags()
	if k.Bool("help") {
		pflag.Usage()
		return
	} else if k.Bool("version") {
		showVersion()
		return
	}

	SetLoggingHandler(logLevel(), k.Bool("color") || defaultColor())
	slog.Info("Starting phpldap",
		"version", version(),
		"runtime", runtime.Version(),
		"commit", commit,
		"pid", os.Getpid(),
	)

	err := run()
	if err != nil {
		slog.Error("Fatal error.", "err", err)
		var ec errorCode
		if errors.As(err, &ec) {
			ec.Exit()
		}
		os.Exit(1)
	}
}

func run() error {
	err := rc.Initialize(pflag.CommandLine)
	if err != nil {
		return err
	}

	c, err := buildConfig()
	if err != nil {
		return err
	}
	if len(c.Searches) == 0 {
		return errorCode{code: 2, message: "nothing to search; pass a filter or a run file"}
	}

	link := phpldap.Connect(c.URI, c.Port)
	slog.Debug("Prepared session.", "uri", link.URI())

	if v := k.Int("protocol-version"); v != 0 {
		if !phpldap.SetOption(link, phpldap.OptProtocolVersion, v) {
			return errorCode{code: 2, message: fmt.Sprintf("bad protocol version: %d", v)}
		}
	}
	if k.Bool("referrals") {
		phpldap.SetOption(link, phpldap.OptReferrals, 1)
	}

	if !phpldap.Bind(link, c.BindDN, c.Password) {
		return errorCode{code: 49, message: "bind failed"}
	}
	defer phpldap.Unbind(link)

	for _, search := range c.Searches {
		result := link.Search(
			search.Base, search.Filter, search.Attributes,
			search.AttrsOnly, search.SizeLimit, search.TimeLimit,
			search.Deref, search.Scope,
		)
		entries := phpldap.GetEntries(link, result)
		if entries == nil {
			return errorCode{code: 1, message: fmt.Sprintf("search failed: %s", search.Filter)}
		}
		fmt.Print(PrintR(entries))
		slog.Info("Search done.", "base", search.Base, "filter", search.Filter, "entries", entries.Count)
	}
	return nil
}

// buildConfig merges the run file or the rc options with command line
// arguments: the first argument is the filter, the rest the attributes.
func buildConfig() (config.Config, error) {
	if path := k.String("config"); path != "" {
		slog.Info("Using YAML run file.", "path", path)
		return config.Load(path)
	}

	c := config.New()
	c.URI = rc.String("URI")
	c.Port = rc.Int("PORT")
	c.BindDN = rc.String("BINDDN")
	c.Password = rc.String("PASSWORD")

	args := pflag.Args()
	if len(args) == 0 {
		return c, nil
	}

	scope, err := phpldap.ParseScope(valueOr(k.String("scope"), rc.String("SCOPE")))
	if err != nil {
		return c, errorCode{code: 2, message: err.Error()}
	}
	deref, err := phpldap.ParseDeref(valueOr(k.String("deref"), rc.String("DEREF")))
	if err != nil {
		return c, errorCode{code: 2, message: err.Error()}
	}

	search := config.Search{
		Base:      rc.String("BASE"),
		Filter:    args[0],
		Scope:     scope,
		Deref:     deref,
		AttrsOnly: k.Bool("attrs-only"),
		SizeLimit: k.Int("size-limit"),
		TimeLimit: k.Int("time-limit"),
	}
	if len(args) > 1 {
		search.Attributes = args[1:]
	}
	c.Searches = append(c.Searches, search)
	return c, nil
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func logPanic() {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("Panic!", "err", r)
	os.Exit(1)
}
