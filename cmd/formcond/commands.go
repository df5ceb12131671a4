package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcond"
	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/forms/farajaland"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/openapi"
	"github.com/goliatone/go-formcond/pkg/report"
	"github.com/goliatone/go-formcond/pkg/resolver"
	"github.com/goliatone/go-formcond/pkg/tui"
	"github.com/goliatone/go-formcond/pkg/valuestore"
)

// exitError ends the process with code after the command already reported
// the problem.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// sourceFlags select where form versions come from.
type sourceFlags struct {
	forms   *string
	home    *string
	event   *string
	version *string
}

func addSourceFlags(fs *flag.FlagSet) sourceFlags {
	return sourceFlags{
		forms:   fs.String("forms", "", "directory of form documents (built-in Farajaland forms if empty)"),
		home:    fs.String("home", farajaland.CountryCode, "home country code for the built-in address fragment"),
		event:   fs.String("event", farajaland.EventBirth, "event type whose active version is used"),
		version: fs.String("version", "", "form version id (overrides -event)"),
	}
}

func (s sourceFlags) registry() (*form.Registry, error) {
	if *s.forms == "" {
		registry := form.NewRegistry()
		if err := farajaland.Register(registry); err != nil {
			return nil, err
		}
		return registry, nil
	}
	return formcond.LoadRegistry(os.DirFS(*s.forms),
		form.WithCountries(farajaland.Countries()),
		form.WithHomeCountry(*s.home),
	)
}

func (s sourceFlags) request() formcond.Request {
	return formcond.Request{VersionID: *s.version, EventType: *s.event}
}

func (s sourceFlags) formVersion(registry *form.Registry) (*form.Version, error) {
	if *s.version != "" {
		return registry.Version(*s.version)
	}
	return registry.Active(*s.event)
}

func loadStore(path string) (*valuestore.Store, error) {
	if path == "" {
		return valuestore.New(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return valuestore.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	return valuestore.FromJSON(data)
}

func loadHistory(path string) (action.History, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return action.ParseHistory(data)
}

func loadCatalog(dir string) (*message.Catalog, error) {
	if dir == "" {
		return nil, nil
	}
	return message.LoadCatalogFS(os.DirFS(dir))
}

func output(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func runResolve(env *environment, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	src := addSourceFlags(fs)
	valuesPath := fs.String("values", "", "JSON file of path -> value answers")
	historyPath := fs.String("history", "", "JSON file with the event's action history")
	format := fs.String("format", "text", "output format: text or json")
	locale := fs.String("locale", "en", "locale for labels and messages")
	catalogDir := fs.String("catalog", "", "directory of translation files")
	hidden := fs.Bool("hidden", false, "list hidden fields in text output")
	gate := fs.String("gate", "", "check whether this action may be submitted, e.g. DECLARE")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry, err := src.registry()
	if err != nil {
		return err
	}
	store, err := loadStore(*valuesPath)
	if err != nil {
		return err
	}
	history, err := loadHistory(*historyPath)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(*catalogDir)
	if err != nil {
		return err
	}

	engine := formcond.New(formcond.WithRegistry(registry), formcond.WithLogger(env.logger))
	req := src.request()
	req.Values = store.Snapshot()
	req.History = history

	ctx := context.Background()
	resp, err := engine.Resolve(ctx, req)
	if err != nil {
		return err
	}

	options := []report.Option{report.WithLocale(*locale), report.WithHidden(*hidden)}
	if catalog != nil {
		options = append(options, report.WithTranslator(catalog))
	}
	renderer, err := report.NewRenderer(options...)
	if err != nil {
		return err
	}
	rep := renderer.Build(resp.Version, resp.Result)
	if *format == "json" {
		err = renderer.JSON(os.Stdout, rep)
	} else {
		err = renderer.Text(os.Stdout, rep)
	}
	if err != nil {
		return err
	}

	if *gate == "" {
		return nil
	}
	sub, err := engine.Submit(ctx, req, action.Normalize(*gate))
	if errors.Is(err, resolver.ErrSubmissionBlocked) {
		fmt.Fprintln(os.Stderr, err)
		return exitError{code: 3}
	}
	if err != nil {
		return err
	}
	env.logger.Info("submission accepted", zap.String("version", sub.Version), zap.Int("fields", len(sub.Payload)))
	return nil
}

func runFill(env *environment, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	src := addSourceFlags(fs)
	valuesPath := fs.String("values", "", "JSON file to resume from and save to")
	locale := fs.String("locale", "en", "locale for prompts")
	catalogDir := fs.String("catalog", "", "directory of translation files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry, err := src.registry()
	if err != nil {
		return err
	}
	v, err := src.formVersion(registry)
	if err != nil {
		return err
	}
	store, err := loadStore(*valuesPath)
	if err != nil {
		return err
	}
	if _, err := store.Prefill(v.Defaults()); err != nil {
		return err
	}
	catalog, err := loadCatalog(*catalogDir)
	if err != nil {
		return err
	}

	options := []tui.Option{tui.WithLogger(env.logger), tui.WithLocale(*locale)}
	if catalog != nil {
		options = append(options, tui.WithTranslator(catalog))
	}
	filler, err := tui.NewFiller(v, store, options...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, fillErr := filler.Fill(ctx)
	if fillErr != nil && !errors.Is(fillErr, tui.ErrAborted) {
		return fillErr
	}

	out, err := output(*valuesPath)
	if err != nil {
		return err
	}
	defer out.Close()
	data, err := store.Snapshot().MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return err
	}
	env.logger.Debug("declaration saved",
		zap.Stringer("declaration", store.ID()),
		zap.Bool("valid", res.Valid()),
		zap.Bool("aborted", fillErr != nil),
	)
	return nil
}

func runExport(env *environment, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	src := addSourceFlags(fs)
	title := fs.String("title", "Declaration payloads", "document title")
	docVersion := fs.String("doc-version", "1.0.0", "document version")
	outPath := fs.String("o", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry, err := src.registry()
	if err != nil {
		return err
	}
	var versions []*form.Version
	for _, id := range registry.Versions() {
		v, err := registry.Version(id)
		if err != nil {
			return err
		}
		versions = append(versions, v)
	}
	data, err := openapi.Marshal(context.Background(), openapi.Document(*title, *docVersion, versions...))
	if err != nil {
		return err
	}

	out, err := output(*outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}
	env.logger.Debug("schemas exported", zap.Int("versions", len(versions)))
	return nil
}

type violation struct {
	file    string
	version string
	message string
}

func runLint(env *environment, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	home := fs.String("home", farajaland.CountryCode, "home country code for the built-in address fragment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var violations []violation
	for _, dir := range dirs {
		_, err := form.LoadFS(os.DirFS(dir),
			form.WithCountries(farajaland.Countries()),
			form.WithHomeCountry(*home),
		)
		if err == nil {
			continue
		}
		problems := form.ConfigErrors(err)
		if len(problems) == 0 {
			violations = append(violations, violation{file: dir, message: err.Error()})
			continue
		}
		for _, p := range problems {
			violations = append(violations, violation{file: dir, version: p.Version, message: p.Error()})
		}
	}

	if len(violations) == 0 {
		env.logger.Debug("forms are valid", zap.Strings("dirs", dirs))
		return nil
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].version == violations[j].version {
				return violations[i].message < violations[j].message
			}
			return violations[i].version < violations[j].version
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "%s: %s\n", v.file, v.message)
	}
	return exitError{code: 1}
}
