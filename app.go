package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"gorm.io/gorm/logger"

	"mdformat/internal/config"
	"mdformat/internal/database"
	"mdformat/internal/editor"
	"mdformat/internal/events"
	"mdformat/internal/formatter"
	"mdformat/internal/llm/client"
	"mdformat/internal/services"
	"mdformat/internal/ui"
	"mdformat/internal/utils"
)

// App holds the wired services for one CLI invocation.
type App struct {
	ctx       context.Context
	cfg       config.Config
	services  *services.Services
	client    *client.ChatClient
	formatter *formatter.Formatter
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	dbClose   func() error
}

// NewApp creates a new App bound to the process streams.
func NewApp(cfg config.Config) *App {
	return &App{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// startup opens the settings store, loads the persisted settings and builds
// the formatter.
func (a *App) startup(ctx context.Context) error {
	a.ctx = ctx

	var svc *services.Services
	var err error
	switch a.cfg.SettingsBackend {
	case config.BackendKeyring:
		ring, kerr := services.OpenKeyring()
		if kerr != nil {
			return fmt.Errorf("failed to open keyring: %w", kerr)
		}
		svc, err = services.NewKeyringServices(ring)
	default:
		db, derr := database.Init(database.Config{
			Path:     a.cfg.DBPath,
			LogLevel: logger.Warn,
		})
		if derr != nil {
			return fmt.Errorf("failed to open database: %w", derr)
		}
		a.dbClose = func() error { return database.Close(db) }
		svc, err = services.NewDbServices(db)
	}
	if err != nil {
		return err
	}
	svc.Git.Startup(ctx)
	a.services = svc

	if _, err := svc.Settings.Load(ctx); err != nil {
		// Defaults stay in effect; the next save overwrites the bad data.
		log.Printf("failed to load settings, using defaults: %v", err)
	}

	a.client, err = client.NewChatClient(client.Options{
		MaxTokens: a.cfg.MaxTokens,
		Timeout:   a.cfg.Timeout,
		Referer:   a.cfg.Referer,
		Title:     a.cfg.AppTitle,
	})
	if err != nil {
		return err
	}
	a.formatter = formatter.New(svc.Settings, a.client)
	return nil
}

// shutdown releases the database handle.
func (a *App) shutdown() {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
		a.dbClose = nil
	}
}

// FormatFiles formats every document named by args. Globs and directories
// are expanded; with changed set the Markdown files modified in the current
// git worktree are added. Files are processed one after another and a
// failure does not stop the rest.
func (a *App) FormatFiles(args []string, changed bool) error {
	paths, err := utils.ExpandDocumentArgs(args)
	if err != nil {
		return err
	}
	if changed {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		files, err := a.services.Git.ChangedMarkdownFiles(wd)
		if err != nil {
			return err
		}
		paths = appendUnique(paths, files...)
	}
	if len(paths) == 0 {
		return errors.New("no documents to format")
	}

	var failed int
	for _, p := range paths {
		start := time.Now()
		ctx := events.WithSession(a.ctx, p)
		sink := events.NewNotifier(ctx, a.stderr)
		if err := a.formatter.FormatDocument(ctx, editor.NewFileEditor(p), sink); err != nil {
			failed++
			continue
		}
		log.Printf("formatted %s in %s", p, time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(paths))
	}
	return nil
}

// FormatStream formats stdin and writes the result to stdout. Notices go to
// stderr so the output stays clean.
func (a *App) FormatStream() error {
	sink := events.NewNotifier(a.ctx, a.stderr)
	return a.formatter.FormatDocument(a.ctx, editor.NewStreamEditor(a.stdin, a.stdout), sink)
}

// EditSettings opens the terminal settings form.
func (a *App) EditSettings() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	return ui.NewSettingsForm(a.ctx, screen, a.services.Settings).Run()
}

// ShowSettings prints the current settings with the API key masked.
func (a *App) ShowSettings() {
	s := a.services.Settings.Current()
	key := "(not set)"
	if s.APIKey != "" {
		key = utils.MaskSecret(s.APIKey)
	}
	fmt.Fprintf(a.stdout, "apiKey: %s\n", key)
	fmt.Fprintf(a.stdout, "apiUrl: %s\n", s.APIURL)
	fmt.Fprintf(a.stdout, "model:  %s\n", s.Model)
}

// SetSetting sets one field by its stored name and persists it.
func (a *App) SetSetting(name, value string) error {
	settings := a.services.Settings
	switch name {
	case "apiKey":
		return settings.SetAPIKey(a.ctx, value)
	case "apiUrl":
		return settings.SetAPIURL(a.ctx, value)
	case "model":
		return settings.SetModel(a.ctx, value)
	default:
		return fmt.Errorf("unknown setting %q (want apiKey, apiUrl or model)", name)
	}
}

// ListModels prints the preset models, marking the selected one.
func (a *App) ListModels() {
	current := a.services.Settings.Current().Model
	for _, m := range a.services.Models.List() {
		marker := " "
		if m.Key == current {
			marker = "*"
		}
		fmt.Fprintf(a.stdout, "%s %-32s %s\n", marker, m.Key, m.DisplayName)
	}
	if !a.services.Models.Has(current) {
		fmt.Fprintf(a.stdout, "* %-32s (custom)\n", current)
	}
}

// appendUnique adds paths not already in dst, comparing absolute forms so a
// relative argument and a worktree path for the same file collapse.
func appendUnique(dst []string, more ...string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, p := range dst {
		seen[absPath(p)] = struct{}{}
	}
	for _, p := range more {
		key := absPath(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, p)
	}
	return dst
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
