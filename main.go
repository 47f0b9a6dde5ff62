// mdformat reformats Markdown documents through an OpenAI-compatible
// chat-completions endpoint while leaving front matter untouched.
//
// Usage:
//
//	mdformat [-v] <command> [flags] [args]
//
//	format [--stdin] [--changed] [--max-tokens N] [--timeout D] <file|dir|glob>...
//	settings                       open the settings form
//	settings show                  print settings, API key masked
//	settings set <name> <value>    name is apiKey, apiUrl or model
//	models                         list preset models
//	version
//
// Environment (a .env file is loaded first when present):
//   - MDFORMAT_DB_PATH: SQLite file backing the settings store
//   - MDFORMAT_SETTINGS_BACKEND: "sqlite" (default) or "keyring"
//   - MDFORMAT_MAX_TOKENS, MDFORMAT_TIMEOUT: request limits
//   - MDFORMAT_HTTP_REFERER, MDFORMAT_APP_TITLE: attribution headers
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mdformat/internal/config"
	"mdformat/internal/utils"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mdformat: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	verbose := false
	for len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}
	if verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	if path, err := utils.LoadEnv(); err == nil {
		log.Printf("loaded environment from %s", path)
	}

	if len(args) == 0 {
		writeUsage(stderr)
		return errors.New("command required")
	}
	switch args[0] {
	case "-h", "--help", "help":
		writeUsage(stdout)
		return nil
	case "--version", "version":
		fmt.Fprintln(stdout, version)
		return nil
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	switch args[0] {
	case "format":
		return runFormat(ctx, cfg, args[1:], stdin, stdout, stderr)
	case "settings":
		return runSettings(ctx, cfg, args[1:], stdout, stderr)
	case "models":
		return withApp(ctx, cfg, stdin, stdout, stderr, func(a *App) error {
			a.ListModels()
			return nil
		})
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func writeUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: mdformat [-v] <command> [flags] [args]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  format [--stdin] [--changed] [--max-tokens N] [--timeout D] <file|dir|glob>...")
	fmt.Fprintln(out, "  settings [show | set <apiKey|apiUrl|model> <value>]")
	fmt.Fprintln(out, "  models")
	fmt.Fprintln(out, "  version")
}

func runFormat(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(stderr)
	useStdin := fs.Bool("stdin", false, "read the document from stdin and write the result to stdout")
	changed := fs.Bool("changed", false, "also format Markdown files changed in the current git worktree")
	maxTokens := fs.Int("max-tokens", cfg.MaxTokens, "max_tokens sent with each request")
	timeout := fs.Duration("timeout", cfg.Timeout, "per-request timeout, 0 to disable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.MaxTokens = *maxTokens
	cfg.Timeout = *timeout
	if err := cfg.Validate(); err != nil {
		return err
	}

	rest := fs.Args()
	if *useStdin && (len(rest) > 0 || *changed) {
		return errors.New("--stdin cannot be combined with files or --changed")
	}
	if !*useStdin && !*changed && len(rest) == 0 {
		return errors.New("format needs at least one file, --changed or --stdin")
	}

	return withApp(ctx, cfg, stdin, stdout, stderr, func(a *App) error {
		if *useStdin {
			return a.FormatStream()
		}
		return a.FormatFiles(rest, *changed)
	})
}

func runSettings(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return withApp(ctx, cfg, nil, stdout, stderr, func(a *App) error {
			return a.EditSettings()
		})
	}
	switch args[0] {
	case "show":
		return withApp(ctx, cfg, nil, stdout, stderr, func(a *App) error {
			a.ShowSettings()
			return nil
		})
	case "set":
		if len(args) != 3 {
			return errors.New("usage: mdformat settings set <apiKey|apiUrl|model> <value>")
		}
		return withApp(ctx, cfg, nil, stdout, stderr, func(a *App) error {
			if err := a.SetSetting(args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "saved %s\n", args[1])
			return nil
		})
	default:
		return fmt.Errorf("unknown settings command: %s", args[0])
	}
}

// withApp starts an App for one command and shuts it down afterwards.
func withApp(ctx context.Context, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer, fn func(*App) error) error {
	app := NewApp(cfg)
	if stdin != nil {
		app.stdin = stdin
	}
	app.stdout = stdout
	app.stderr = stderr
	if err := app.startup(ctx); err != nil {
		return err
	}
	defer app.shutdown()
	return fn(app)
}
