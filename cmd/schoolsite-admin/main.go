package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/target/schoolsite-ui/config"
	"github.com/target/schoolsite-ui/internal/adapters/backend"
	redisadapter "github.com/target/schoolsite-ui/internal/adapters/redis"
	"github.com/target/schoolsite-ui/internal/bootstrap"
	"github.com/target/schoolsite-ui/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const commandTimeout = 2 * time.Minute

func main() {
	logger := bootstrap.InitLogger(false)

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"list-sessions": {
			name:        "list-sessions",
			description: "List stored admin sessions with their owner and remaining TTL",
			run:         runListSessions,
		},
		"clear-sessions": {
			name:        "clear-sessions",
			description: "Delete every stored admin session, signing all administrators out",
			run:         runClearSessions,
		},
		"check-api": {
			name:        "check-api",
			description: "Fetch the public school profile to verify the content API is reachable",
			run:         runCheckAPI,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: schoolsite-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type clearOptions struct {
	DryRun bool
	Yes    bool
}

func parseClearFlags(args []string) (clearOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearOptions
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Count sessions without deleting them")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearOptions{}, err
	}
	return opts, nil
}

func runListSessions(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	store, closeFn, err := openSessionStore(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	sessions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	return renderSessions(sessions)
}

func renderSessions(sessions []redisadapter.SessionSummary) error {
	if len(sessions) == 0 {
		return writeln(os.Stdout, "(no sessions found)")
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if err := writeln(w, "SESSION\tADMIN\tCREATED\tTTL"); err != nil {
		return fmt.Errorf("print session header: %w", err)
	}
	for _, s := range sessions {
		admin := s.Admin
		if admin == "" {
			admin = "-"
		}
		if err := writef(w, "%s\t%s\t%s\t%s\n",
			shortID(s.ID), admin, s.CreatedAt.Format(time.RFC3339), renderTTL(s.TTL)); err != nil {
			return fmt.Errorf("print session row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush session table: %w", err)
	}
	return writef(os.Stdout, "\nTotal sessions: %d\n", len(sessions))
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(opts, "delete every admin session"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	store, closeFn, err := openSessionStore(cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := store.Purge(ctx, opts.DryRun)
	if err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d sessions\n", n)
	}
	cmdCtx.Logger.Info("clear sessions complete", "deleted", n)
	return writef(os.Stdout, "Deleted %d sessions\n", n)
}

func runCheckAPI(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, cmdCtx.Config.Backend.Timeout+time.Second)
	defer cancel()

	client, err := backend.NewPublic(backend.Config{
		BaseURL:     cmdCtx.Config.Backend.BaseURL,
		Timeout:     cmdCtx.Config.Backend.Timeout,
		UserAgent:   cmdCtx.Config.Backend.UserAgent,
		MessagePath: cmdCtx.Config.Backend.MessagePath,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	public := service.NewPublicService(service.PublicServiceOptions{Client: client})

	start := time.Now()
	info, err := public.SchoolInfo(ctx)
	if err != nil {
		return fmt.Errorf("content API at %s: %w", cmdCtx.Config.Backend.BaseURL, err)
	}

	name := "(no school profile saved yet)"
	if info != nil && info.SchoolName != "" {
		name = info.SchoolName
	}
	return writef(os.Stdout, "Content API %s is reachable (%s): %s\n",
		cmdCtx.Config.Backend.BaseURL, time.Since(start).Round(time.Millisecond), name)
}

func confirmAction(opts clearOptions, action string) error {
	if opts.DryRun || opts.Yes {
		return nil
	}

	if err := writef(os.Stdout, "About to %s.\n", action); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := write(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func renderTTL(d time.Duration) string {
	switch d {
	case -1 * time.Second:
		return "no expiry"
	case -2 * time.Second:
		return "key missing"
	default:
		return d.Round(time.Second).String()
	}
}

// shortID keeps enough of a session ID to tell rows apart without printing a usable cookie value.
func shortID(id string) string {
	const keep = 8
	if len(id) <= keep {
		return id
	}
	return id[:keep] + "…"
}
