package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/dukerupert/dukanam/internal/config"
	"github.com/dukerupert/dukanam/internal/logging"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{}

func register(c command) {
	commands[c.name] = c
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("dukanam", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "marketplace API base URL")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "local state database path")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.AgentAddr, "agent-addr", cfg.AgentAddr, "sync agent listen address")
	flags.Usage = func() { usage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		usage(stderr, flags)
		return errors.New("no command given")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	logger := logging.SetupWriter(cfg.LogLevel, stderr)
	a, err := newApp(cfg, logger, stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	return cmd.run(ctx, a, rest[1:])
}

func usage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: dukanam [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}

// subFlags creates a flag set for a subcommand that reports errors
// instead of exiting.
func subFlags(name string, a *app) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}
