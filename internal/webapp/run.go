package webapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"hashcrack/internal/config"
	"hashcrack/internal/logging"
	"hashcrack/internal/version"
)

// RunContext is the entrypoint behind cmd/hashcrack-web. Exit codes follow
// the CLI: 0 success, 2 usage, 3 runtime failure.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hashcrack-web", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "localhost:8080", "listen address")
	configPath := fs.String("config", "", "base config file applied to every run (optional)")
	logPath := fs.String("log", "logs/web_hashcrack.log", "log file path")
	verbose := fs.Bool("verbose", false, "mirror log records to stderr")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.Version)
		return 0
	}

	base := config.Default()
	if *configPath != "" {
		parsed, err := config.Parse(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 2
		}
		base = parsed
	}

	log, err := logging.New(*logPath, *verbose)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 3
	}
	defer log.Close()

	srv := New(*addr, base, log)
	go func() {
		<-srv.Ready()
		fmt.Fprintf(stdout, "hashcrack web ui at http://%s\n", srv.Addr())
	}()

	if err := srv.Serve(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 3
	}
	return 0
}
