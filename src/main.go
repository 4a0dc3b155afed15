// The Main function of coverscan. It parses the command line, sets up
// logging and runs one audit over the library root.
//
// At the moment it is in package src because I import it from the project's
// root folder.
package src

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ironsmile/coverscan/src/art"
	"github.com/ironsmile/coverscan/src/config"
	"github.com/ironsmile/coverscan/src/library"
	"github.com/ironsmile/coverscan/src/tags"
	"github.com/ironsmile/coverscan/src/version"
)

// Exit codes of the program. Usage errors are distinguished from scan
// failures so that scripts driving the scanner can tell them apart.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// The throttle applied between MusicBrainz API requests. They ask for no
// more than one request per second.
const musicBrainzDelay = time.Second

// Main is the only thing called from the project root main.go. It does a
// os.Exit with the appropriate status code once the run is over.
func Main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	cfg, printedVersion, err := parseFlags(args, stderr)
	if printedVersion {
		return exitOK
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	setUpLogging(stderr, cfg.Verbose)

	appFS := afero.NewOsFs()

	stat, err := appFS.Stat(cfg.Root)
	if err != nil || !stat.IsDir() {
		fmt.Fprintf(stderr, "coverscan: %s is not a readable directory\n", cfg.Root)
		return exitError
	}

	var finder art.Finder
	if cfg.DownloadMissingArtwork {
		useragent := fmt.Sprintf("coverscan/%s", version.Version)

		switch cfg.Source {
		case config.SourceMusicBrainz:
			finder = art.NewMusicBrainzClient(useragent, musicBrainzDelay, cfg.Timeout)
		default:
			finder = art.NewClient(useragent, cfg.Timeout)
		}
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	walker := library.New(appFS, tags.NewFileReader(appFS), finder, cfg, stdout)
	if _, err := walker.Walk(ctx); err != nil {
		log.Error().Err(err).Msg("scan failed")
		return exitError
	}

	return exitOK
}

// parseFlags turns the command line into a validated Config. The returned
// boolean is true when --version was given, in which case there is nothing
// more to do.
func parseFlags(args []string, stderr *os.File) (*config.Config, bool, error) {
	cfg := config.Default()

	fs := flag.NewFlagSet("coverscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: coverscan [flags] LIBRARY_ROOT\n\n")
		fmt.Fprintf(stderr, "Audits a music library for album artwork.\n\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.ScanMissingCover, "scan-missing-cover", false,
		"list album directories without a cover.jpg file")
	fs.BoolVar(&cfg.Extract, "extract", false,
		"write cover.jpg from embedded tag artwork where one is missing")
	fs.BoolVar(&cfg.ReportMissingArtwork, "report-missing-artwork", false,
		"list album directories without any artwork at all")
	fs.BoolVar(&cfg.DownloadMissingArtwork, "download-missing-artwork", false,
		"download cover.jpg from a catalog where nothing else is available")
	fs.BoolVar(&cfg.DryRun, "dry-run", false,
		"do not write any files, only log and count what would have been written")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.StringVar(&cfg.Source, "source", cfg.Source,
		"catalog used by --download-missing-artwork, one of itunes or musicbrainz")
	fs.IntVar(&cfg.MaxSize, "max-size", 0,
		"downscale written covers to at most this many pixels wide, 0 disables")

	var extensions config.ExtensionsFlag
	fs.Var(&extensions, "extensions",
		"audio file extensions, repeated or comma separated, replaces the defaults")

	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	if *showVersion {
		version.Print(stderr)
		return nil, true, nil
	}

	if len(extensions) > 0 {
		cfg.Extensions = config.NormalizeExtensions(extensions)
	}

	if fs.NArg() != 1 {
		err := fmt.Errorf("exactly one library root argument is required")
		fmt.Fprintf(stderr, "coverscan: %s\n", err)
		fs.Usage()
		return nil, false, err
	}
	cfg.Root = fs.Arg(0)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "coverscan: %s\n", err)
		return nil, false, err
	}

	return cfg, false, nil
}

// setUpLogging configures the global zerolog logger. Log output goes to
// stderr so that it never mixes with the report on stdout.
func setUpLogging(stderr *os.File, verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr})
}
