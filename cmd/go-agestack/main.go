package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/tartampluch/go-agestack/internal/chronology"
	"github.com/tartampluch/go-agestack/internal/config"
	"github.com/tartampluch/go-agestack/internal/server"
	"github.com/tartampluch/go-agestack/internal/source"
	"github.com/tartampluch/go-agestack/internal/timeline"
)

// options collects the parsed CLI flags.
type options struct {
	contacts     string
	photos       string
	person       string
	user         string
	password     string
	savePassword bool
	granularity  string
	order        string
	serve        string
	lang         string
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	var opts options
	flag.StringVar(&opts.contacts, config.FlagContacts, "", config.FlagDescContacts)
	flag.StringVar(&opts.photos, config.FlagPhotos, "", config.FlagDescPhotos)
	flag.StringVar(&opts.person, config.FlagPerson, "", config.FlagDescPerson)
	flag.StringVar(&opts.user, config.FlagUser, "", config.FlagDescUser)
	flag.StringVar(&opts.password, config.FlagPassword, "", config.FlagDescPassword)
	flag.BoolVar(&opts.savePassword, config.FlagSavePassword, false, config.FlagDescSavePassword)
	flag.StringVar(&opts.granularity, config.FlagGranularity, config.DefaultGranularity, config.FlagDescGranularity)
	flag.StringVar(&opts.order, config.FlagOrder, config.OrderClosestName, config.FlagDescOrder)
	flag.StringVar(&opts.serve, config.FlagServe, "", config.FlagDescServe)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the collaborators and executes the requested mode: store a
// password, print the chronology once, or serve it until cancelled.
func run(ctx context.Context, opts options) error {
	if opts.savePassword {
		return source.SavePassword(opts.user, opts.password)
	}

	granularity, err := parseGranularity(opts.granularity)
	if err != nil {
		return err
	}
	reversed, err := parseOrder(opts.order)
	if err != nil {
		return err
	}

	person, err := loadPerson(opts)
	if err != nil {
		return err
	}

	photos, err := loadPhotos(ctx, opts)
	if err != nil {
		return err
	}

	// Route everything through the library so photo identity stays unique
	// and the grouping input is chronologically sorted.
	lib := source.NewLibrary()
	lib.UpdatePerson(person)
	for _, p := range photos {
		lib.AddPhoto(person.ID, p)
	}

	translator := timeline.NewTranslator(opts.lang)
	gen := &timeline.Generator{
		Clock:         chronology.RealClock{},
		FormatSummary: translator.Summary,
		CalendarName:  translator.Msg(config.TKeyCalName),
	}

	feed, buckets, err := gen.Build(person, lib.Photos(person.ID), timeline.BuildConfig{
		Granularity: granularity,
		Reversed:    reversed,
	})
	if err != nil {
		return err
	}

	printChronology(person, buckets)

	if opts.serve == "" {
		return nil
	}

	srv := server.NewChronologyServer(opts.serve)
	if err := srv.Update(feed, buckets); err != nil {
		return err
	}
	return srv.Start(ctx)
}

// loadPerson reads the contacts file and selects the tracked person.
func loadPerson(opts options) (chronology.Person, error) {
	if opts.contacts == "" {
		return chronology.Person{}, errors.New(config.ErrContactsRequired)
	}

	f, err := os.Open(opts.contacts)
	if err != nil {
		return chronology.Person{}, err
	}
	defer func() { _ = f.Close() }()

	persons, err := source.LoadPersons(f)
	if err != nil {
		return chronology.Person{}, err
	}

	if opts.person == "" {
		return persons[0], nil
	}
	for _, p := range persons {
		if strings.EqualFold(p.Name, opts.person) {
			return p, nil
		}
	}
	return chronology.Person{}, fmt.Errorf("%s: %q", config.ErrPersonNotFound, opts.person)
}

// loadPhotos reads the manifest from a local file or a remote URL. Remote
// credentials fall back to the system keyring when no password flag is set.
func loadPhotos(ctx context.Context, opts options) ([]chronology.Photo, error) {
	if opts.photos == "" {
		return nil, errors.New(config.ErrPhotosRequired)
	}

	var reader io.ReadCloser
	if isRemote(opts.photos) {
		pass := opts.password
		if pass == "" && opts.user != "" {
			pass = source.LoadPassword(opts.user)
		}
		fetcher := source.NewHTTPFetcher()
		rc, err := fetcher.Fetch(ctx, opts.photos, opts.user, pass)
		if err != nil {
			return nil, err
		}
		reader = rc
	} else {
		f, err := os.Open(opts.photos)
		if err != nil {
			return nil, err
		}
		reader = f
	}
	defer func() { _ = reader.Close() }()

	return source.DecodePhotos(reader)
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, config.SchemeHTTP+"://") ||
		strings.HasPrefix(path, config.SchemeHTTPS+"://")
}

// printChronology writes the ordered buckets with their resolved windows to
// stdout.
func printChronology(person chronology.Person, buckets []chronology.Bucket) {
	age := ""
	if a, err := chronology.Calculate(person.DateOfBirth, time.Now()); err == nil {
		age = a.String()
	}
	fmt.Printf("%s (born %s): %s\n",
		person.Name, person.DateOfBirth.Format(config.DateFormatFullDash), age)

	for _, b := range buckets {
		window := ""
		if start, end, err := chronology.ResolveRange(b.Label, person.DateOfBirth); err == nil {
			from := "..."
			if !start.IsZero() {
				from = start.Format(config.DateFormatFullDash)
			}
			window = fmt.Sprintf("[%s .. %s)", from, end.Format(config.DateFormatFullDash))
		}
		fmt.Printf("  %-32s %4d  %s\n", b.Label.String(), len(b.Photos), window)
	}
}

func parseGranularity(name string) (chronology.Granularity, error) {
	switch name {
	case config.GranularityFineName:
		return chronology.Fine, nil
	case config.GranularityCoarseName:
		return chronology.Coarse, nil
	default:
		return chronology.Fine, fmt.Errorf("%s: %q", config.ErrGranularity, name)
	}
}

func parseOrder(name string) (bool, error) {
	switch name {
	case config.OrderClosestName:
		return false, nil
	case config.OrderReversedName:
		return true, nil
	default:
		return false, fmt.Errorf("%s: %q", config.ErrOrder, name)
	}
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stderr so the printed chronology stays clean.
	writers = append(writers, os.Stderr)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
