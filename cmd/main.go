package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/logger"
	"pomodoro/internal/metrics"
	"pomodoro/internal/platform"
	"pomodoro/internal/preferences"
	"pomodoro/internal/session"
	"pomodoro/internal/storage"
)

const appName = "pomodoro"

type options struct {
	configPath  string
	profile     string
	logLevel    string
	logDir      string
	tick        time.Duration
	metricsAddr string
	jsonOutput  bool
	initConfig  bool
}

func main() {
	if err := run(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	opts := parseFlags()

	if opts.configPath == "" {
		path, err := storage.DefaultPath(appName)
		if err != nil {
			return err
		}
		opts.configPath = path
	}

	if opts.initConfig {
		if err := storage.SaveSettings(opts.configPath, preferences.DefaultSettings()); err != nil {
			return err
		}
		fmt.Printf("wrote default settings to %s\n", opts.configPath)
		return nil
	}

	settings, err := storage.LoadSettings(opts.configPath, opts.profile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	applyFlags(&settings, opts)

	logger.SetLevel(settings.LogLevel)
	if settings.LogDir != "" {
		if err := logger.Init(settings.LogDir); err != nil {
			return err
		}
		defer func() {
			_ = logger.Close()
		}()
	}

	guard, err := platform.AcquireSingleInstance(appName + "/" + opts.profile)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	config := settings.Configuration()
	logger.Infof("configuration: concentration=%dm break=%dm longer_break=%dm count_until_longer_break=%d",
		config.ConcentrationMinutes, config.BreakMinutes, config.LongerBreakMinutes, config.CountUntilLongerBreak)

	metricsService := metrics.NewMetricsService()
	if opts.metricsAddr != "" {
		server := &http.Server{Addr: opts.metricsAddr, Handler: metricsHandler(metricsService), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("metrics server: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
		logger.Infof("serving metrics on %s/metrics", opts.metricsAddr)
	}

	machine := pomodoro.New(config)
	var runner *session.Runner
	printer := &statusPrinter{out: os.Stdout, config: config, json: opts.jsonOutput}
	runner = session.NewRunner(machine, session.Config{
		TickInterval: settings.TickInterval,
		Metrics:      metricsService,
		OnStep: func(snapshot pomodoro.Snapshot) {
			printer.maybePrint(runner.ID(), snapshot)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runner.Run(ctx)
	printer.print(runner.ID(), runner.Snapshot())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "settings file (default: user config dir)")
	flag.StringVar(&opts.profile, "profile", "", "profile path inside the settings file, e.g. work/deep")
	flag.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&opts.logDir, "log-dir", "", "directory for the rotated log file")
	flag.DurationVar(&opts.tick, "tick", 0, "poll interval")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.BoolVar(&opts.jsonOutput, "json", false, "print status lines as JSON")
	flag.BoolVar(&opts.initConfig, "init-config", false, "write default settings and exit")
	flag.Parse()
	return opts
}

// applyFlags applies command-line flag overrides on top of file and environment settings.
func applyFlags(settings *preferences.Settings, opts options) {
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if opts.logDir != "" {
		settings.LogDir = opts.logDir
	}
	if opts.tick > 0 {
		settings.TickInterval = opts.tick
	}
}

func metricsHandler(metricsService *metrics.MetricsService) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsService.Handler())
	return mux
}

type statusLine struct {
	Session      string         `json:"session"`
	State        pomodoro.State `json:"state"`
	BreakCount   int            `json:"break_count"`
	Elapsed      string         `json:"elapsed"`
	SplitElapsed string         `json:"split_elapsed"`
	Remaining    string         `json:"remaining"`
	At           time.Time      `json:"at"`
}

// statusPrinter writes a status line on every state change and once per elapsed minute.
type statusPrinter struct {
	out        io.Writer
	config     model.Configuration
	json       bool
	lastState  pomodoro.State
	lastMinute int64
}

func (printer *statusPrinter) maybePrint(sessionID string, snapshot pomodoro.Snapshot) {
	minute := int64(snapshot.Elapsed / time.Minute)
	if snapshot.State == printer.lastState && minute == printer.lastMinute {
		return
	}
	printer.print(sessionID, snapshot)
}

func (printer *statusPrinter) print(sessionID string, snapshot pomodoro.Snapshot) {
	printer.lastState = snapshot.State
	printer.lastMinute = int64(snapshot.Elapsed / time.Minute)

	line := statusLine{
		Session:      sessionID,
		State:        snapshot.State,
		BreakCount:   snapshot.BreakCount,
		Elapsed:      formatDuration(snapshot.Elapsed),
		SplitElapsed: formatDuration(snapshot.SplitElapsed),
		Remaining:    formatDuration(remaining(printer.config, snapshot)),
		At:           snapshot.At,
	}
	if printer.json {
		encoded, err := json.Marshal(line)
		if err != nil {
			logger.Errorf("encode status: %v", err)
			return
		}
		fmt.Fprintln(printer.out, string(encoded))
		return
	}
	fmt.Fprintf(printer.out, "%-16s breaks=%d elapsed=%s remaining=%s\n",
		line.State, line.BreakCount, line.Elapsed, line.Remaining)
}

// remaining returns the time left in the current phase.
func remaining(config model.Configuration, snapshot pomodoro.Snapshot) time.Duration {
	var left time.Duration
	switch snapshot.State {
	case pomodoro.StateConcentrating:
		left = time.Duration(config.ConcentrationMinutes)*time.Minute - snapshot.Elapsed
	case pomodoro.StateBreaking:
		left = time.Duration(config.BreakMinutes)*time.Minute - snapshot.SplitElapsed
	case pomodoro.StateLongerBreaking:
		left = time.Duration(config.LongerBreakMinutes)*time.Minute - snapshot.SplitElapsed
	}
	if left < 0 {
		return 0
	}
	return left
}

func formatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	seconds := int(duration.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
