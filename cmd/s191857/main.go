package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/S191857/robot/internal/config"
	"github.com/S191857/robot/internal/dispatcher"
	"github.com/S191857/robot/internal/logging"
	intOtel "github.com/S191857/robot/internal/otel"
	"github.com/S191857/robot/internal/robot"
	"github.com/S191857/robot/pkg/torcs"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	Description string = "Heuristic driver: friction-limited corner speeds, look-ahead braking"
)

// RobotIndex is the host index of the single robot this module drives.
const RobotIndex = 1

var (
	// ModulePath is the absolute path to this library file.
	ModulePath string

	// ModuleFolder is the parent folder of ModulePath. Config is read from here.
	ModuleFolder string

	LogFilePath string
	LogFile     *os.File

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	Driver *robot.Driver

	SessionStartTime time.Time = time.Now()
)

// init is run automatically when the host loads the module
func init() {
	var err error

	ModulePath, err = torcs.ModulePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", torcs.ModuleName, err)
		ModulePath = "."
	}
	ModuleFolder = filepath.Dir(ModulePath)

	registry, err := setup(ModuleFolder)
	if err != nil {
		Logger.Error("Module setup failed, robot will not drive", "error", err)
		return
	}
	torcs.SetRegistry(registry)
}

// setup loads config, starts logging and metrics, and registers the driver.
func setup(moduleFolder string) (*torcs.Registry, error) {
	SlogManager = logging.NewSlogManager()
	SlogManager.SetRaceProvider(raceContext)
	SlogManager.Setup(nil, "info")
	Logger = SlogManager.Logger()

	if err := config.Load(moduleFolder); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "file", viper.ConfigFileUsed())
	}

	logsDir := config.GetString("logsDir")
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(moduleFolder, logsDir)
	}
	LogFilePath = logging.LogFilePath(logsDir, torcs.ModuleName, SessionStartTime)

	var err error
	LogFile, err = logging.OpenLogFile(LogFilePath)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	var logSink io.Writer
	if LogFile != nil {
		logSink = LogFile
	}
	SlogManager.Setup(logSink, config.GetString("logLevel"))
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath, "version", CurrentVersion, "build", BuildDate)

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:     otelCfg.Enabled && logSink != nil,
		ServiceName: otelCfg.ServiceName,
		Writer:      logSink,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OTel provider: %w", err)
	}
	if OTelProvider.Enabled() {
		otel.SetMeterProvider(OTelProvider.MeterProvider())
		Logger.Info("OTel provider initialized", "file", LogFilePath)
	}

	d, err := dispatcher.New(Logger)
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}

	params := config.GetDrivingParams()
	Driver, err = robot.NewDriver(params,
		robot.WithLogger(Logger),
		robot.WithFlush(flushTelemetry),
	)
	if err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}

	registry := torcs.NewRegistry(d, Logger)
	if err := registry.Register(RobotIndex, torcs.ModuleName, Description, Driver); err != nil {
		return nil, fmt.Errorf("registering driver: %w", err)
	}

	Logger.Info("Robot registered",
		"index", RobotIndex,
		"gravity", params.Gravity,
		"steerGain", params.SteerGain,
		"shiftUpRatio", params.ShiftUpRatio,
	)
	return registry, nil
}

func raceContext() (string, string) {
	if Driver == nil {
		return "", ""
	}
	return Driver.Context()
}

// flushTelemetry pushes metrics and buffered log lines to disk.
func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if OTelProvider != nil {
		if err := OTelProvider.Flush(ctx); err != nil {
			Logger.Warn("Failed to flush OTel data", "error", err)
		}
	}
	if LogFile != nil {
		if err := LogFile.Sync(); err != nil {
			Logger.Warn("Failed to sync log file", "error", err)
		}
	}
}

func main() {}
