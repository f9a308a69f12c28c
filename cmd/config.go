package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"trojanscope.dev/pkg/trojanscope/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "trojanscope"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName           = "output"
	traceFlagName            = "trace"
	thresholdFlagName        = "threshold"
	baselineMarkerFlagName   = "baseline-marker"
	candidateMarkerFlagName  = "candidate-marker"
	flagBaselineOnlyFlagName = "flag-baseline-only"
	allFlagName              = "all"
	diffFlagName             = "diff"
	noPlotFlagName           = "no-plot"
	maxSignalsFlagName       = "max"
	minSignalsFlagName       = "min"
	keywordsFlagName         = "keywords"
	signalFlagName           = "signal"
	horizonFlagName          = "horizon"
	logFileFlagName          = "log-file"
	verboseFlagName          = "verbose"

	outputConfigKey           = "output"
	traceConfigKey            = "trace"
	thresholdConfigKey        = "analysis.threshold_pct"
	baselineMarkerConfigKey   = "analysis.baseline_marker"
	candidateMarkerConfigKey  = "analysis.candidate_marker"
	flagBaselineOnlyConfigKey = "analysis.flag_baseline_only"
	maxSignalsConfigKey       = "waveform.max_signals"
	minSignalsConfigKey       = "waveform.min_signals"
	keywordsConfigKey         = "waveform.priority_keywords"
	horizonConfigKey          = "waveform.horizon"

	defaultOutputDir        = "."
	defaultTrace            = "activity.vcd"
	defaultBaselineMarker   = "UUT_clean."
	defaultCandidateMarker  = "UUT_trojan."
	defaultFlagBaselineOnly = false
	defaultMaxSignals       = 15
	defaultMinSignals       = 10
	defaultHorizon          = 0

	envPrefix = "TROJANSCOPE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".trojanscope.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultKeywords orders the name fragments the waveform viewer looks for first.
var defaultKeywords = []string{"result", "A", "B", "op", "trojan", "clean"}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputConfigKey, defaultOutputDir)
	viper.SetDefault(traceConfigKey, defaultTrace)
	viper.SetDefault(thresholdConfigKey, domain.DefaultThresholdPct)
	viper.SetDefault(baselineMarkerConfigKey, defaultBaselineMarker)
	viper.SetDefault(candidateMarkerConfigKey, defaultCandidateMarker)
	viper.SetDefault(flagBaselineOnlyConfigKey, defaultFlagBaselineOnly)
	viper.SetDefault(maxSignalsConfigKey, defaultMaxSignals)
	viper.SetDefault(minSignalsConfigKey, defaultMinSignals)
	viper.SetDefault(keywordsConfigKey, defaultKeywords)
	viper.SetDefault(horizonConfigKey, defaultHorizon)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("Failed to read config file", "file", configFileName, "error", err)
		}
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
