package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"smashers.dev/pkg/sitegen/internal/api"
	"smashers.dev/pkg/sitegen/internal/domain"
	m "smashers.dev/pkg/sitegen/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "sitegen"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	distFlagName     = "dist"
	configFlagName   = "config"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"
	strategyFlagName = "strategy"
	routeFlagName    = "route"
	verifyFlagName   = "verify"
	dryRunFlagName   = "dry-run"
	dataFlagName     = "data"
	portFlagName     = "port"
	apiFlagName      = "api"
	dateFlagName     = "date"

	distConfigKey     = "dist"
	templateConfigKey = "template"
	mountIDConfigKey  = "mount_id"
	pagesDirConfigKey = "pages_dir"
	dataConfigKey     = "data"
	routesConfigKey   = "routes"
	strategyConfigKey = "strategy"
	verifyConfigKey   = "verify"
	manifestConfigKey = "manifest"

	headlessPortKey       = "headless.port"
	headlessWaitKey       = "headless.wait"
	headlessNavTimeoutKey = "headless.nav_timeout"
	headlessIdleKey       = "headless.network_idle"
	headlessMinTextKey    = "headless.min_text"
	headlessRestrictedKey = "headless.restricted"
	headlessBinKey        = "headless.bin"

	servePortKey = "serve.port"

	apiBaseURLKey       = "api.base_url"
	apiTimeoutKey       = "api.timeout"
	apiSingleVisitIDKey = "api.single_visit_id"

	defaultDist       = "dist"
	defaultStrategy   = string(m.StrategyTemplate)
	defaultVerify     = false
	defaultManifest   = ".sitegen/manifest.json"
	defaultServePort  = 4173
	defaultAPITimeout = 10 * time.Second

	envPrefix = "SITEGEN"

	// restrictedHostEnv is set by the hosting platform whose build image
	// only ships a constrained Chromium.
	restrictedHostEnv = "VERCEL"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".sitegen.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

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
	viper.SetDefault(distConfigKey, defaultDist)
	viper.SetDefault(templateConfigKey, "")
	viper.SetDefault(mountIDConfigKey, domain.DefaultMountID)
	viper.SetDefault(pagesDirConfigKey, "")
	viper.SetDefault(dataConfigKey, "")
	viper.SetDefault(routesConfigKey, []string{})
	viper.SetDefault(strategyConfigKey, defaultStrategy)
	viper.SetDefault(verifyConfigKey, defaultVerify)
	viper.SetDefault(manifestConfigKey, defaultManifest)

	viper.SetDefault(headlessPortKey, domain.DefaultHeadlessPort)
	viper.SetDefault(headlessWaitKey, domain.DefaultReadinessTimeout.String())
	viper.SetDefault(headlessNavTimeoutKey, domain.DefaultNavigationTimeout.String())
	viper.SetDefault(headlessIdleKey, domain.DefaultNetworkIdle.String())
	viper.SetDefault(headlessMinTextKey, domain.DefaultMinTextLength)
	viper.SetDefault(headlessRestrictedKey, false)
	viper.SetDefault(headlessBinKey, "")
	// The hosting platform's marker variable also turns restricted mode on.
	_ = viper.BindEnv(headlessRestrictedKey, envPrefix+"_HEADLESS_RESTRICTED", restrictedHostEnv)

	viper.SetDefault(servePortKey, defaultServePort)

	viper.SetDefault(apiBaseURLKey, api.DefaultBaseURL)
	viper.SetDefault(apiTimeoutKey, defaultAPITimeout.String())
	viper.SetDefault(apiSingleVisitIDKey, domain.DefaultSingleVisitID)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	readConfig()
}

// readConfig loads the config file, treating a missing file as empty.
func readConfig() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		slog.Debug("Config file not loaded", "error", err)
	}
}

// restrictedFromEnv interprets the restricted-mode setting. Any non-empty
// value of the hosting marker counts as enabled.
func restrictedFromEnv() bool {
	raw := strings.TrimSpace(viper.GetString(headlessRestrictedKey))
	if raw == "" {
		return false
	}

	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}

	return enabled
}

// headlessArgs assembles the headless strategy settings from config.
func headlessArgs() domain.HeadlessArgs {
	return domain.HeadlessArgs{
		Port:              viper.GetInt(headlessPortKey),
		NavigationTimeout: viper.GetDuration(headlessNavTimeoutKey),
		ReadinessTimeout:  viper.GetDuration(headlessWaitKey),
		NetworkIdle:       viper.GetDuration(headlessIdleKey),
		MinTextLength:     viper.GetInt(headlessMinTextKey),
		Restricted:        restrictedFromEnv(),
		Bin:               viper.GetString(headlessBinKey),
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

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
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
