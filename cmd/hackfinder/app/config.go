package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// EnvPrefix prefixes every hackfinder environment variable.
const EnvPrefix = "HACKFINDER"

// apiKeyEnvs are the source API key variables that may also be set in the
// config file, lower-cased (e.g. luma_api_key).
var apiKeyEnvs = []string{
	"DEVPOST_API_KEY",
	"MLH_API_KEY",
	"LUMA_API_KEY",
	"DEV_EVENTS_API_KEY",
}

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Update configuration
	DataDir        string
	SourcesFile    string
	ArchiveAfter   time.Duration
	CaliforniaOnly bool
	FetchTimeout   time.Duration

	// APIKeys maps a source key variable name to its value
	APIKeys map[string]string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL or the config file.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (HACKFINDER_*)
// 3. .env files
// 4. Config file (./.hackfinder.yaml or ~/.hackfinder.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(EnvPrefix + "_CONFIG"))
}

// LoadConfigFile loads configuration reading the given config file, which
// must exist.
func LoadConfigFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.NewConfigError("config", "config file path is empty", errors.ErrInvalidInput)
	}
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("data_dir", ".")
	v.SetDefault("archive_days", int(constants.ArchiveAfter/(24*time.Hour)))
	v.SetDefault("california_only", true)
	v.SetDefault("fetch_timeout", constants.SourceFetchTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if err := bindUnprefixed(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".hackfinder")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:        v.GetString("data_dir"),
		SourcesFile:    v.GetString("sources_file"),
		ArchiveAfter:   time.Duration(v.GetInt("archive_days")) * 24 * time.Hour,
		CaliforniaOnly: v.GetBool("california_only"),
		FetchTimeout:   v.GetDuration("fetch_timeout"),

		APIKeys: make(map[string]string, len(apiKeyEnvs)),

		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}

	for _, env := range apiKeyEnvs {
		if value := v.GetString(strings.ToLower(env)); value != "" {
			config.APIKeys[env] = value
		}
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = constants.SourceFetchTimeout
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// bindUnprefixed binds the variables that keep their conventional names:
// the source API keys and the logging settings shared with pkg/logging.
func bindUnprefixed(v *viper.Viper) error {
	bindings := map[string]string{
		"log_level":  "LOG_LEVEL",
		"log_format": "LOG_FORMAT",
		"log_output": "LOG_OUTPUT",
	}
	for _, env := range apiKeyEnvs {
		bindings[strings.ToLower(env)] = env
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.NewConfigError("config", "cannot bind "+env, err)
		}
	}
	return nil
}
