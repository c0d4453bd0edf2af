package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel    zerolog.Level
	LogPretty   bool
	CommandFlag string
	ArgFlag     string
	Disabled    []string
}

// Load reads cmdbus.toml from the given paths and CMDBUS_* environment variables. A missing config file
// is not an error.
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("cmdbus")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("cmdbus")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("cli.command_flag", "-command=")
	v.SetDefault("cli.arg_flag", "-arg=")
	v.SetDefault("cli.disabled", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	level, err := parseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, err
	}

	commandFlag := v.GetString("cli.command_flag")
	argFlag := v.GetString("cli.arg_flag")
	if commandFlag == "" || argFlag == "" {
		return nil, errors.New("cli.command_flag and cli.arg_flag must not be empty")
	}
	if commandFlag == argFlag {
		return nil, fmt.Errorf("cli.command_flag and cli.arg_flag must differ, both are %q", commandFlag)
	}

	return &Config{
		LogLevel:    level,
		LogPretty:   v.GetBool("log.pretty"),
		CommandFlag: commandFlag,
		ArgFlag:     argFlag,
		Disabled:    stringList(v, "cli.disabled"),
	}, nil
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return parsed, nil
}

// stringList reads a list key. A plain string value, as set through the environment, is split on commas
// and whitespace.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return strings.FieldsFunc(raw, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	}

	return v.GetStringSlice(key)
}

// Logger builds the process logger: JSON on stderr, or console output when LogPretty is set.
func (c *Config) Logger() zerolog.Logger {
	if c.LogPretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
