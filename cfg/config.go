package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = ":8080"
	defaultAPIEndpoint    = "https://8oxqs9zlt6.execute-api.us-east-1.amazonaws.com/dev/shorten"
	defaultDisplayBase    = "https://omteja04.github.io"
	defaultRequestTimeout = time.Duration(0)
	defaultLogLevel       = "info"
	defaultSessionSecret  = "shortlink form secret"
)

var (
	ErrEmptyServerAddress = errors.New("server address must not be empty")
	ErrInvalidAPIEndpoint = errors.New("api endpoint must be an absolute URL")
	ErrInvalidDisplayBase = errors.New("display base must be an absolute URL")
	ErrNegativeTimeout    = errors.New("request timeout must not be negative")
	ErrEmptySessionSecret = errors.New("session secret must not be empty")
)

// Config хранит настройки сервиса.
// APIEndpoint и DisplayBase - те самые константы формы, вынесенные в конфиг,
// чтобы в тестах можно было подсунуть мок сервиса сокращения.
type Config struct {
	ServerAddress  string        `json:"server_address"`
	APIEndpoint    string        `json:"api_endpoint"`
	DisplayBase    string        `json:"display_base"`
	RequestTimeout time.Duration `json:"-"`
	LogLevel       string        `json:"log_level"`
	SessionSecret  string        `json:"session_secret"`
}

// fileConfig - представление JSON файла конфигурации.
// Таймаут в файле задается строкой вида "5s".
type fileConfig struct {
	Config
	RequestTimeout string `json:"request_timeout"`
}

// GetConfig читает конфигурацию из флагов командной строки, переменных окружения и файла.
// При ошибке пишет в лог и завершает работу.
func GetConfig() *Config {
	c, err := Parse(pflag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("can't build configuration")
		return nil
	}
	return c
}

// Parse собирает конфигурацию с приоритетом:
// значения по умолчанию < JSON файл < переменные окружения < флаги.
func Parse(fs *pflag.FlagSet, args []string) (*Config, error) {
	fs.StringP("config", "c", "", "sets path to config file")
	fs.StringP("server-address", "a", defaultServerAddress, "sets address of service server")
	fs.StringP("api-endpoint", "e", defaultAPIEndpoint, "sets URL of the shortening API /shorten route")
	fs.StringP("display-base", "b", defaultDisplayBase, "sets base URL for displayed short link")
	fs.DurationP("request-timeout", "t", defaultRequestTimeout, "sets timeout for shortening API call, 0 means none")
	fs.StringP("log-level", "l", defaultLogLevel, "sets log level (debug, info, warn, error)")
	fs.StringP("session-secret", "k", defaultSessionSecret, "sets key for signing session cookie")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("can't bind argument flags: %w", err)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	c := &Config{
		ServerAddress:  defaultServerAddress,
		APIEndpoint:    defaultAPIEndpoint,
		DisplayBase:    defaultDisplayBase,
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       defaultLogLevel,
		SessionSecret:  defaultSessionSecret,
	}
	if cfgPath := v.GetString("config"); len(cfgPath) != 0 {
		if err := c.loadConfigFromFile(cfgPath); err != nil {
			return nil, err
		}
	}
	c.expandConfigFromViper(v)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadConfigFromFile(filepath string) error {
	log.Info().Msgf("trying to load config from file %s", filepath)
	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("can't open given config file %s: %w", filepath, err)
	}
	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Err(err).Msgf("can't close config file %s", filepath)
		}
	}(file)

	fc := fileConfig{Config: *c}
	if err = json.NewDecoder(file).Decode(&fc); err != nil {
		return fmt.Errorf("can't read config from given file %s: %w", filepath, err)
	}
	*c = fc.Config
	if len(fc.RequestTimeout) != 0 {
		c.RequestTimeout, err = time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("can't parse request_timeout from %s: %w", filepath, err)
		}
	}
	return nil
}

// expandConfigFromViper переписывает значения теми, что явно заданы флагом или переменной окружения.
func (c *Config) expandConfigFromViper(v *viper.Viper) {
	if v.IsSet("server-address") {
		c.ServerAddress = v.GetString("server-address")
	}
	if v.IsSet("api-endpoint") {
		c.APIEndpoint = v.GetString("api-endpoint")
	}
	if v.IsSet("display-base") {
		c.DisplayBase = v.GetString("display-base")
	}
	if v.IsSet("request-timeout") {
		c.RequestTimeout = v.GetDuration("request-timeout")
	}
	if v.IsSet("log-level") {
		c.LogLevel = v.GetString("log-level")
	}
	if v.IsSet("session-secret") {
		c.SessionSecret = v.GetString("session-secret")
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return ErrEmptyServerAddress
	}
	if !isAbsURL(c.APIEndpoint) {
		return fmt.Errorf("%w: %q", ErrInvalidAPIEndpoint, c.APIEndpoint)
	}
	if !isAbsURL(c.DisplayBase) {
		return fmt.Errorf("%w: %q", ErrInvalidDisplayBase, c.DisplayBase)
	}
	if c.RequestTimeout < 0 {
		return ErrNegativeTimeout
	}
	if c.SessionSecret == "" {
		return ErrEmptySessionSecret
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level возвращает уровень логирования zerolog.
// Для невалидного значения возвращается InfoLevel.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func isAbsURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && u.Scheme != "" && u.Host != ""
}
