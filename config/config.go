package config

import (
	"os"
	"path/filepath"
	"strings"

	"defectpred/validation"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrFileNotFound = errors.New("file not found")

// StorageConfig describes the relational result store. The defaults mirror
// a local MySQL setup; Driver may also be "sqlite3", in which case Name is
// the database file path.
type StorageConfig struct {
	Enabled     bool   `json:"ENABLED" koanf:"ENABLED"`
	Driver      string `json:"DRIVER" koanf:"DRIVER"`
	Host        string `json:"HOST" koanf:"HOST"`
	Port        string `json:"PORT" koanf:"PORT"`
	Name        string `json:"NAME" koanf:"NAME"`
	User        string `json:"USER" koanf:"USER"`
	Pass        string `json:"PASS" koanf:"PASS"`
	TableName   string `json:"TABLE_NAME" koanf:"TABLE_NAME"`
	CreateTable bool   `json:"CREATE_TABLE" koanf:"CREATE_TABLE"`
}

// Config contains all application configuration settings
type Config struct {
	ExperimentName string   `json:"EXPERIMENT_NAME" koanf:"EXPERIMENT_NAME" validate:"required"`
	DataPath       string   `json:"DATA_PATH" koanf:"DATA_PATH" validate:"required"`
	ResultsPath    string   `json:"RESULTS_PATH" koanf:"RESULTS_PATH" validate:"required"`
	SaveClassifier bool     `json:"SAVE_CLASSIFIER" koanf:"SAVE_CLASSIFIER"`
	Loaders        []string `json:"LOADERS" koanf:"LOADERS"`
	Preprocessors  []string `json:"PREPROCESSORS" koanf:"PREPROCESSORS"`
	Selectors      []string `json:"POINTWISE_SELECTORS" koanf:"POINTWISE_SELECTORS"`
	Postprocessors []string `json:"POSTPROCESSORS" koanf:"POSTPROCESSORS"`
	Trainers       []string `json:"TRAINERS" koanf:"TRAINERS"`
	Evaluators     []string `json:"EVALUATORS" koanf:"EVALUATORS"`

	Storage StorageConfig `json:"STORAGE" koanf:"STORAGE"`

	TelegramBotToken string `json:"TELEGRAM_BOT_TOKEN" koanf:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `json:"TELEGRAM_CHAT_ID" koanf:"TELEGRAM_CHAT_ID"`
	SlackWebhookURL  string `json:"SLACK_WEBHOOK_URL" koanf:"SLACK_WEBHOOK_URL"`
	MessageChannels  string `json:"MESSAGE_CHANNELS" koanf:"MESSAGE_CHANNELS"`
}

func applyDefaults(c *Config) {
	if len(c.Loaders) == 0 {
		c.Loaders = []string{"csv"}
	}
	if len(c.Trainers) == 0 {
		c.Trainers = []string{"logistic"}
	}
	if len(c.Evaluators) == 0 {
		c.Evaluators = []string{"csv"}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mysql"
	}
	if c.Storage.Host == "" {
		c.Storage.Host = "localhost"
	}
	if c.Storage.Port == "" {
		c.Storage.Port = "3306"
	}
	if c.Storage.Name == "" {
		c.Storage.Name = "defectpred"
	}
	if c.Storage.User == "" {
		c.Storage.User = "defectpred"
	}
	if c.Storage.TableName == "" {
		c.Storage.TableName = "results"
	}
}

func parserFor(configFile string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}

func Load(configFile string) Config {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), parserFor(configFile)); err != nil {
			log.Warn().Err(err).Str("file", configFile).Msg("unable to load config file")
		} else {
			log.Info().Str("file", configFile).Msg("loaded configuration from file")
		}
	}

	// Load from environment variables (higher priority)
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		log.Fatal().Err(err).Caller().Msg("koanf: error loading env")
	}

	config := Config{}

	if err := k.Unmarshal("", &config); err != nil {
		log.Fatal().Err(err).Caller().Msg("koanf: error unmarshalling config")
	}

	applyDefaults(&config)

	if err := validation.Validate.Struct(config); err != nil {
		log.Fatal().Err(err).Caller().Msg("koanf: error validating config")
	}
	return config
}

func SearchUpwardsForFile(filename string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if wd == "/" {
			return "", errors.Wrap(ErrFileNotFound, filename)
		}

		file := filepath.Join(wd, filename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}

		wd = filepath.Dir(wd)
	}
}

func LoadDotEnv(fileName string) {
	file, err := SearchUpwardsForFile(fileName)
	if err != nil {
		log.Warn().Err(err).Msgf("failed to find %s file", fileName)
		return
	}

	if err := godotenv.Load(file); err != nil {
		log.Fatal().Err(err).Msg("invalid .env file")
	}

	log.Info().Msgf("loaded environment variables from %s", file)
}

// LoadConfig is the main entry point for configuration loading
func LoadConfig(envFile string, configFiles ...string) Config {
	if envFile != "" {
		LoadDotEnv(envFile)
	}

	for _, configFile := range configFiles {
		foundFile, err := SearchUpwardsForFile(configFile)
		if err == nil {
			return Load(foundFile)
		}
	}

	// If no config file found, load from environment only
	return Load("")
}
