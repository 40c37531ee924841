package quizanything

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default model names. The topic model has search capability so questions
// can reflect current information; file mode sticks to the document.
const (
	DefaultTopicModel = "gpt-4o-mini-search-preview"
	DefaultFileModel  = "gpt-4o-mini"
)

// Config holds runtime configuration for the quiz pipeline.
type Config struct {
	Env        string `mapstructure:"env"`         // local, production etc.
	APIKey     string `mapstructure:"-"`           // resolved via the credential chain
	TopicModel string `mapstructure:"topic_model"` // model for topic-mode generation
	FileModel  string `mapstructure:"file_model"`  // model for file-mode generation and auxiliary calls
}

// LoadConfig resolves configuration from config files and the environment.
// The API key is looked up in order: OPENAI_API_KEY environment variable,
// openai_api_key in config.yaml, then a key file at ~/.quizanything/api_key.
// Absence of all three is a hard stop with ErrCredentialMissing.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("topic_model", DefaultTopicModel)
	v.SetDefault("file_model", DefaultFileModel)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.APIKey = v.GetString("openai_api_key")
	if cfg.APIKey == "" {
		cfg.APIKey = readLocalKeyFile()
	}
	if cfg.APIKey == "" {
		return nil, ErrCredentialMissing
	}

	return &cfg, nil
}

// readLocalKeyFile is the last step of the credential chain: a manually
// placed key file for local testing.
func readLocalKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, ".quizanything", "api_key"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
