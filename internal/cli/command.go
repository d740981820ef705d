package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/translation"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/transport"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openai-dictionary [word]",
		Short: "English to Chinese dictionary backed by OpenAI chat models",
		Long: `openai-dictionary looks up English words and streams a Chinese
dictionary entry (phonetics, part of speech, meanings) from an
OpenAI-compatible chat-completion API, Azure OpenAI or a Cloudflare
AI gateway.

Examples:
  openai-dictionary resist                 # Look up one word
  openai-dictionary --batch words.txt      # Look up every word in a file
  openai-dictionary models                 # List models for the API key
  openai-dictionary config                 # Show the effective configuration`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.openai-dictionary.yaml)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.Lang, "lang", "", "Language of error messages (default: detected from the environment)")

	// OpenAI flags
	pf.StringVarP(&flags.Model, "model", "m", flags.Model, `Chat model, or "custom" to use --custom-model`)
	pf.StringVar(&flags.CustomModel, "custom-model", "", `Model name used when --model is "custom"`)
	pf.StringVar(&flags.APIURL, "api-url", "", "API base URL (default https://api.openai.com)")
	pf.StringVar(&flags.APIVersion, "api-version", "", "Azure OpenAI api-version (default 2023-03-15-preview)")
	pf.StringVar(&flags.DeploymentName, "deployment-name", "", "Azure OpenAI deployment name")

	// Request flags
	pf.DurationVar(&flags.Timeout, "timeout", 0, "Request timeout, 0 for none")
	pf.StringVar(&flags.Proxy, "proxy", "", "HTTP proxy URL")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Look up words from file (one per line)")
	cmd.Flags().StringVar(&flags.From, "from", flags.From, "Source language code")
	cmd.Flags().StringVar(&flags.To, "to", flags.To, "Target language code")
	cmd.Flags().StringVar(&flags.SystemPrompt, "system-prompt", "", "Custom system prompt ($text, $sourceLang, $targetLang are replaced)")
	cmd.Flags().StringVar(&flags.UserPrompt, "user-prompt", "", "Custom user prompt ($text, $sourceLang, $targetLang are replaced)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("openai.model", pf.Lookup("model"))
	viper.BindPFlag("openai.custom_model", pf.Lookup("custom-model"))
	viper.BindPFlag("openai.api_url", pf.Lookup("api-url"))
	viper.BindPFlag("openai.api_version", pf.Lookup("api-version"))
	viper.BindPFlag("openai.deployment_name", pf.Lookup("deployment-name"))
	viper.BindPFlag("request.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("request.proxy", pf.Lookup("proxy"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("prompt.system", cmd.Flags().Lookup("system-prompt"))
	viper.BindPFlag("prompt.user", cmd.Flags().Lookup("user-prompt"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".openai-dictionary" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".openai-dictionary")
	}

	// Environment variables: OPENAI_DICTIONARY_OPENAI_API_KEYS etc.
	viper.SetEnvPrefix("OPENAI_DICTIONARY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

// InitLogging configures the standard logrus logger. Logs go to stderr so
// stdout only carries translations.
func InitLogging(level string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// GetAPIKeys retrieves the comma-separated API keys from environment or config
func GetAPIKeys() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_keys")
}

// RequestConfig resolves the lookup configuration from flags, environment
// and config file.
func RequestConfig() translation.Config {
	return translation.Config{
		Model:              viper.GetString("openai.model"),
		CustomModel:        viper.GetString("openai.custom_model"),
		APIKeys:            GetAPIKeys(),
		APIVersion:         viper.GetString("openai.api_version"),
		APIURL:             viper.GetString("openai.api_url"),
		DeploymentName:     viper.GetString("openai.deployment_name"),
		CustomSystemPrompt: viper.GetString("prompt.system"),
		CustomUserPrompt:   viper.GetString("prompt.user"),
	}
}

// TransportConfig resolves the HTTP client settings
func TransportConfig() transport.Config {
	return transport.Config{
		Timeout: viper.GetDuration("request.timeout"),
		Proxy:   viper.GetString("request.proxy"),
		Logger:  logrus.StandardLogger(),
	}
}

type dumpedConfig struct {
	OpenAI struct {
		Model          string `yaml:"model"`
		CustomModel    string `yaml:"custom_model,omitempty"`
		APIKeys        string `yaml:"api_keys"`
		APIURL         string `yaml:"api_url,omitempty"`
		APIVersion     string `yaml:"api_version,omitempty"`
		DeploymentName string `yaml:"deployment_name,omitempty"`
	} `yaml:"openai"`
	Prompt struct {
		System string `yaml:"system,omitempty"`
		User   string `yaml:"user,omitempty"`
	} `yaml:"prompt"`
	Request struct {
		Timeout string `yaml:"timeout"`
		Proxy   string `yaml:"proxy,omitempty"`
	} `yaml:"request"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DumpConfig writes the effective configuration as YAML with API keys masked
func DumpConfig(w io.Writer) error {
	cfg := RequestConfig()

	var out dumpedConfig
	out.OpenAI.Model = cfg.Model
	out.OpenAI.CustomModel = cfg.CustomModel
	out.OpenAI.APIKeys = MaskKeys(cfg.APIKeys)
	out.OpenAI.APIURL = cfg.APIURL
	out.OpenAI.APIVersion = cfg.APIVersion
	out.OpenAI.DeploymentName = cfg.DeploymentName
	out.Prompt.System = cfg.CustomSystemPrompt
	out.Prompt.User = cfg.CustomUserPrompt
	out.Request.Timeout = viper.GetDuration("request.timeout").String()
	out.Request.Proxy = viper.GetString("request.proxy")
	out.Log.Level = viper.GetString("log.level")

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// MaskKeys hides all but the edges of every key in a comma-separated list
func MaskKeys(raw string) string {
	if raw == "" {
		return ""
	}
	keys := strings.Split(raw, ",")
	for i, k := range keys {
		k = strings.TrimSpace(k)
		if len(k) <= 8 {
			keys[i] = strings.Repeat("*", len(k))
			continue
		}
		keys[i] = k[:3] + "..." + k[len(k)-4:]
	}
	return strings.Join(keys, ",")
}
