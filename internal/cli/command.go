package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/fanyi/internal"
	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fanyi [text...]",
		Short: "Chinese/English translator for the terminal and Alfred",
		Long: `fanyi translates between Chinese and English using the Baidu web
translator. Single words get a dictionary breakdown with phonetics and
inflections, longer text gets a plain translation.

The capability token required by the service is cached on disk and
refreshed automatically when the service rejects it.

Examples:
  fanyi hello                       # Translate a word
  fanyi 你好世界                    # Chinese to English
  fanyi -f alfred "good morning"    # Alfred Script Filter output
  fanyi --batch words.txt           # Translate every line of a file`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.fanyi.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format: text, alfred, json or yaml")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate queries from file (one per line, - for stdin)")
	cmd.Flags().BoolVar(&flags.RefreshToken, "refresh-token", false, "Acquire a new capability token before translating")
	cmd.Flags().StringVar(&flags.IconPath, "icon", "", "Icon path for Alfred items")

	// Endpoint flags
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", flags.Endpoint, "Translate endpoint URL")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for one request including the whole stream")

	// Token flags
	cmd.Flags().StringVar(&flags.TokenStore, "token-store", flags.TokenStore, "Token cache backend: file, sqlite or memory")
	cmd.Flags().StringVar(&flags.TokenPath, "token-path", "", "Token cache location (default under ~/.local/state/fanyi)")
	cmd.Flags().StringVar(&flags.TokenProvider, "token-provider", flags.TokenProvider, "Token source: browser (headless Chrome) or command")
	cmd.Flags().StringVar(&flags.TokenCommand, "token-command", "", "Helper command printing a token, the query is appended as last argument")
	cmd.Flags().StringVar(&flags.TokenPageURL, "token-page-url", flags.TokenPageURL, "Translator page opened by the browser provider")
	cmd.Flags().DurationVar(&flags.TokenTimeout, "token-timeout", flags.TokenTimeout, "Timeout for acquiring a token")
	cmd.Flags().Uint32Var(&flags.BreakerFailures, "breaker-failures", flags.BreakerFailures, "Stop asking the token provider after this many consecutive failures (0 disables)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("output.icon", cmd.Flags().Lookup("icon"))
	viper.BindPFlag("api.endpoint", cmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("api.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("token.store", cmd.Flags().Lookup("token-store"))
	viper.BindPFlag("token.path", cmd.Flags().Lookup("token-path"))
	viper.BindPFlag("token.provider", cmd.Flags().Lookup("token-provider"))
	viper.BindPFlag("token.command", cmd.Flags().Lookup("token-command"))
	viper.BindPFlag("token.page_url", cmd.Flags().Lookup("token-page-url"))
	viper.BindPFlag("token.timeout", cmd.Flags().Lookup("token-timeout"))
	viper.BindPFlag("token.breaker_failures", cmd.Flags().Lookup("breaker-failures"))
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
			log.Warnf("Error getting home directory: %v", err)
			return
		}

		// Search config in home directory with name ".fanyi" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fanyi")
	}

	// Environment variables, FANYI_TOKEN_STORE for token.store
	viper.SetEnvPrefix("FANYI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies the effective configuration into flags. Values set on
// the command line win over the environment, which wins over the config
// file, which wins over the defaults.
func ApplyConfig(flags *Flags) {
	flags.LogLevel = viper.GetString("log.level")
	flags.Format = viper.GetString("output.format")
	flags.IconPath = viper.GetString("output.icon")
	flags.Endpoint = viper.GetString("api.endpoint")
	flags.Timeout = viper.GetDuration("api.timeout")
	flags.TokenStore = viper.GetString("token.store")
	flags.TokenPath = viper.GetString("token.path")
	flags.TokenProvider = viper.GetString("token.provider")
	flags.TokenCommand = viper.GetString("token.command")
	flags.TokenPageURL = viper.GetString("token.page_url")
	flags.TokenTimeout = viper.GetDuration("token.timeout")
	flags.BreakerFailures = viper.GetUint32("token.breaker_failures")
}

// InitLogging configures the global logger. Logs go to stderr since
// stdout carries the translation.
func InitLogging(level string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// DefaultTokenPath returns the cache location of a token store backend.
func DefaultTokenPath(backend string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	dir := filepath.Join(home, ".local", "state", "fanyi")

	if backend == tokenstore.BackendSQLite {
		return filepath.Join(dir, "tokens.db")
	}
	return filepath.Join(dir, "acs_token.json")
}
