package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetViper restores the global viper instance when the test ends.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "fanyi [text...]" {
		t.Errorf("Expected Use to be 'fanyi [text...]', got %s", cmd.Use)
	}
	if !strings.Contains(cmd.Short, "translator") {
		t.Errorf("Expected Short description to mention the translator, got %q", cmd.Short)
	}
	if cmd.Version == "" {
		t.Error("Expected a version")
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"log-level", true},
		{"format", false},
		{"batch", false},
		{"refresh-token", false},
		{"icon", false},
		{"endpoint", false},
		{"timeout", false},
		{"token-store", false},
		{"token-path", false},
		{"token-provider", false},
		{"token-command", false},
		{"token-page-url", false},
		{"token-timeout", false},
		{"breaker-failures", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.Shorthand != "f" {
		t.Errorf("Expected shorthand f, got %q", formatFlag.Shorthand)
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be text, got %s", formatFlag.DefValue)
	}

	timeoutFlag := cmd.Flags().Lookup("timeout")
	if timeoutFlag.DefValue != "30s" {
		t.Errorf("Expected default timeout to be 30s, got %s", timeoutFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	cfgPath := filepath.Join(t.TempDir(), "fanyi.yaml")
	content := `api:
  timeout: 5s
token:
  store: sqlite
  provider: command
  command: get-token --quiet
output:
  format: alfred`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	t.Setenv("FANYI_TOKEN_PATH", "/tmp/from-env.db")

	// Flags beat the config file.
	if err := cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}

	InitConfig(cfgPath)
	ApplyConfig(flags)

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Format", flags.Format, "json"},
		{"Timeout", flags.Timeout, 5 * time.Second},
		{"TokenStore", flags.TokenStore, "sqlite"},
		{"TokenProvider", flags.TokenProvider, "command"},
		{"TokenCommand", flags.TokenCommand, "get-token --quiet"},
		{"TokenPath", flags.TokenPath, "/tmp/from-env.db"},
		{"Endpoint", flags.Endpoint, "https://fanyi.baidu.com/ait/text/translate"},
		{"BreakerFailures", flags.BreakerFailures, uint32(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestInitConfig_NoFile(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	InitConfig("")

	t.Setenv("FANYI_TEST_VAR", "test-value")
	if viper.GetString("test_var") != "test-value" {
		t.Error("Environment variable not properly loaded")
	}
}

func TestInitLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	tests := []struct {
		level   string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"error", log.ErrorLevel, false},
		{"", log.WarnLevel, false},
		{"chatty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := InitLogging(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitLogging(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if err == nil && log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.want)
			}
		})
	}
}

func TestDefaultTokenPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".local", "state", "fanyi")
	if got := DefaultTokenPath("file"); got != filepath.Join(dir, "acs_token.json") {
		t.Errorf("file path = %s", got)
	}
	if got := DefaultTokenPath("sqlite"); got != filepath.Join(dir, "tokens.db") {
		t.Errorf("sqlite path = %s", got)
	}
}
