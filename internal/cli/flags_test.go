package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Format", flags.Format, "text"},
		{"LogLevel", flags.LogLevel, "warn"},
		{"Endpoint", flags.Endpoint, "https://fanyi.baidu.com/ait/text/translate"},
		{"Timeout", flags.Timeout, 30 * time.Second},
		{"TokenStore", flags.TokenStore, "file"},
		{"TokenProvider", flags.TokenProvider, "browser"},
		{"TokenPageURL", flags.TokenPageURL, "https://fanyi.baidu.com/mtpe-individual/transText?query="},
		{"TokenTimeout", flags.TokenTimeout, 20 * time.Second},
		{"BreakerFailures", flags.BreakerFailures, uint32(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"BatchFile", flags.BatchFile},
		{"TokenPath", flags.TokenPath},
		{"TokenCommand", flags.TokenCommand},
		{"IconPath", flags.IconPath},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.RefreshToken {
		t.Error("RefreshToken = true, want false")
	}
}
