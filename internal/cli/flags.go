package cli

import (
	"time"

	"codeberg.org/snonux/fanyi/internal/render"
	"codeberg.org/snonux/fanyi/internal/tokenprovider"
	"codeberg.org/snonux/fanyi/internal/tokenstore"
	"codeberg.org/snonux/fanyi/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Format       string
	BatchFile    string
	LogLevel     string
	RefreshToken bool

	// Endpoint flags
	Endpoint string
	Timeout  time.Duration

	// Token flags
	TokenStore      string
	TokenPath       string
	TokenProvider   string
	TokenCommand    string
	TokenPageURL    string
	TokenTimeout    time.Duration
	BreakerFailures uint32

	// Alfred flags
	IconPath string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	api := translation.DefaultConfig()
	token := tokenprovider.DefaultConfig()

	return &Flags{
		Format:          string(render.FormatText),
		LogLevel:        "warn",
		Endpoint:        api.Endpoint,
		Timeout:         api.Timeout,
		TokenStore:      tokenstore.BackendFile,
		TokenProvider:   token.Kind,
		TokenPageURL:    token.PageURL,
		TokenTimeout:    token.Timeout,
		BreakerFailures: token.BreakerFailures,
	}
}
