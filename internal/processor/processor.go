package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"codeberg.org/snonux/fanyi/internal/batch"
	"codeberg.org/snonux/fanyi/internal/cli"
	"codeberg.org/snonux/fanyi/internal/render"
	"codeberg.org/snonux/fanyi/internal/tokenprovider"
	"codeberg.org/snonux/fanyi/internal/tokenstore"
	"codeberg.org/snonux/fanyi/internal/translation"
)

// ErrTranslationFailed is returned after a failed outcome was rendered.
var ErrTranslationFailed = errors.New("translation failed")

// Processor handles the main query processing logic
type Processor struct {
	flags            *cli.Flags
	store            tokenstore.Store
	translator       *translation.Translator
	translationCache *translation.TranslationCache
	renderer         *render.Renderer
	out              io.Writer
	errOut           io.Writer
}

// NewProcessor builds the token store, the token provider and the
// translator described by flags.
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	path := flags.TokenPath
	if path == "" {
		path = cli.DefaultTokenPath(flags.TokenStore)
	}
	store, err := tokenstore.Open(flags.TokenStore, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	providerCfg := tokenprovider.DefaultConfig()
	providerCfg.Kind = flags.TokenProvider
	providerCfg.Command = flags.TokenCommand
	providerCfg.BreakerFailures = flags.BreakerFailures
	if flags.TokenPageURL != "" {
		providerCfg.PageURL = flags.TokenPageURL
	}
	if flags.TokenTimeout > 0 {
		providerCfg.Timeout = flags.TokenTimeout
	}
	provider, err := tokenprovider.New(providerCfg)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("failed to create token provider: %w", err)
	}

	p, err := newProcessor(flags, store, provider)
	if err != nil {
		closeStore(store)
		return nil, err
	}
	return p, nil
}

func newProcessor(flags *cli.Flags, store tokenstore.Store, provider tokenprovider.Provider) (*Processor, error) {
	renderer, err := render.New(render.Options{
		Format:   render.Format(flags.Format),
		PageURL:  flags.TokenPageURL,
		IconPath: flags.IconPath,
	})
	if err != nil {
		return nil, err
	}

	apiCfg := translation.DefaultConfig()
	if flags.Endpoint != "" {
		apiCfg.Endpoint = flags.Endpoint
	}
	if flags.Timeout > 0 {
		apiCfg.Timeout = flags.Timeout
	}

	return &Processor{
		flags:            flags,
		store:            store,
		translator:       translation.NewTranslator(apiCfg, store, provider),
		translationCache: translation.NewTranslationCache(),
		renderer:         renderer,
		out:              os.Stdout,
		errOut:           os.Stderr,
	}, nil
}

// Close releases the token store.
func (p *Processor) Close() error {
	return closeStore(p.store)
}

func closeStore(store tokenstore.Store) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RefreshToken replaces the cached token, using seed to drive the
// provider.
func (p *Processor) RefreshToken(ctx context.Context, seed string) error {
	if seed == "" {
		seed = "hello"
	}
	log.Info("Refreshing capability token")
	return p.translator.RefreshToken(ctx, seed)
}

// ProcessSingle translates one query and renders the outcome.
func (p *Processor) ProcessSingle(ctx context.Context, query string) error {
	outcome := p.translate(ctx, query)

	if err := p.renderer.Render(p.out, outcome); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !outcome.OK() {
		return fmt.Errorf("%w: %v", ErrTranslationFailed, outcome.Failure)
	}
	return nil
}

// ProcessBatch translates every query of the batch file in order and
// renders all outcomes as one document.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	cachedCount := 0
	translatedCount := 0
	errorCount := 0

	outcomes := make([]translation.Outcome, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if outcome, ok := p.translationCache.Get(entry.Query); ok {
			log.Debugf("Line %d: %q served from cache", entry.Line, entry.Query)
			outcomes = append(outcomes, outcome)
			cachedCount++
			continue
		}

		log.Infof("Translating %d/%d: %s", i+1, len(entries), entry.Query)
		outcome := p.translate(ctx, entry.Query)
		if outcome.OK() {
			translatedCount++
		} else {
			log.Warnf("Line %d: %q failed: %v", entry.Line, entry.Query, outcome.Failure)
			errorCount++
		}
		outcomes = append(outcomes, outcome)
	}

	if err := p.renderer.Render(p.out, outcomes...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Print summary
	fmt.Fprintf(p.errOut, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.errOut, "Total queries: %d\n", len(entries))
	fmt.Fprintf(p.errOut, "Translated: %d\n", translatedCount)
	fmt.Fprintf(p.errOut, "From cache: %d\n", cachedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.errOut, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.errOut, "=====================\n")

	if errorCount > 0 && translatedCount+cachedCount == 0 {
		return fmt.Errorf("%w: all %d queries failed", ErrTranslationFailed, errorCount)
	}
	return nil
}

func (p *Processor) translate(ctx context.Context, query string) translation.Outcome {
	outcome := p.translator.Translate(ctx, query)
	p.translationCache.Add(query, outcome)
	return outcome
}
