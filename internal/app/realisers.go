package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/config"
)

// WordStore persists ad-hoc words and replays them into a lexicon.
type WordStore interface {
	SaveWord(ctx context.Context, lang nlg.Language, w *nlg.Word) error
	Replay(ctx context.Context, lex *nlg.Lexicon) (int, error)
}

const saveTimeout = 5 * time.Second

// LoadRealisers loads one lexicon per configured language in parallel and
// returns a realiser for each. When st is not nil, stored ad-hoc words are
// replayed into every lexicon and newly synthesised ones are saved.
func LoadRealisers(ctx context.Context, cfg config.LexiconConfig, st WordStore, logger *slog.Logger) (map[nlg.Language]*nlg.Realiser, error) {
	var (
		mu  sync.Mutex
		out = make(map[nlg.Language]*nlg.Realiser)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range cfg.LanguageList() {
		lang := nlg.ParseLanguage(name)
		g.Go(func() error {
			r, err := loadRealiser(gctx, lang, cfg, st, logger)
			if err != nil {
				return err
			}
			mu.Lock()
			out[lang] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadRealiser(ctx context.Context, lang nlg.Language, cfg config.LexiconConfig, st WordStore, logger *slog.Logger) (*nlg.Realiser, error) {
	opts := []nlg.Option{
		nlg.WithLogger(logger),
		nlg.WithRandomDefaultInflection(cfg.RandomDefaultInflection),
	}
	if cfg.Dir != "" {
		opts = append(opts, nlg.WithSource(os.DirFS(cfg.Dir)))
	}
	if st != nil {
		opts = append(opts, nlg.WithRegisterHook(func(w *nlg.Word) {
			sctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if err := st.SaveWord(sctx, lang, w); err != nil {
				logger.Error("save ad-hoc word",
					slog.String("language", string(lang)),
					slog.String("id", w.ID),
					slog.String("error", err.Error()))
			}
		}))
	}

	lex, err := nlg.Load(lang, opts...)
	if err != nil {
		return nil, fmt.Errorf("load lexicon %s: %w", lang, err)
	}

	if st != nil {
		n, err := st.Replay(ctx, lex)
		if err != nil {
			return nil, fmt.Errorf("replay ad-hoc words %s: %w", lang, err)
		}
		if n > 0 {
			logger.Info("ad-hoc words replayed", slog.String("language", string(lang)), slog.Int("count", n))
		}
	}

	r, err := nlg.NewRealiser(lex)
	if err != nil {
		return nil, err
	}
	logger.Info("lexicon ready", slog.String("language", string(lang)), slog.Int("words", lex.Len()))
	return r, nil
}
