package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/certificates"
	"github.com/abhisek/examportal/internal/config"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/llm"
	"github.com/abhisek/examportal/internal/practice"
	"github.com/abhisek/examportal/internal/recorder"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/user"
)

// runtime holds everything a command may need.
type runtime struct {
	store *store.Store
	deps  *screen.Deps
}

func (r *runtime) Close() error {
	return r.store.Close()
}

// openRuntime opens the store and catalog and builds the services. The LLM
// provider is optional; without it practice draws from the catalog only.
func openRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	t, err := i18n.New(cfg.Lang)
	if err != nil {
		st.Close()
		return nil, err
	}

	var gen practice.Generator
	if lcfg, ok := llm.FromSettings(cfg.LLM); ok {
		provider, err := llm.NewProvider(ctx, lcfg, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Practice will use catalog questions only.")
		} else {
			log.Info().Str("provider", provider.Name()).Str("model", provider.ModelID()).Msg("llm provider ready")
			gen = practice.NewGenerator(provider, practice.DefaultConfig())
		}
	}

	deps := &screen.Deps{
		Catalog: cat,
		Recorder: recorder.New(recorder.ReposFrom(st), recorder.Options{
			HistoryLimit:  cfg.HistoryLimit,
			ActivityLimit: cfg.ActivityLimit,
		}),
		Practice:     practice.NewBuilder(cat, gen),
		Certificates: certificates.NewService(st.CertificateRepo()),
		T:            t,
		Users:        st.UserRepo(),
		History:      st.HistoryRepo(),
		Progress:     st.ProgressRepo(),
	}
	return &runtime{store: st, deps: deps}, nil
}

// requireUser resolves the --user setting into an identity.
func requireUser(cfg *config.Config) (user.User, error) {
	if cfg.User == "" {
		return user.User{}, fmt.Errorf("--user is required")
	}
	return user.New(cfg.User)
}
