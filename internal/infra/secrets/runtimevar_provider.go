// Package secrets resolves process secrets through gocloud runtimevar URLs.
package secrets

import (
	"context"
	"log/slog"
	"strings"

	"jobassist/config"
	"jobassist/internal/domain/lifecycle"
	"jobassist/internal/domain/service"
	"jobassist/internal/errors"
	"jobassist/internal/infra/auth"

	"go.uber.org/fx"
	"gocloud.dev/runtimevar"
	_ "gocloud.dev/runtimevar/constantvar"
	_ "gocloud.dev/runtimevar/filevar"
)

// ErrSecretNotConfigured is returned when no URL is configured for a secret.
var ErrSecretNotConfigured = errors.New("secret not configured")

// DefaultPepper is used when no pepper secret is configured.
const DefaultPepper = ""

// runtimeVarProvider implements service.SecretProvider on top of a runtimevar.Variable.
type runtimeVarProvider struct {
	variable *runtimevar.Variable
}

// NewRuntimeVarProvider wraps an opened variable. A nil variable means the secret is not configured.
func NewRuntimeVarProvider(variable *runtimevar.Variable) service.SecretProvider {
	return &runtimeVarProvider{variable: variable}
}

// Params defines the dependencies for the pepper provider
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the pepper variable from auth.pepperUrl and closes it on shutdown.
func New(params Params) (service.SecretProvider, error) {
	if params.Config.Auth == nil || strings.TrimSpace(params.Config.Auth.PepperURL) == "" {
		return NewRuntimeVarProvider(nil), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	variable, err := runtimevar.OpenVariable(ctx, params.Config.Auth.PepperURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pepper variable")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(variable.Close())
		},
	})

	return NewRuntimeVarProvider(variable), nil
}

// Pepper returns the latest value of the pepper variable.
func (p *runtimeVarProvider) Pepper(ctx context.Context) (string, error) {
	if p.variable == nil {
		return "", ErrSecretNotConfigured
	}

	snapshot, err := p.variable.Latest(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to read pepper variable")
	}

	switch v := snapshot.Value.(type) {
	case string:
		return strings.TrimRight(v, "\r\n"), nil
	case []byte:
		return strings.TrimRight(string(v), "\r\n"), nil
	default:
		return "", errors.Errorf("pepper variable has unsupported type %T", snapshot.Value)
	}
}

// ResolvePepper fetches the pepper once at startup. Only an unconfigured
// secret falls back to DefaultPepper; a configured but unreadable secret aborts
// startup, since hashing with the wrong pepper locks out every peppered account.
func ResolvePepper(provider service.SecretProvider, logger *slog.Logger) (auth.Pepper, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	pepper, err := provider.Pepper(ctx)
	if errors.Is(err, ErrSecretNotConfigured) {
		logger.Warn("Password pepper not configured, using default")

		return auth.Pepper(DefaultPepper), nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to load configured password pepper")
	}

	logger.Info("Password pepper loaded")

	return auth.Pepper(pepper), nil
}
