package rotator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"credentialRotator/internal/auth"
	"credentialRotator/internal/config"
	"credentialRotator/internal/credentials"
	"credentialRotator/internal/k8s"
	"credentialRotator/internal/models"

	"k8s.io/client-go/rest"
)

// CredentialFetcher retrieves the credentials to write
type CredentialFetcher interface {
	Fetch(ctx context.Context, url string) (models.Credentials, error)
}

// SessionFactory builds the cluster session from the config chosen by the strategies
type SessionFactory func(ctx context.Context, restConfig *rest.Config) (k8s.SecretUpdater, error)

// Rotator runs one credential rotation: fetch, authenticate, replace the secret data.
type Rotator struct {
	Config     config.Config
	Fetcher    CredentialFetcher
	Strategies []auth.Strategy
	NewSession SessionFactory
	// Out receives the status lines meant for the operator
	Out    io.Writer
	Logger *slog.Logger
}

// New creates a Rotator wired to the real HTTP endpoint and cluster
func New(cfg config.Config, out io.Writer, logger *slog.Logger) *Rotator {
	return &Rotator{
		Config:     cfg,
		Fetcher:    credentials.NewFetcher(logger),
		Strategies: DefaultStrategies(cfg, out),
		NewSession: func(ctx context.Context, restConfig *rest.Config) (k8s.SecretUpdater, error) {
			return k8s.NewClientWithConfig(ctx, restConfig)
		},
		Out:    out,
		Logger: logger,
	}
}

// DefaultStrategies returns the authentication strategies in the order they are tried
func DefaultStrategies(cfg config.Config, out io.Writer) []auth.Strategy {
	return []auth.Strategy{
		auth.InCluster{Out: out},
		auth.BearerToken{
			Host:                  cfg.ClusterHost,
			Port:                  cfg.ClusterPort,
			Token:                 cfg.ClusterToken,
			InsecureSkipTLSVerify: cfg.InsecureSkipTLSVerify,
			Out:                   out,
		},
		auth.Kubeconfig{Path: cfg.Kubeconfig, Out: out},
	}
}

// Run executes the stages in order. Failures are handled according to Policies:
// only a propagating category makes Run return an error.
func (r *Rotator) Run(ctx context.Context) error {
	creds, res := r.fetch(ctx)
	if res.Failed() {
		return r.handle(res)
	}

	restConfig, res := r.establish()
	if res.Failed() {
		return r.handle(res)
	}

	data := models.Encode(creds)
	r.Logger.Debug("secret data prepared", "keys", data.Keys())

	fmt.Fprintln(r.Out, "Attempting to update secret")
	if res := r.update(ctx, restConfig, data); res.Failed() {
		return r.handle(res)
	}

	fmt.Fprintln(r.Out, "✅ Secret updated successfully!")
	r.Logger.Info("secret updated", "namespace", r.Config.Namespace, "name", r.Config.SecretName, "keys", len(data))
	return nil
}

func (r *Rotator) fetch(ctx context.Context) (models.Credentials, Result) {
	creds, err := r.Fetcher.Fetch(ctx, r.Config.APIURL)
	if err != nil {
		return nil, Result{Category: CategoryFetch, Err: err}
	}
	r.Logger.Info("credentials fetched", "keys", len(creds))
	return creds, Result{}
}

func (r *Rotator) establish() (*rest.Config, Result) {
	restConfig, strategy, err := auth.Establish(r.Logger, r.Strategies...)
	if err != nil {
		return nil, Result{Category: CategoryAuth, Err: err}
	}
	r.Logger.Info("cluster configuration loaded", "strategy", strategy.Name(), "host", restConfig.Host)
	return restConfig, Result{}
}

func (r *Rotator) update(ctx context.Context, restConfig *rest.Config, data models.SecretDataMap) Result {
	session, err := r.NewSession(ctx, restConfig)
	if err != nil {
		// without a session the secret cannot be read
		return Result{Category: CategoryRead, Err: err}
	}

	err = session.ReplaceSecretData(r.Config.Namespace, r.Config.SecretName, data)
	switch {
	case err == nil:
		return Result{}
	case errors.Is(err, k8s.ErrSecretRead):
		return Result{Category: CategoryRead, Err: err}
	default:
		return Result{Category: CategoryWrite, Err: err}
	}
}

func (r *Rotator) handle(res Result) error {
	policy := Policies[res.Category]
	if policy.Message != "" {
		fmt.Fprintf(r.Out, "%s: %v\n", policy.Message, res.Err)
	}
	r.Logger.Error("rotation failed", "category", res.Category, "error", res.Err, "propagate", policy.Propagate)
	if policy.Propagate {
		return res.Err
	}
	return nil
}
