package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"k8s.io/client-go/rest"
)

var (
	// ErrUnavailable is wrapped by a Strategy that cannot apply in the current environment.
	// Establish moves on to the next strategy.
	ErrUnavailable = errors.New("authentication strategy unavailable")

	// ErrNoStrategy is returned by Establish when every strategy was unavailable
	ErrNoStrategy = errors.New("no usable cluster authentication strategy")
)

// Strategy produces a cluster config, or signals that it does not apply
type Strategy interface {
	Name() string
	Config() (*rest.Config, error)
}

// Establish tries each strategy in order and returns the config of the first one that succeeds.
// A failure not wrapping ErrUnavailable is terminal and returned as is.
func Establish(logger *slog.Logger, strategies ...Strategy) (*rest.Config, Strategy, error) {
	for _, s := range strategies {
		config, err := s.Config()
		if err == nil {
			return config, s, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return nil, s, fmt.Errorf("%s strategy: %w", s.Name(), err)
		}
		logger.Debug("authentication strategy skipped", "strategy", s.Name(), "reason", err)
	}
	return nil, nil, ErrNoStrategy
}
