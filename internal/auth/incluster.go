package auth

import (
	"fmt"
	"io"

	"k8s.io/client-go/rest"
)

// Swapped in tests
var inClusterConfig = rest.InClusterConfig

// InCluster uses the service account mounted into the pod
type InCluster struct {
	Out io.Writer
}

func (InCluster) Name() string { return "in-cluster" }

func (s InCluster) Config() (*rest.Config, error) {
	config, err := inClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	fmt.Fprintln(s.Out, "Using in-cluster configuration")
	return config, nil
}
