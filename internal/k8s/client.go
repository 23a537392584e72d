package k8s

import (
	"context"
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// Adding the following variable, so that the code can be tested
var newForConfig = kubernetes.NewForConfig

// Client is the cluster session of a run. It is built once from the config
// chosen by the auth strategies and passed explicitly to whoever needs it.
type Client struct {
	ClientSet kubernetes.Interface
	Context   context.Context
}

// NewClientWithConfig creates a session from an already resolved config
func NewClientWithConfig(ctx context.Context, config *rest.Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("failed to create kubernetes client: config cannot be nil")
	}
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return &Client{ClientSet: clientset, Context: ctx}, nil
}

func (c *Client) ctx() context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
