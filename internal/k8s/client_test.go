package k8s

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// Testing the NewClientWithConfig function with various scenarios
func TestNewClientWithConfig(t *testing.T) {
	// Backup original function
	origNewForConfig := newForConfig
	defer func() {
		newForConfig = origNewForConfig
	}()

	tests := []struct {
		name          string
		config        *rest.Config
		newForErr     error
		expectError   bool
		expectMessage string
	}{
		{
			name:        "config from a strategy",
			config:      &rest.Config{Host: "https://api.crc.testing:6443", BearerToken: "t"},
			expectError: false,
		},
		{
			name:          "nil config",
			config:        nil,
			expectError:   true,
			expectMessage: "config cannot be nil",
		},
		{
			name:          "clientset creation fails",
			config:        &rest.Config{},
			newForErr:     errors.New("bad config"),
			expectError:   true,
			expectMessage: "bad config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newForConfig = func(_ *rest.Config) (*kubernetes.Clientset, error) {
				if tt.newForErr != nil {
					return nil, tt.newForErr
				}
				return &kubernetes.Clientset{}, nil
			}

			client, err := NewClientWithConfig(context.Background(), tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectMessage)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
				assert.Equal(t, context.Background(), client.Context)
			}
		})
	}
}

// A real clientset can be built from the kind of config the bearer-token strategy returns
func TestNewClientWithConfig_Insecure(t *testing.T) {
	client, err := NewClientWithConfig(context.Background(), &rest.Config{
		Host:            "https://api.crc.testing:6443",
		BearerToken:     "t",
		TLSClientConfig: rest.TLSClientConfig{Insecure: true},
	})
	assert.NoError(t, err)
	assert.NotNil(t, client.ClientSet)
}
