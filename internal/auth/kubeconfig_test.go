package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/rest"
)

const validKubeconfigYAML = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: local
contexts:
- context:
    cluster: local
    user: developer
  name: local
current-context: local
users:
- name: developer
  user:
    token: developer-token
`

func writeKubeconfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestKubeconfig_Config(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		expectError bool
	}{
		{
			name: "valid file",
			path: func(t *testing.T) string { return writeKubeconfig(t, validKubeconfigYAML) },
		},
		{
			name:        "missing file",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "does-not-exist") },
			expectError: true,
		},
		{
			name:        "malformed file",
			path:        func(t *testing.T) string { return writeKubeconfig(t, "clusters: [this is: not valid") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := Kubeconfig{Path: tt.path(t), Out: &out}

			config, err := s.Config()

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, config)
				assert.NotErrorIs(t, err, ErrUnavailable)
				assert.Contains(t, err.Error(), "failed to load kubeconfig")
				assert.Contains(t, out.String(), "Failed to load Kubernetes config")
				assert.Contains(t, out.String(), "oc login")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://127.0.0.1:6443", config.Host)
			assert.Equal(t, "developer-token", config.BearerToken)
			assert.Contains(t, out.String(), "Using kubeconfig file")
		})
	}
}

// The default loading rules walk a KUBECONFIG list and skip missing entries
func TestKubeconfig_EnvPathList(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing-config")
	valid := writeKubeconfig(t, validKubeconfigYAML)
	t.Setenv("KUBECONFIG", missing+string(filepath.ListSeparator)+valid)

	var out bytes.Buffer
	config, err := Kubeconfig{Out: &out}.Config()

	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:6443", config.Host)
	assert.Equal(t, "developer-token", config.BearerToken)
	assert.Contains(t, out.String(), "Using kubeconfig file")
}

func TestKubeconfig_PassesPath(t *testing.T) {
	orig := loadKubeconfig
	defer func() { loadKubeconfig = orig }()

	var gotPath string
	loadKubeconfig = func(path string) (*rest.Config, error) {
		gotPath = path
		return &rest.Config{Host: "https://mocked"}, nil
	}

	config, err := Kubeconfig{Path: "/home/dev/.kube/crc", Out: &bytes.Buffer{}}.Config()
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/.kube/crc", gotPath)
	assert.Equal(t, "https://mocked", config.Host)
}

// Testing the in-cluster strategy with a mocked rest.InClusterConfig
func TestInCluster_Config(t *testing.T) {
	orig := inClusterConfig
	defer func() { inClusterConfig = orig }()

	tests := []struct {
		name         string
		inClusterErr error
		expectError  bool
	}{
		{
			name: "running in a pod",
		},
		{
			name:         "not in a cluster",
			inClusterErr: rest.ErrNotInCluster,
			expectError:  true,
		},
		{
			name:         "token file unreadable",
			inClusterErr: errors.New("open /var/run/secrets/kubernetes.io/serviceaccount/token: permission denied"),
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inClusterConfig = func() (*rest.Config, error) {
				if tt.inClusterErr != nil {
					return nil, tt.inClusterErr
				}
				return &rest.Config{Host: "https://10.96.0.1:443"}, nil
			}

			var out bytes.Buffer
			config, err := InCluster{Out: &out}.Config()

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)
				assert.ErrorIs(t, err, tt.inClusterErr)
				assert.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://10.96.0.1:443", config.Host)
			assert.Contains(t, out.String(), "Using in-cluster configuration")
		})
	}
}
