package mocks

import (
	"fmt"
	"maps"

	"credentialRotator/internal/k8s"
	"credentialRotator/internal/models"
)

// MockK8sClient implements the k8s.SecretUpdater interface for tests.
type MockK8sClient struct {
	// call flag for assertions
	ReplaceSecretDataCalled bool

	// forceable errors (set in tests)
	ReadErr  error
	WriteErr error

	// Key - namespace/name
	Secrets map[string]ExampleSecret
}

type ExampleSecret struct {
	Namespace string
	Name      string
	Data      models.SecretDataMap
}

// helper: build a single unique key for a secret in K8s style: "<namespace>/<name>"
func makeKey(namespace, name string) string {
	return fmt.Sprintf("%s/%s", namespace, name)
}

func NewMockK8sClient() *MockK8sClient {
	return &MockK8sClient{
		Secrets: make(map[string]ExampleSecret),
	}
}

// AddSecret seeds an existing secret
func (m *MockK8sClient) AddSecret(namespace, name string, data models.SecretDataMap) {
	m.Secrets[makeKey(namespace, name)] = ExampleSecret{
		Namespace: namespace,
		Name:      name,
		Data:      maps.Clone(data),
	}
}

// Secret returns the stored secret data
func (m *MockK8sClient) Secret(namespace, name string) (models.SecretDataMap, bool) {
	sec, ok := m.Secrets[makeKey(namespace, name)]
	return sec.Data, ok
}

// ReplaceSecretData replaces the data of an existing secret. Returns a k8s.ErrSecretRead error if it does not exist.
func (m *MockK8sClient) ReplaceSecretData(namespace, name string, data models.SecretDataMap) error {
	m.ReplaceSecretDataCalled = true
	if m.ReadErr != nil {
		return fmt.Errorf("%w %s/%s: %w", k8s.ErrSecretRead, namespace, name, m.ReadErr)
	}

	key := makeKey(namespace, name)
	if _, ok := m.Secrets[key]; !ok {
		return fmt.Errorf("%w %s: not found", k8s.ErrSecretRead, key)
	}
	if m.WriteErr != nil {
		return fmt.Errorf("%w %s: %w", k8s.ErrSecretWrite, key, m.WriteErr)
	}

	m.Secrets[key] = ExampleSecret{
		Namespace: namespace,
		Name:      name,
		Data:      maps.Clone(data),
	}
	return nil
}
