package k8s

import (
	"encoding/json"
	"errors"
	"fmt"

	"credentialRotator/internal/models"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

var (
	// ErrSecretRead wraps failures to read the target secret (not found, forbidden, network)
	ErrSecretRead = errors.New("failed to get secret")
	// ErrSecretWrite wraps failures to write the target secret back
	ErrSecretWrite = errors.New("failed to patch secret")
)

// GetSecret retrieves a Kubernetes secret
func (c *Client) GetSecret(namespace, name string) (*v1.Secret, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(namespace).Get(c.ctx(), name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w %s/%s: %w", ErrSecretRead, namespace, name, err)
	}
	return secret, nil
}

// ReplaceSecretData overwrites the whole data map of an existing secret.
// Keys of the current secret missing from data are removed, nothing is merged.
// The secret must exist, it is never created. No resourceVersion is sent, so
// concurrent writers are not detected.
func (c *Client) ReplaceSecretData(namespace, name string, data models.SecretDataMap) error {
	secret, err := c.GetSecret(namespace, name)
	if err != nil {
		return err
	}

	patch, err := replaceDataPatch(secret.Data, data)
	if err != nil {
		return fmt.Errorf("%w %s/%s: %w", ErrSecretWrite, namespace, name, err)
	}

	_, err = c.ClientSet.CoreV1().Secrets(namespace).Patch(c.ctx(), name, types.MergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("%w %s/%s: %w", ErrSecretWrite, namespace, name, err)
	}
	return nil
}

// replaceDataPatch builds a JSON merge patch turning current into data.
// Values are already base64 encoded, which is what the API expects on the wire.
func replaceDataPatch(current map[string][]byte, data models.SecretDataMap) ([]byte, error) {
	type patchPayload struct {
		Data map[string]*string `json:"data"`
	}
	payload := patchPayload{Data: make(map[string]*string, len(current)+len(data))}
	for k := range current {
		payload.Data[k] = nil
	}
	for k, v := range data {
		v := v
		payload.Data[k] = &v
	}
	patch, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}
	return patch, nil
}
