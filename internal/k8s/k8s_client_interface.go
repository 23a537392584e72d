package k8s

import "credentialRotator/internal/models"

// SecretUpdater defines the session methods used by the rotator so it can be faked in tests.
type SecretUpdater interface {
	ReplaceSecretData(namespace, name string, data models.SecretDataMap) error
}

var _ SecretUpdater = &Client{}
