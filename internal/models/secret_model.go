package models

import (
	"encoding/base64"
	"fmt"
	"slices"
)

// Credentials represents the key/values returned by the credential endpoint,
// every value already converted to its string form
type Credentials map[string]string

// SecretDataMap represents the data field of a Secret: same keys as Credentials,
// values base64 encoded
type SecretDataMap map[string]string

// Encode base64 encodes the UTF-8 bytes of every credential value
func Encode(creds Credentials) SecretDataMap {
	data := make(SecretDataMap, len(creds))
	for k, v := range creds {
		data[k] = base64.StdEncoding.EncodeToString([]byte(v))
	}
	return data
}

// Decode reverses Encode
func Decode(data SecretDataMap) (Credentials, error) {
	creds := make(Credentials, len(data))
	for k, v := range data {
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("failed to decode key %q: %w", k, err)
		}
		creds[k] = string(raw)
	}
	return creds, nil
}

// Keys returns the sorted key names. Used for logging, values are never logged.
func (d SecretDataMap) Keys() []string {
	var keys []string
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
