package auth

import (
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"
	"k8s.io/client-go/rest"
)

// BearerToken talks to an explicitly given API server with a bearer token.
// It applies only when Host, Port and Token are all set.
type BearerToken struct {
	Host  string
	Port  string
	Token string

	// InsecureSkipTLSVerify disables verification of the API server certificate.
	// Needed for development clusters serving self-signed certificates.
	InsecureSkipTLSVerify bool

	Out io.Writer
}

func (BearerToken) Name() string { return "bearer-token" }

func (s BearerToken) Config() (*rest.Config, error) {
	fmt.Fprintf(s.Out, "HOST: %s\n", s.Host)
	fmt.Fprintf(s.Out, "PORT: %s\n", s.Port)
	// never print the token itself
	fmt.Fprintf(s.Out, "TOKEN: %s\n", RedactToken(s.Token))

	if s.Host == "" || s.Port == "" || s.Token == "" {
		return nil, fmt.Errorf("%w: KUBERNETES_SERVICE_HOST, KUBERNETES_SERVICE_PORT and KUBERNETES_TOKEN must all be set", ErrUnavailable)
	}

	fmt.Fprintf(s.Out, "Using token-based auth to %s:%s\n", s.Host, s.Port)
	if s.InsecureSkipTLSVerify {
		fmt.Fprintln(s.Out, "WARNING: TLS certificate verification is disabled")
	}
	return &rest.Config{
		Host:        "https://" + net.JoinHostPort(s.Host, s.Port),
		BearerToken: s.Token,
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: s.InsecureSkipTLSVerify,
		},
	}, nil
}

// RedactToken describes a bearer token without revealing it: its length, a short
// blake2b fingerprint and, for JWTs, the subject and expiry claims.
func RedactToken(token string) string {
	if token == "" {
		return "<unset>"
	}
	sum := blake2b.Sum256([]byte(token))
	parts := []string{
		fmt.Sprintf("len=%d", len(token)),
		"fingerprint=" + hex.EncodeToString(sum[:6]),
	}

	// Service account tokens are JWTs. The claims are read without verifying the signature.
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if claims.Subject != "" {
			parts = append(parts, "sub="+claims.Subject)
		}
		if claims.ExpiresAt != nil {
			parts = append(parts, "exp="+claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
	}
	return "<redacted " + strings.Join(parts, " ") + ">"
}
