package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyAPIURL                = "api-url"
	keyNamespace             = "namespace"
	keySecretName            = "secret-name"
	keyClusterHost           = "cluster-host"
	keyClusterPort           = "cluster-port"
	keyClusterToken          = "cluster-token"
	keyInsecureSkipTLSVerify = "insecure-skip-tls-verify"
	keyKubeconfig            = "kubeconfig"
	keyDebug                 = "debug"
)

// env lists the environment variable read for each key.
// KUBECONFIG is left to the client-go loading rules, which understand path lists.
var env = map[string]string{
	keyAPIURL:                "API_URL",
	keyNamespace:             "NAMESPACE",
	keySecretName:            "SECRET_NAME",
	keyClusterHost:           "KUBERNETES_SERVICE_HOST",
	keyClusterPort:           "KUBERNETES_SERVICE_PORT",
	keyClusterToken:          "KUBERNETES_TOKEN",
	keyInsecureSkipTLSVerify: "KUBERNETES_INSECURE_SKIP_TLS_VERIFY",
	keyDebug:                 "DEBUG",
}

// Config holds everything a rotation run needs.
// APIURL, Namespace and SecretName have no defaults and are not validated:
// empty values are passed on and fail at the HTTP client or the API server.
type Config struct {
	APIURL     string
	Namespace  string
	SecretName string

	// Only used by the bearer-token strategy
	ClusterHost  string
	ClusterPort  string
	ClusterToken string
	// InsecureSkipTLSVerify turns off certificate verification for the bearer-token strategy.
	// Defaults to true for clusters with self-signed certificates (e.g. CRC).
	InsecureSkipTLSVerify bool

	// Kubeconfig is an explicit kubeconfig path from --kubeconfig.
	// Empty means client-go default loading rules ($KUBECONFIG, then ~/.kube/config).
	Kubeconfig string
	Debug      bool
}

// NewViper returns a viper instance with every key bound to its environment variable
func NewViper() *viper.Viper {
	v := viper.New()
	for key, name := range env {
		// BindEnv only fails when no key is given
		_ = v.BindEnv(key, name)
	}
	v.SetDefault(keyInsecureSkipTLSVerify, true)
	return v
}

// AddFlags registers the optional command line overrides
func AddFlags(flags *pflag.FlagSet) {
	flags.Bool(keyDebug, false, "Whether to enable debug logging.")
	flags.String(keyKubeconfig, "", "Path to a kubeconfig file, used when neither in-cluster nor token auth is available.")
	flags.Bool(keyInsecureSkipTLSVerify, true, "Skip TLS certificate verification when authenticating with KUBERNETES_TOKEN.")
}

// BindFlags makes flags registered by AddFlags take precedence over the environment when set
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{keyDebug, keyKubeconfig, keyInsecureSkipTLSVerify} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", key, err)
		}
	}
	return nil
}

// Load reads the configuration from v
func Load(v *viper.Viper) Config {
	return Config{
		APIURL:                v.GetString(keyAPIURL),
		Namespace:             v.GetString(keyNamespace),
		SecretName:            v.GetString(keySecretName),
		ClusterHost:           v.GetString(keyClusterHost),
		ClusterPort:           v.GetString(keyClusterPort),
		ClusterToken:          v.GetString(keyClusterToken),
		InsecureSkipTLSVerify: v.GetBool(keyInsecureSkipTLSVerify),
		Kubeconfig:            v.GetString(keyKubeconfig),
		Debug:                 v.GetBool(keyDebug),
	}
}
