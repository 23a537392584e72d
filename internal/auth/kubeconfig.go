package auth

import (
	"fmt"
	"io"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Swapped in tests
var loadKubeconfig = func(path string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		rules.ExplicitPath = path
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}

// Kubeconfig loads the local kubeconfig file used for interactive access.
// It is the last strategy: a failure here is terminal.
type Kubeconfig struct {
	// Path overrides the default loading rules ($KUBECONFIG, then ~/.kube/config)
	Path string
	Out  io.Writer
}

func (Kubeconfig) Name() string { return "kubeconfig" }

func (s Kubeconfig) Config() (*rest.Config, error) {
	config, err := loadKubeconfig(s.Path)
	if err != nil {
		fmt.Fprintf(s.Out, "Failed to load Kubernetes config: %v\n", err)
		fmt.Fprintln(s.Out, "Make sure you're logged into OpenShift with 'oc login' or set KUBERNETES_* env vars")
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	fmt.Fprintln(s.Out, "Using kubeconfig file")
	return config, nil
}
