package main

import (
	"context"
	"log"
	"os"

	"credentialRotator/internal/config"
	"credentialRotator/internal/logging"
	"credentialRotator/internal/rotator"

	"github.com/spf13/cobra"
)

func main() {
	cmd, err := newRootCmd()
	if err != nil {
		log.Fatalf("failed to set up command: %v", err)
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd represents the base command. All settings come from the environment,
// flags are optional overrides.
func newRootCmd() (*cobra.Command, error) {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "credential-rotator",
		Short: "Fetch credentials from an HTTP endpoint and write them into a Kubernetes secret.",
		Long: `Fetches a flat JSON object from API_URL and replaces the whole data of the
secret SECRET_NAME in namespace NAMESPACE with it.

Cluster authentication is tried in order:
- in-cluster service account,
- KUBERNETES_SERVICE_HOST, KUBERNETES_SERVICE_PORT and KUBERNETES_TOKEN,
- the local kubeconfig file.

Only a failure to authenticate makes the command exit non-zero.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			logger := logging.GetLogger(cfg.Debug)
			return rotator.New(cfg, cmd.OutOrStdout(), logger).Run(cmd.Context())
		},
	}

	config.AddFlags(cmd.Flags())
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return cmd, nil
}
