// Package cli implements the accessctl command line tool.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"accessgraph/client"
)

const envPrefix = "ACCESSCTL_"

// clientFactory resolves connection settings once in the root command's
// PersistentPreRunE, then builds clients on demand for subcommands.
type clientFactory struct {
	host  string
	token string
	debug bool
}

// New builds a string-keyed client for the resolved host.
func (f *clientFactory) New() (*client.StringClient, error) {
	if f.host == "" {
		return nil, fmt.Errorf("no host configured: pass --host, set %sHOST, or run 'accessctl config use-profile'", envPrefix)
	}
	opts := []client.Option{}
	if f.token != "" {
		h := http.Header{}
		h.Set("Authorization", "Bearer "+f.token)
		opts = append(opts, client.WithHeaders(h))
	}
	if f.debug {
		opts = append(opts, client.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return client.NewStringClient(f.host, opts...)
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		hostFlag    string
		tokenFlag   string
		profileFlag string
		outputFlag  string
		debugFlag   bool
	)

	factory := &clientFactory{}

	cmd := &cobra.Command{
		Use:           "accessctl",
		Short:         "Manage users, groups, and entity permissions in an access manager service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			profileName := firstNonEmpty(profileFlag, os.Getenv(envPrefix+"PROFILE"), cfg.ActiveProfile)
			var profile Profile
			if profileName != "" {
				p, ok := cfg.Profiles[profileName]
				if !ok && profileFlag != "" {
					return fmt.Errorf("profile %q not found in %s", profileName, configPathForDisplay())
				}
				profile = p
			}
			factory.host = firstNonEmpty(hostFlag, os.Getenv(envPrefix+"HOST"), profile.Host)
			factory.token = firstNonEmpty(tokenFlag, os.Getenv(envPrefix+"TOKEN"), profile.Token)
			factory.debug = debugFlag
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Base URL of the access manager service")
	cmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token for authentication")
	cmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Named profile from the config file")
	cmd.PersistentFlags().VarP(newOutputValue(&outputFlag), "output", "o", "Output format: table or json")
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log requests and responses to stderr")

	cmd.AddCommand(
		newUsersCmd(factory, &outputFlag),
		newGroupsCmd(factory, &outputFlag),
		newEntityTypesCmd(factory, &outputFlag),
		newAccessCmd(factory, &outputFlag),
		newApplyCmd(factory),
		newAuthCmd(),
		newConfigCmd(),
		newServeCmd(),
	)

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
