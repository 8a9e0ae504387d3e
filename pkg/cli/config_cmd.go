package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI profiles",
	}
	cmd.AddCommand(
		newConfigSetProfileCmd(),
		newConfigUseProfileCmd(),
		newConfigListProfilesCmd(),
		newConfigDeleteProfileCmd(),
	)
	return cmd
}

func newConfigSetProfileCmd() *cobra.Command {
	var (
		host  string
		token string
	)
	cmd := &cobra.Command{
		Use:   "set-profile NAME",
		Short: "Create or update a named profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if host == "" {
				return fmt.Errorf("--host is required")
			}
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			profile := cfg.Profiles[args[0]]
			profile.Host = host
			if token != "" {
				profile.Token = token
			}
			cfg.Profiles[args[0]] = profile
			if cfg.ActiveProfile == "" {
				cfg.ActiveProfile = args[0]
			}
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved to %s\n", args[0], configPathForDisplay())
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Base URL of the access manager service")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token for authentication")
	return cmd
}

func newConfigUseProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-profile NAME",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			if _, ok := cfg.Profiles[args[0]]; !ok {
				return fmt.Errorf("profile %q not found in %s", args[0], configPathForDisplay())
			}
			cfg.ActiveProfile = args[0]
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active profile set to %q\n", args[0])
			return nil
		},
	}
}

func newConfigListProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-profiles",
		Short: "List configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(cfg.Profiles))
			for name := range cfg.Profiles {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				marker := ""
				if name == cfg.ActiveProfile {
					marker = "*"
				}
				rows = append(rows, []string{marker, name, cfg.Profiles[name].Host})
			}
			return printTable(cmd.OutOrStdout(), []string{"", "NAME", "HOST"}, rows)
		},
	}
}

func newConfigDeleteProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-profile NAME",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			if _, ok := cfg.Profiles[args[0]]; !ok {
				return fmt.Errorf("profile %q not found in %s", args[0], configPathForDisplay())
			}
			delete(cfg.Profiles, args[0])
			if cfg.ActiveProfile == args[0] {
				cfg.ActiveProfile = ""
			}
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
			return nil
		},
	}
}
