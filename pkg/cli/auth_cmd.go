package cli

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}
	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for the access manager service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			now := time.Now()
			claims := jwt.MapClaims{
				"sub": subject,
				"iat": now.Unix(),
				"exp": now.Add(ttl).Unix(),
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			if save {
				if err := saveTokenToActiveProfile(token); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Token saved to active profile")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC signing secret")
	cmd.Flags().StringVar(&subject, "subject", "accessctl", "Token subject claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "Store the token in the active profile instead of printing it")
	return cmd
}

func saveTokenToActiveProfile(token string) error {
	cfg, err := LoadUserConfig()
	if err != nil {
		return err
	}
	if cfg.ActiveProfile == "" {
		return fmt.Errorf("no active profile: run 'accessctl config use-profile' first")
	}
	profile := cfg.Profiles[cfg.ActiveProfile]
	profile.Token = token
	cfg.Profiles[cfg.ActiveProfile] = profile
	return SaveUserConfig(cfg)
}
