package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyshot/internal/pkg/jwt"
)

var tokenUserID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token",
	Long:  `Issue a bearer token signed with auth.jwt_secret for calling the API when authentication is enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is not configured")
		}
		expiry := cfg.Auth.AccessTokenExpiry
		if expiry == 0 {
			expiry = 24 * time.Hour
		}

		token, err := jwt.NewJWT(cfg.Auth.JWTSecret, expiry).GenerateToken(tokenUserID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVarP(&tokenUserID, "user-id", "u", "", "user id carried by the token")
	_ = tokenCmd.MarkFlagRequired("user-id")
}
