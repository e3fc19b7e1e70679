package main

import (
	"fmt"
	"time"

	"github.com/rankmath/repair-action-scheduler/pkg/auth"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the notice server",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("name", "operator", "operator name stored in the token")
	tokenCmd.Flags().Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HTTP.JWTSecret == "" {
		return apperrors.NewValidationError("http.jwt_secret", "required to issue tokens")
	}

	name, _ := cmd.Flags().GetString("name")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := auth.GenerateToken([]byte(cfg.HTTP.JWTSecret), auth.Operator{Name: name}, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", token)
	if ttl > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Now().Add(ttl).Format(time.RFC3339))
	}
	return nil
}
