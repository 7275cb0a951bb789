package main

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	tokenUser uint
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token for an existing user",
	Args:  cobra.NoArgs,
	RunE:  withEnv(runToken),
}

func init() {
	tokenCmd.Flags().UintVar(&tokenUser, "user", 0, "user id to mint the token for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(ctx context.Context, e *env, cmd *cobra.Command, _ []string) error {
	if e.cfg.AuthProvider != config.AuthJWT {
		return errors.New("tokens can only be minted with AUTH_PROVIDER=jwt")
	}
	user, err := e.repos.Users.GetUserByID(ctx, tokenUser)
	if err != nil {
		return errors.Wrapf(err, "load user %d", tokenUser)
	}
	token, err := auth.MintToken(e.cfg.JWTSecret, user, tokenTTL)
	if err != nil {
		return errors.Wrap(err, "sign token")
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
