package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"modelbridge/pkg/gateway"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the http transport",
	Long: `Issue an HS256 bearer token signed with server.jwt_secret.

Clients send it as "Authorization: Bearer <token>" to the MCP endpoint and the
/api/v1 routes. A zero --ttl issues a token without expiry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		cfg, err := loader.Load(configPath)
		if err != nil {
			return err
		}
		token, err := gateway.GenerateToken(cfg.Server.JWTSecret, tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (default anonymous)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
