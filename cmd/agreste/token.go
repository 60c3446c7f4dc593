package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/utils"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin token for the secret_token cookie",
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" {
			return fmt.Errorf("%s is required", constants.ViperSecretKey)
		}

		token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: secret}, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime, 0 for none")
	rootCmd.AddCommand(tokenCmd)
}
