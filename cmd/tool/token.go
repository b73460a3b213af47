package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for an existing employee",
	Example: `
  # Token for scripts and smoke tests
  tool token --email hr@example.com
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		emp, err := postgresql.NewEmployeeRepository(db).GetByEmail(ctx, tokenEmail)
		if err != nil {
			return fmt.Errorf("failed to find employee %s: %w", tokenEmail, err)
		}

		tokenString, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
			GenerateAccessToken(emp.ID, emp.Email, emp.Role)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "[token] role=%s expires=%s\n", emp.Role, time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
		fmt.Println(tokenString)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Employee email")
	_ = tokenCmd.MarkFlagRequired("email")
}
