package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "schoolku_backend/internals/databases"
	authService "schoolku_backend/internals/features/users/auth/service"
)

var newUser authService.CreateUserInput

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a staff account (admin, accountant or teacher)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		u, err := authService.CreateUser(cmd.Context(), db, newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		log.Info("✅ user created", zap.String("id", u.ID.String()), zap.String("role", u.Role))
		return nil
	},
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.UserName, "username", "", "login name")
	f.StringVar(&newUser.FullName, "name", "", "full name")
	f.StringVar(&newUser.Email, "email", "", "email address")
	f.StringVar(&newUser.Password, "password", "", "initial password (min 8 chars)")
	f.StringVar(&newUser.Role, "role", "teacher", "admin | accountant | teacher")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createUserCmd)
}
