package command

import (
	"errors"
	"fmt"

	"artshare/database"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	adminUsername  string
	adminEmail     string
	adminPassword  string
	adminFirstName string
	adminSurname   string

	roleUsername string
	roleName     string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Create an administrator, or promote an existing account",
	Example: `  artshare-cli account create-admin --username curator --email curator@example.com --password 'long-secret'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 8 {
			return errors.New("password must be at least 8 characters")
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		created, err := database.EnsureAdmin(cmd.Context(), db, database.AdminSpec{
			Username:  adminUsername,
			Email:     adminEmail,
			Password:  adminPassword,
			FirstName: adminFirstName,
			Surname:   adminSurname,
		})
		if err != nil {
			return err
		}

		if created {
			color.Green("✓ Admin account %q created", adminUsername)
		} else {
			color.Green("✓ Account %q is an admin", adminUsername)
		}
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:     "set-role",
	Short:   "Change an account's role",
	Long:    "Change an account's role. Sessions keep the old role until the account logs in again.",
	Example: `  artshare-cli account set-role --username sunset_fan --role artist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		role := models.Role(roleName)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q (want enthusiast, artist or admin)", roleName)
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		accounts := repository.NewAccountRepository(db)
		account, err := accounts.FindByUsername(cmd.Context(), roleUsername)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no account named %q", roleUsername)
		}
		if err != nil {
			return err
		}

		if account.Role == role {
			color.Yellow("✓ %s is already %s", account.Username, role)
			return nil
		}
		if err := accounts.UpdateRole(cmd.Context(), account.ID, role); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		color.Green("✓ %s: %s -> %s", account.Username, account.Role, role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(createAdminCmd, setRoleCmd)

	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "admin email")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password (min 8 characters)")
	createAdminCmd.Flags().StringVar(&adminFirstName, "first-name", "", "first name (defaults to Site)")
	createAdminCmd.Flags().StringVar(&adminSurname, "surname", "", "surname (defaults to Admin)")
	createAdminCmd.MarkFlagRequired("username")
	createAdminCmd.MarkFlagRequired("email")
	createAdminCmd.MarkFlagRequired("password")

	setRoleCmd.Flags().StringVarP(&roleUsername, "username", "u", "", "account username")
	setRoleCmd.Flags().StringVarP(&roleName, "role", "r", "", "new role: enthusiast, artist or admin")
	setRoleCmd.MarkFlagRequired("username")
	setRoleCmd.MarkFlagRequired("role")
}
