package cmd

import (
	"fmt"

	"flowerStore/config"
	"flowerStore/models"
	"flowerStore/repository"
	"flowerStore/services"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage dashboard administrators",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator",
	RunE:  runAdminCreate,
}

var adminPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change an administrator's password",
	RunE:  runAdminPasswd,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd, adminPasswdCmd)

	adminCmd.PersistentFlags().StringVar(&adminUsername, "username", "", "Administrator name (defaults to admin.username)")
	adminCmd.PersistentFlags().StringVar(&adminPassword, "password", "", "Administrator password")
	adminCmd.MarkPersistentFlagRequired("password")
}

func adminService(cmd *cobra.Command) (services.AdminService, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return services.AdminService{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return services.AdminService{}, nil, err
	}
	aR, err := repository.NewAdminRepository(db, newBreaker(cfg))
	if err != nil {
		db.Close()
		return services.AdminService{}, nil, err
	}
	as := services.NewAdminService(services.AdminParams{
		AdminRepo:       aR,
		DefaultUsername: cfg.Admin.Username,
	})
	return as, func() { db.Close() }, nil
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	as, closeFn, err := adminService(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := as.CreateAdmin(cmd.Context(), models.Credentials{Username: adminUsername, Password: adminPassword})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin created with id %d\n", id)
	return nil
}

func runAdminPasswd(cmd *cobra.Command, args []string) error {
	as, closeFn, err := adminService(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := as.ChangePassword(cmd.Context(), models.Credentials{Username: adminUsername, Password: adminPassword}); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "password updated")
	return nil
}
