package commands

import (
	"errors"
	"fmt"

	"worktrack/internal/repository"
	"worktrack/internal/tracker"
	"worktrack/pkg/logger"

	"github.com/spf13/cobra"
)

var adminFlags struct {
	login    string
	password string
	name     string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account unless the login is taken",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminFlags.login == "" || adminFlags.password == "" {
			return errors.New("--login and --password are required")
		}

		_, db, err := setup()
		if err != nil {
			return err
		}
		defer logger.SyncLoggers()
		defer db.Close()

		if err := repository.CreateTableIfNotExists(db); err != nil {
			return err
		}

		var created bool
		err = repository.WithinTx(cmd.Context(), repository.NewStore(db), func(uow *repository.UnitOfWork) error {
			created, err = tracker.EnsureAdmin(cmd.Context(), uow, adminFlags.name, adminFlags.login, adminFlags.password)
			return err
		})
		if err != nil {
			return err
		}

		if created {
			fmt.Printf("Admin %q created\n", adminFlags.login)
		} else {
			fmt.Printf("User %q already exists\n", adminFlags.login)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.login, "login", "admin", "login of the admin account")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "password of the admin account")
	createAdminCmd.Flags().StringVar(&adminFlags.name, "name", "Administrator", "display name")
}
