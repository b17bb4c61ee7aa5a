package command

// root.go defines the root command for the artshare admin CLI.
// Subcommands talk to the database directly, configured from the same
// environment as the web server.

import (
	"fmt"
	"os"

	"artshare/database"
	"artshare/internal/config"
	"artshare/internal/http-api/models"
	"artshare/internal/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "artshare-cli",
	Short: "artshare-cli - ArtShare administration tool",
	Long: `artshare-cli manages ArtShare accounts without going through the website.
Use it to bootstrap the first administrator or to change an account's role.

Configuration is read from the environment (and .env) like the server.

Use "artshare-cli command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// openDatabase loads config, connects and migrates. The caller closes the handle.
func openDatabase() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, logLevel, "text")

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, log, models.All()...); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}
