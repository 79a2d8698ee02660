package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dinedex/dinedex/internal/profile"
	"github.com/dinedex/dinedex/internal/version"
	"github.com/dinedex/dinedex/server"
	"github.com/dinedex/dinedex/store"
	"github.com/dinedex/dinedex/store/db"
)

const greetingBanner = `Welcome to dinedex, the restaurant directory service.`

var rootCmd = &cobra.Command{
	Use:   "dinedex",
	Short: "A restaurant directory service with schedule-aware search",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:           viper.GetString("mode"),
			Addr:           viper.GetString("addr"),
			Port:           viper.GetInt("port"),
			Data:           viper.GetString("data"),
			Driver:         viper.GetString("driver"),
			DSN:            viper.GetString("dsn"),
			InstanceURL:    viper.GetString("instance-url"),
			ImportMaxBytes: viper.GetInt64("import-max-bytes"),
		}
		// Environment beats flags so container deployments can override
		// baked-in defaults.
		instanceProfile.FromEnv()
		instanceProfile.Version = version.GetCurrentVersion(instanceProfile.Mode)
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		fmt.Printf("%s\n", greetingBanner)
		fmt.Printf("Version %s has been started on %s:%d\n", instanceProfile.Version, instanceProfile.Addr, instanceProfile.Port)

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		slog.Info("shutting down")
		s.Shutdown(ctx)
		return nil
	},
}

func init() {
	rootCmd.Flags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.Flags().String("addr", "", "address of the server")
	rootCmd.Flags().Int("port", 8081, "port of the server")
	rootCmd.Flags().String("data", ".", "data directory")
	rootCmd.Flags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.Flags().String("dsn", "", "database source name")
	rootCmd.Flags().String("instance-url", "", "public url of the instance")
	rootCmd.Flags().Int64("import-max-bytes", 0, "maximum accepted size of a CSV import payload")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run command", "error", err)
		os.Exit(1)
	}
}
