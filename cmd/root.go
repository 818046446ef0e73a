package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/foodcart/internal/logging"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *models.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "foodcart",
	Short: "Builds, prices and validates online ordering carts",
	Long: `foodcart is a CLI around an online ordering cart engine. It prices carts from a
menu catalog, stores them between visits, revalidates them when the menu has changed
and prepares order submissions. It can also simulate shoppers against a drifting catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = models.LoadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foodcart.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("store-driver", models.StoreDriverMemory, "Cart store: memory, postgres or sqlite")
	flags.String("store-dsn", "", "Connection string or file of the cart store")
	flags.Bool("points-enabled", false, "Keep loyalty points on cart lines")
	flags.IntSlice("sold-out", nil, "Item or option ids that are sold out")

	bindFlag("log.level", flags.Lookup("log-level"))
	bindFlag("store.driver", flags.Lookup("store-driver"))
	bindFlag("store.dsn", flags.Lookup("store-dsn"))
	bindFlag("points_enabled", flags.Lookup("points-enabled"))
	bindFlag("sold_out", flags.Lookup("sold-out"))
}

func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
