package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "homechef-api",
	Short: "REST backend for the HomeChef meal marketplace",
	Long: `homechef-api serves the HomeChef marketplace: chefs publish meals, users order and pay
for them through Stripe checkout, and admins moderate roles and orders.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml or json)")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
