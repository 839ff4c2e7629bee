package cmd

import (
	"fmt"
	"os"

	"homechef-api/config"
	"homechef-api/seed"

	"github.com/spf13/cobra"
)

var (
	seedReset bool
	seedFake  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample chefs and meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Read(cfgFile, nil)
		if err != nil {
			return err
		}
		if err := cfg.Database.Validate(); err != nil {
			return err
		}

		db, err := config.OpenDB(cfg.Database, config.NewLogger(cfg.Log, os.Stderr))
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		res, err := seed.Run(cmd.Context(), db, seed.Options{
			Reset:    seedReset,
			Fake:     seedFake,
			Progress: os.Stderr,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chefs created: %d, meals created: %d, meals skipped: %d\n",
			res.ChefsCreated, res.MealsCreated, res.MealsSkipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete all meals before seeding")
	seedCmd.Flags().IntVar(&seedFake, "fake", 0, "number of generated meals to add")
}
