package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/ratedash/internal/store"
	"github.com/spf13/cobra"
)

var (
	loadRatesFile string
	loadNamesFile string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import historical daily rates into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		hf, err := store.ReadHistoryFile(loadRatesFile)
		if err != nil {
			return err
		}
		names, err := store.ReadNamesFile(loadNamesFile)
		if err != nil {
			return err
		}

		st, err := store.Open(flagDB)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := st.Import(context.Background(), hf, names)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d days of %s rates (%d currencies) into %s\n", res.Days, hf.Base, res.Currencies, flagDB)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadRatesFile, "rates", "historical_rates.json", "JSON file of daily rates keyed by date")
	loadCmd.Flags().StringVar(&loadNamesFile, "names", "", "JSON file mapping currency codes to names")
	rootCmd.AddCommand(loadCmd)
}
