package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/simonvc/ratedash/internal/client"
	"github.com/spf13/cobra"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List active currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := client.New(flagServer).FetchCurrencyCodesNames(context.Background())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No currencies found.")
			return nil
		}

		codes := make([]string, 0, len(names))
		for code := range names {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		fmt.Printf("%-6s %s\n", "CODE", "NAME")
		fmt.Printf("%-6s %s\n", "----", "----")
		for _, code := range codes {
			fmt.Printf("%-6s %s\n", code, names[code])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
}
