package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/ratedash/internal/client"
	"github.com/simonvc/ratedash/internal/fx"
	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Query exchange rates",
}

var ratesBase string

var ratesLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := client.New(flagServer).LatestRates(context.Background(), ratesBase)
		if err != nil {
			return err
		}
		printRateSet(rs)
		return nil
	},
}

var ratesPreviousCmd = &cobra.Command{
	Use:   "previous",
	Short: "Show the rates of the day before the latest",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := client.New(flagServer).PreviousRates(context.Background(), ratesBase)
		if err != nil {
			return err
		}
		printRateSet(rs)
		return nil
	},
}

func printRateSet(rs *fx.RateSet) {
	fmt.Printf("Base: %s  Date: %s\n\n", rs.Base, rs.Date)
	fmt.Printf("%-6s %14s\n", "CODE", "RATE")
	fmt.Printf("%-6s %14s\n", "----", "----")
	for _, code := range rs.Codes() {
		fmt.Printf("%-6s %14s\n", code, fx.FormatRate(rs.Rates[code], false))
	}
}

var ratesConvertCmd = &cobra.Command{
	Use:   "convert AMOUNT FROM TO",
	Short: "Convert an amount between currencies",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := fx.NormalizeCode(args[1]), fx.NormalizeCode(args[2])
		conv, err := client.New(flagServer).Convert(context.Background(), args[0], from, to)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s = %s %s\n", fx.FormatAmount(conv.Amount), conv.From, fx.FormatAmount(conv.Result), conv.To)
		fmt.Printf("Rate: %s (%s)\n", fx.FormatRate(conv.Rate, false), conv.Date)
		return nil
	},
}

var ratesHistoryPeriod string

var ratesHistoryCmd = &cobra.Command{
	Use:   "history FROM TO",
	Short: "Show the daily rates of a pair over a period",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := fx.ParsePeriod(ratesHistoryPeriod)
		if err != nil {
			return err
		}
		from, to := fx.NormalizeCode(args[0]), fx.NormalizeCode(args[1])
		series, err := client.New(flagServer).Historical(context.Background(), from, to, period)
		if err != nil {
			return err
		}

		fmt.Printf("%s/%s over %s\n\n", series.From, series.To, period.Label())
		if len(series.Data) == 0 {
			fmt.Println("No data for this period.")
			return nil
		}
		for _, s := range series.Data {
			fmt.Printf("%-12s %s\n", fx.TooltipDate(s.Date), fx.FormatRate(s.Rate, false))
		}
		return nil
	},
}

func init() {
	ratesLatestCmd.Flags().StringVar(&ratesBase, "base", "", "Quote rates against this currency")
	ratesPreviousCmd.Flags().StringVar(&ratesBase, "base", "", "Quote rates against this currency")
	ratesHistoryCmd.Flags().StringVar(&ratesHistoryPeriod, "period", string(fx.PeriodWeek), "Period (1w, 1m, 1y, 5y, 10y)")

	ratesCmd.AddCommand(ratesLatestCmd)
	ratesCmd.AddCommand(ratesPreviousCmd)
	ratesCmd.AddCommand(ratesConvertCmd)
	ratesCmd.AddCommand(ratesHistoryCmd)
	rootCmd.AddCommand(ratesCmd)
}
