package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quantfold/rollstat"
	"github.com/quantfold/rollstat/binance"
	"github.com/quantfold/rollstat/chart"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "rollstat",
	Short:        "Rolling mean, volatility and Sharpe ratio over historical prices",
	Long: `rollstat fetches historical klines from Binance, streams the closing
prices through a rolling analytics window, prints the trailing rows of the
resulting table, and optionally renders the price, volatility and Sharpe
series as a chart.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().String("symbol", "BTCUSDT", "instrument symbol")
	rootCmd.Flags().String("interval", "1d", "kline interval")
	rootCmd.Flags().Int("window", 30, "rolling window size in observations")
	rootCmd.Flags().Int("limit", 365, "number of klines to fetch")
	rootCmd.Flags().Float64("risk-free", rollstat.DefaultRiskFreeRate, "annual risk-free rate for the Sharpe ratio")
	rootCmd.Flags().String("base-url", binance.MainnetUrl, "Binance API base URL")
	rootCmd.Flags().String("output", "rollstat.png", "chart output path (empty to skip rendering)")
	rootCmd.Flags().Int("tail", 5, "number of trailing rows to print")
	rootCmd.Flags().Bool("debug", false, "enable debug logging")

	viper.SetEnvPrefix("ROLLSTAT")
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	symbol := viper.GetString("symbol")
	interval := viper.GetString("interval")
	window := viper.GetInt("window")

	api, err := binance.NewApi(viper.GetString("base-url"), binance.Spot)
	if err != nil {
		return err
	}

	slog.Debug("fetching klines", "symbol", symbol, "interval", interval, "limit", viper.GetInt("limit"))
	klines, err := api.GetKlines(symbol, interval, viper.GetInt("limit"))
	if err != nil {
		return err
	}
	slog.Info("fetched klines", "symbol", symbol, "count", len(klines))

	frame, err := rollstat.Process(binance.ClosePrices(klines), window, viper.GetFloat64("risk-free"))
	if err != nil {
		return err
	}

	fmt.Print(frame.Tail(viper.GetInt("tail")))

	if out := viper.GetString("output"); out != "" {
		if err := chart.Render(frame, window, symbol, out); err != nil {
			return err
		}
		slog.Info("wrote chart", "path", out)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
