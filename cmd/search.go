package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

var (
	searchMarket string
	searchSize   int
	searchPrices bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the product catalog directly",
	Long:  `Runs a keyword search against the product catalog without any AI involvement, optionally resolving current prices.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newCatalogClient(cfg, logger)
		if err != nil {
			return err
		}

		market := cfg.Market
		if searchMarket != "" {
			market = searchMarket
		}
		size := cfg.Catalog.SearchSize
		if searchSize > 0 {
			size = searchSize
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		query := strings.Join(args, " ")
		candidates, err := client.Search(ctx, query, market, size)
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			fmt.Println("No products found.")
			return nil
		}

		for _, c := range candidates {
			fmt.Printf("%s  %s", c.ProductID, c.Name)
			if c.Brand != "" {
				fmt.Printf(" (%s)", c.Brand)
			}
			if searchPrices {
				quote, err := client.Offers(ctx, c.ProductID, market)
				if err != nil {
					fmt.Printf("  [price lookup failed: %v]", err)
				} else if quote != nil {
					fmt.Printf("  %g-%g %s", quote.MinPrice, quote.MaxPrice, quote.Currency)
				} else {
					fmt.Print("  [no offers]")
				}
			}
			fmt.Printf("\n  %s\n", catalog.ProductURL(c.ProductID, market))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchMarket, "market", "", "market code (overrides config)")
	searchCmd.Flags().IntVar(&searchSize, "size", 0, "number of results (overrides config)")
	searchCmd.Flags().BoolVar(&searchPrices, "prices", false, "resolve current prices for each result")
	rootCmd.AddCommand(searchCmd)
}
