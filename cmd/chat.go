package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jose-Sabater/secret-santa/internal/giftfinder"
	"github.com/Jose-Sabater/secret-santa/internal/progress"
)

var (
	chatMarket   string
	chatMinPrice float64
	chatMaxPrice float64
	chatCount    int
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the gift assistant from the terminal",
	Long: `Starts an interactive gift-finding conversation. With a message
argument it answers once and exits; without one it runs a REPL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		engine, _, err := newEngine(cfg, logger)
		if err != nil {
			return err
		}

		constraints := giftfinder.SessionConstraints{
			Market:          cfg.Market,
			SuggestionCount: cfg.NumSuggestions,
		}
		if chatMarket != "" {
			constraints.Market = chatMarket
		}
		if chatCount > 0 {
			constraints.SuggestionCount = chatCount
		}
		if cmd.Flags().Changed("min") {
			constraints.MinPrice = &chatMinPrice
		}
		if cmd.Flags().Changed("max") {
			constraints.MaxPrice = &chatMaxPrice
		}

		timeout := time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second

		if len(args) > 0 {
			return runChatTurn(engine, strings.Join(args, " "), nil, constraints, timeout)
		}

		fmt.Println("Ho ho ho! Describe who you're shopping for. Type 'quit' to exit.")
		var history []giftfinder.ConversationTurn
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				return nil
			}

			result, err := recommendWithSpinner(engine, line, history, constraints, timeout)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}

			printResult(result)
			history = append(history,
				giftfinder.ConversationTurn{Role: giftfinder.RoleUser, Content: line},
				giftfinder.ConversationTurn{Role: giftfinder.RoleAssistant, Content: result.Message, Products: result.Products},
			)
		}
	},
}

func runChatTurn(engine *giftfinder.Engine, message string, history []giftfinder.ConversationTurn, constraints giftfinder.SessionConstraints, timeout time.Duration) error {
	result, err := recommendWithSpinner(engine, message, history, constraints, timeout)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func recommendWithSpinner(engine *giftfinder.Engine, message string, history []giftfinder.ConversationTurn, constraints giftfinder.SessionConstraints, timeout time.Duration) (*giftfinder.Result, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	spinner := progress.NewSpinner()
	spinner.Start("Checking the list twice...")
	result, err := engine.Recommend(ctx, message, history, constraints)
	spinner.Stop()
	return result, err
}

func printResult(result *giftfinder.Result) {
	fmt.Println()
	fmt.Println(result.Message)
	for i, p := range result.Products {
		fmt.Printf("\n%d. %s", i+1, p.Name)
		if p.Brand != "" {
			fmt.Printf(" (%s)", p.Brand)
		}
		fmt.Println()
		if p.Price != nil {
			fmt.Printf("   %g-%g %s\n", p.Price.Min, p.Price.Max, p.Price.Currency)
		}
		fmt.Printf("   %s\n", p.Reasoning)
		fmt.Printf("   %s\n", p.ExternalURL)
	}
	fmt.Println()
}

func init() {
	chatCmd.Flags().StringVar(&chatMarket, "market", "", "market code (overrides config)")
	chatCmd.Flags().Float64Var(&chatMinPrice, "min", 0, "minimum price")
	chatCmd.Flags().Float64Var(&chatMaxPrice, "max", 0, "maximum price")
	chatCmd.Flags().IntVar(&chatCount, "count", 0, "number of suggestions (overrides config)")
	rootCmd.AddCommand(chatCmd)
}
