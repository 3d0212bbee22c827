package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/budget-coach/internal/coach"
	"github.com/dvloznov/budget-coach/internal/config"
	"github.com/dvloznov/budget-coach/internal/llm"
	"github.com/dvloznov/budget-coach/internal/logger"
	"github.com/dvloznov/budget-coach/internal/money"
	"github.com/dvloznov/budget-coach/internal/plaid"
	"github.com/dvloznov/budget-coach/internal/source"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(log)
	case "chat":
		runChat(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Budget Coach CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  coach <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  analyze   Run the spending analysis over recent transactions")
	fmt.Println("  chat      Chat with the budget coach about your spending")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'coach <command> -h' for more information on a command.")
}

// commonFlags are shared by analyze and chat.
type commonFlags struct {
	file       string
	budget     string
	window     int
	configFile string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.file, "file", "", "Read transactions from a CSV or XLSX export instead of Plaid")
	fs.StringVar(&cf.budget, "budget", "", "Monthly budget, e.g. 2000 (overrides MONTHLY_BUDGET)")
	fs.IntVar(&cf.window, "window", 0, "Days of transactions to analyze (overrides WINDOW_DAYS)")
	fs.StringVar(&cf.configFile, "config", "", "Optional YAML config file")
	return cf
}

// setup resolves config, the generation client, and the transaction
// source from the common flags.
func setup(log zerolog.Logger, cf *commonFlags) (*config.Config, *coach.Workflow, coach.TransactionSource) {
	cfg := config.Load()

	if cf.configFile != "" {
		if err := cfg.ApplyFile(cf.configFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load config file")
		}
	}
	if cf.budget != "" {
		budget, err := decimal.NewFromString(cf.budget)
		if err != nil {
			log.Fatal().Str("budget", cf.budget).Msg("Invalid budget")
		}
		cfg.MonthlyBudget = budget
	}
	if cf.window > 0 {
		cfg.WindowDays = cf.window
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	completer, err := llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create generation client")
	}

	var src coach.TransactionSource
	if cf.file != "" {
		src = source.NewFileSource(cf.file)
	} else {
		if err := cfg.ValidatePlaid(); err != nil {
			log.Fatal().Err(err).Msg("No -file given and Plaid is not configured")
		}
		src = plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidAccessToken, cfg.PlaidEnvironment)
	}

	return cfg, coach.NewWorkflow(completer, log), src
}

func runAnalyze(log zerolog.Logger) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	fs.Parse(os.Args[2:])

	cfg, workflow, src := setup(log, cf)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	txs, err := src.Fetch(ctx, cfg.WindowDays)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch transactions")
	}

	rs := &coach.RunState{
		Transactions:  txs,
		MonthlyBudget: cfg.MonthlyBudget,
	}

	if err := workflow.Run(ctx, rs); err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	printInsights(rs)
	for _, msg := range rs.Conversation {
		fmt.Println()
		fmt.Println(msg.Text)
	}
}

func printInsights(rs *coach.RunState) {
	if len(rs.Insights) == 0 {
		fmt.Println("No transactions in the selected window.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Spent", "Transactions"})
	for _, in := range rs.Insights {
		t.AppendRow(table.Row{in.Category, money.Format(in.TotalSpent), in.NumTransactions})
	}
	t.AppendFooter(table.Row{"Total", money.Format(rs.CurrentMonthSpending), ""})
	t.Render()

	for _, in := range rs.Insights {
		fmt.Printf("\n%s: %s\n", in.Category, in.Comment)
	}
}

func runChat(log zerolog.Logger) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	fs.Parse(os.Args[2:])

	cfg, workflow, src := setup(log, cf)

	ctx := logger.WithContext(context.Background(), log)

	txs, err := src.Fetch(ctx, cfg.WindowDays)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch transactions")
	}

	rs := &coach.RunState{
		Transactions:  txs,
		MonthlyBudget: cfg.MonthlyBudget,
	}

	fmt.Printf("Loaded %d transactions. Monthly budget: %s.\n", len(txs), money.Format(cfg.MonthlyBudget))
	fmt.Println("Ask your budget coach anything. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		reply, err := workflow.Ask(ctx, rs, question)
		if err != nil {
			log.Error().Err(err).Msg("Chat failed")
			continue
		}
		fmt.Println()
		fmt.Println(reply)
		fmt.Println()
	}
}
