// plan-advisor CLI - package recommendation for multi-attribute needs
//
// Usage:
//
//	planadvisor recommend --need data=30 --need calls=500 --budget 150
//	planadvisor catalog list --carrier 中国移动
//	planadvisor serve --port 8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"plan-advisor/internal/catalog"
	"plan-advisor/internal/engine"
	"plan-advisor/internal/server"
	"plan-advisor/pkg/plan"
)

var (
	version = "dev"
	commit  = "none"
)

// Exit codes for scripting.
const (
	ExitSuccess  = 0
	ExitNoMatch  = 1
	ExitBadInput = 10
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:    "planadvisor",
		Usage:   "Match multi-attribute needs and a budget against a catalog of priced packages",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PLANADVISOR_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},

		Commands: []*cli.Command{
			recommendCommand(),
			catalogCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// RECOMMEND COMMAND
// =============================================================================

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend packages for the given needs and budget",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "need",
				Aliases: []string{"n"},
				Usage:   "A requirement as attribute=value (repeatable), e.g. --need data=30",
			},
			&cli.Float64Flag{
				Name:     "budget",
				Aliases:  []string{"b"},
				Usage:    "Monthly budget",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "carrier",
				Usage: "Restrict the catalog to one carrier",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an engine config JSON file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
		},
		Action: runRecommend,
	}
}

func runRecommend(c *cli.Context) error {
	needs, err := parseNeeds(c.StringSlice("need"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitBadInput)
	}

	budget, err := parseBudget(c.Float64("budget"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitBadInput)
	}

	cfg := engine.DefaultConfig()
	if path := c.String("config"); path != "" {
		cfg, err = engine.LoadConfig(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), ExitBadInput)
		}
	}

	packages, err := loadCatalog(c.Context, c.String("carrier"))
	if err != nil {
		return err
	}
	log.Debug().Int("packages", len(packages)).Msg("catalog loaded")

	eng := engine.New(cfg)
	recommendations := eng.Recommend(needs, budget, packages)

	if len(recommendations) == 0 {
		diagnosis := eng.AnalyzeNoMatch(needs, budget, packages)
		if c.String("output") == "json" {
			printJSON(map[string]any{
				"data":     []engine.Recommendation{},
				"analysis": diagnosis,
			})
		} else {
			printDiagnosis(diagnosis)
		}
		return cli.Exit("", ExitNoMatch)
	}

	if c.String("output") == "json" {
		printJSON(map[string]any{
			"data":  recommendations,
			"count": len(recommendations),
		})
		return nil
	}

	printRecommendations(recommendations)
	return nil
}

func parseNeeds(raw []string) (plan.NeedSet, error) {
	needs := make(plan.NeedSet, len(raw))
	for _, item := range raw {
		key, value, found := strings.Cut(item, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid need %q, expected attribute=value", item)
		}
		quantity, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid need %q: %w", item, err)
		}
		// ParseFloat accepts "NaN" and "Inf"; neither is a usable quantity.
		if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
			return nil, fmt.Errorf("invalid need %q: value must be a finite number", item)
		}
		if quantity < 0 {
			return nil, fmt.Errorf("invalid need %q: value must be non-negative", item)
		}
		needs[key] = quantity
	}
	return needs, nil
}

// parseBudget checks the flag value before the decimal conversion, which
// panics on non-finite input. urfave/cli parses flags with ParseFloat, so
// "--budget NaN" arrives here as a plain float64.
func parseBudget(value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, fmt.Errorf("budget must be a finite number")
	}
	if value < 0 {
		return decimal.Zero, fmt.Errorf("budget must be non-negative")
	}
	return decimal.NewFromFloat(value), nil
}

func printRecommendations(recommendations []engine.Recommendation) {
	for i, rec := range recommendations {
		fmt.Printf("推荐 #%d: %s (%s)\n", i+1, rec.Product.Name, rec.Product.Carrier)
		fmt.Printf("  评分: %.2f (使用匹配 %.2f / 价格优势 %.2f)\n",
			rec.Score, rec.UsageScore, rec.PriceScore)
		fmt.Printf("  理由: %s\n", rec.MatchReason)
		fmt.Println(strings.Repeat("-", 40))
	}
}

func printDiagnosis(diagnosis engine.Diagnosis) {
	fmt.Println("没有找到符合需求的套餐")
	if len(diagnosis.OverBudgetProducts) > 0 {
		fmt.Printf("规格满足但超出预算: %d 个套餐\n", len(diagnosis.OverBudgetProducts))
	}
	attributes := make([]string, 0, len(diagnosis.InsufficientSpecs))
	for attribute := range diagnosis.InsufficientSpecs {
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)
	for _, attribute := range attributes {
		fmt.Printf("属性 %s 不足: %d 个套餐\n", attribute, len(diagnosis.InsufficientSpecs[attribute]))
	}
	for _, suggestion := range diagnosis.Suggestions {
		fmt.Printf("建议: %s\n", suggestion)
	}
}

func printJSON(payload any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(payload)
}

// =============================================================================
// CATALOG COMMAND
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect and validate catalog data",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog packages",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "carrier", Usage: "Restrict to one carrier"},
				},
				Action: func(c *cli.Context) error {
					packages, err := loadCatalog(c.Context, c.String("carrier"))
					if err != nil {
						return err
					}
					for _, pkg := range packages {
						fmt.Printf("%-20s %-8s 价格%s元  %v\n",
							pkg.Name, pkg.Type, pkg.Specs.Price().String(), pkg.Features)
					}
					fmt.Printf("共 %d 个套餐\n", len(packages))
					return nil
				},
			},
			{
				Name:  "carriers",
				Usage: "List registered carriers",
				Action: func(_ *cli.Context) error {
					for _, carrier := range catalog.DefaultManager().Carriers() {
						fmt.Println(carrier)
					}
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate a JSON package file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to a JSON package file"},
				},
				Action: func(c *cli.Context) error {
					source := catalog.NewJSONSource(c.String("file"), "验证")
					packages, err := source.Packages(c.Context)
					if err != nil {
						return cli.Exit(fmt.Sprintf("Error: %v", err), ExitBadInput)
					}
					errors := catalog.Validate(packages)
					if len(errors) == 0 {
						fmt.Println("数据验证通过")
						return nil
					}
					for _, message := range errors {
						fmt.Printf("  - %s\n", message)
					}
					return cli.Exit(fmt.Sprintf("%d validation errors", len(errors)), ExitBadInput)
				},
			},
		},
	}
}

func loadCatalog(ctx context.Context, carrier string) ([]plan.Product, error) {
	manager := catalog.DefaultManager()
	if carrier != "" {
		return manager.ByCarrier(ctx, carrier)
	}
	return manager.All(ctx)
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Listen port",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an engine config JSON file",
				EnvVars: []string{"ENGINE_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg := engine.DefaultConfig()
			if path := c.String("config"); path != "" {
				loaded, err := engine.LoadConfig(path)
				if err != nil {
					return cli.Exit(fmt.Sprintf("Error: %v", err), ExitBadInput)
				}
				cfg = loaded
			}

			srvCfg := server.DefaultConfig()
			srvCfg.Port = c.Int("port")

			srv := server.New(srvCfg, server.NewConfigStore(cfg), catalog.DefaultManager(), log.Logger, version)
			return srv.Start()
		},
	}
}
