// Command codeintel is the CLI entrypoint over the code-intelligence core:
// detect/parse/compact/index/search drive the engine directly for scripting
// and debugging; mcp-serve exposes the same operations over stdio.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/lumenforge/codeintel/internal/config"
	"github.com/lumenforge/codeintel/internal/debug"
	"github.com/lumenforge/codeintel/internal/engine"
	mcpserver "github.com/lumenforge/codeintel/internal/mcp"
	"github.com/lumenforge/codeintel/internal/types"
	"github.com/lumenforge/codeintel/internal/version"
)

var (
	eng    *engine.Engine
	cfgPtr *config.Config
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "codeintel",
		Usage:   "process-resident code intelligence: parse, compact, index, search",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "project root to load .codeintel.kdl/.codeintel.toml from",
				Value: ".",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("root"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgPtr = cfg
			eng = engine.New(engine.Config{
				CacheBudgetBytes:     cfg.Cache.BudgetBytes,
				RipgrepBinary:        cfg.Grep.Binary,
				RipgrepConcurrency:   cfg.Grep.Concurrency,
				DisabledLanguages:    cfg.DisabledLanguages,
				SearchDefaultTimeout: cfg.Search.DefaultTimeout,
				SearchDefaultLimit:   cfg.Search.DefaultLimit,
				SearchCombinedMode:   cfg.Search.CombinedMode,
			})
			return nil
		},
		Commands: []*cli.Command{
			detectCommand,
			parseCommand,
			compactCommand,
			indexCommand,
			searchCommand,
			statsCommand,
			mcpServeCommand,
		},
	}
}

var detectCommand = &cli.Command{
	Name:      "detect",
	Usage:     "detect the language of a file from its extension",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("path argument required", 1)
		}
		lang, err := eng.DetectLanguage(path)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"path": path, "language": lang.String()})
	},
}

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "parse a file and report its language and root node kind",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("path argument required", 1)
		}
		tree, err := eng.ParseFile(path)
		if err != nil {
			return err
		}
		defer tree.Release()
		return printJSON(map[string]any{
			"path":          path,
			"language":      tree.Language().String(),
			"used_fallback": tree.UsedFallback(),
			"root_kind":     tree.Root().Kind(),
		})
	},
}

var compactCommand = &cli.Command{
	Name:      "compact",
	Usage:     "compact a file's AST to a textual skeleton",
	ArgsUsage: "<path>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "level", Value: "medium", Usage: "light, medium, or hard"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("path argument required", 1)
		}
		level := parseLevel(c.String("level"))
		result, err := eng.CompactCode(path, level)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var indexCommand = &cli.Command{
	Name:      "index",
	Usage:     "parse a file and report the symbols extracted into the semantic index",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("path argument required", 1)
		}
		tree, err := eng.ParseFile(path)
		if err != nil {
			return err
		}
		tree.Release()
		return printJSON(eng.GetFileSymbols(path))
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search the workspace across every configured layer",
	ArgsUsage: "<query>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "type", Value: "FullText"},
		&cli.IntFlag{Name: "limit", Usage: "defaults to the configured search.default_limit"},
		&cli.BoolFlag{Name: "combined", Usage: "defaults to the configured search.combined_mode"},
	},
	Action: func(c *cli.Context) error {
		query := c.Args().First()
		if query == "" {
			return cli.Exit("query argument required", 1)
		}
		mode := types.RoutingFirstMatch
		if c.IsSet("combined") {
			if c.Bool("combined") {
				mode = types.RoutingCombined
			}
		} else if cfgPtr.Search.CombinedMode {
			mode = types.RoutingCombined
		}
		limit := c.Int("limit")
		if !c.IsSet("limit") {
			limit = cfgPtr.Search.DefaultLimit
		}
		results, stats, err := eng.Search(context.Background(), types.SearchQuery{
			Text:    query,
			Type:    types.QueryType(c.String("type")),
			Limit:   limit,
			Mode:    mode,
			Timeout: cfgPtr.Search.DefaultTimeout,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"results": results, "stats": stats})
	},
}

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "report parser cache and registry occupancy",
	Action: func(c *cli.Context) error {
		return printJSON(map[string]any{
			"cache":    eng.CacheStats(),
			"registry": eng.RegistryStats(),
		})
	},
}

var mcpServeCommand = &cli.Command{
	Name:  "mcp-serve",
	Usage: "serve parse/compact/search/symbols/call-graph over MCP stdio",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load(c.String("root"))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		debug.SetMCPMode(true)
		srv := mcpserver.NewServer(eng, cfg.MCP.ServerName, cfg.MCP.ServerVersion)

		if cfg.Watch.Enabled {
			watcher, err := engine.NewWatcher(eng)
			if err != nil {
				return fmt.Errorf("start file watcher: %w", err)
			}
			if err := watcher.Start(c.String("root")); err != nil {
				return fmt.Errorf("start file watcher: %w", err)
			}
			defer watcher.Stop()
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Run(ctx) }()

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			cancel()
			return <-errCh
		}
	},
}

func parseLevel(s string) types.CompactionLevel {
	switch s {
	case "light", "Light":
		return types.CompactLight
	case "hard", "Hard":
		return types.CompactHard
	default:
		return types.CompactMedium
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
