package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/marcusholm/mcp-excel-reader/internal/config"
	"github.com/marcusholm/mcp-excel-reader/internal/registry"
	"github.com/marcusholm/mcp-excel-reader/internal/tools"
	"github.com/marcusholm/mcp-excel-reader/internal/tools/excelreader"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env for local development; absence is fine
	_ = godotenv.Load()

	// Create a logger with output discarded until the transport mode is
	// known - stdio must keep the protocol stream clean
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	var logFile *os.File
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()

	app := &cli.Command{
		Name:    "mcp-excel-reader",
		Usage:   "MCP server that reads tabular content out of Excel workbooks",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   "stdio",
				Usage:   "Transport type (stdio, sse, or http)",
			},
			&cli.StringFlag{
				Name:  "port",
				Value: "18080",
				Usage: "Port to use for HTTP transports (SSE and Streamable HTTP)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Value: "http://localhost",
				Usage: "Base URL for HTTP transports",
			},
			&cli.StringFlag{
				Name:  "endpoint-path",
				Value: "/http",
				Usage: "Endpoint path for Streamable HTTP transport",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("mcp-excel-reader version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
			{
				Name:  "tools",
				Usage: "List registered tools and their usage notes",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printToolInfo(logger)
				},
			},
		},
		Action: func(cliCtx context.Context, cmd *cli.Command) error {
			transport := cmd.String("transport")
			port := cmd.String("port")
			baseURL := cmd.String("base-url")
			endpointPath := cmd.String("endpoint-path")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logFile = configureLogging(logger, cfg, transport)

			reg := newRegistry(logger, cfg)

			if transport != "stdio" {
				logger.Infof("Starting mcp-excel-reader version %s (commit: %s, built: %s)",
					Version, Commit, BuildDate)
			}

			logger.Debug("Creating MCP server")
			mcpSrv := mcpserver.NewMCPServer("mcp-excel-reader", Version)

			registered := reg.Tools()
			logger.WithField("tool_count", len(registered)).Debug("MCP server created, registering tools")

			for toolName, toolImpl := range registered {
				name := toolName
				tool := toolImpl

				if transport != "stdio" {
					logger.Infof("Registering tool: %s", name)
				}

				mcpSrv.AddTool(tool.Definition(), func(toolCtx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					args, ok := request.Params.Arguments.(map[string]any)
					if !ok {
						return nil, fmt.Errorf("invalid arguments type: expected map[string]any, got %T", request.Params.Arguments)
					}

					result, err := tool.Execute(toolCtx, reg.Logger(), reg.Cache(), args)
					if err != nil {
						if transport != "stdio" {
							logger.WithError(err).Errorf("Tool execution failed: %s", name)
						}
						return nil, fmt.Errorf("tool execution failed: %w", err)
					}
					return result, nil
				})
			}

			logger.WithField("transport", transport).Debug("Starting server")
			switch transport {
			case "stdio":
				return mcpserver.ServeStdio(mcpSrv)
			case "sse":
				logger.WithField("port", port).Debug("Starting SSE server")
				sseServer := mcpserver.NewSSEServer(mcpSrv, mcpserver.WithBaseURL(baseURL+"/sse"))
				return sseServer.Start(":" + port)
			case "http":
				logger.WithField("port", port).Debug("Starting HTTP server")
				httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv,
					mcpserver.WithEndpointPath(endpointPath),
					mcpserver.WithHeartbeatInterval(30*time.Second),
					mcpserver.WithLogger(&logrusAdapter{logger: logger}),
				)
				return httpServer.Start(":" + port)
			default:
				return fmt.Errorf("unsupported transport: %s", transport)
			}
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		// In stdio mode nothing may be written to stdout or stderr,
		// it would corrupt the MCP protocol stream
		if logger.Out != io.Discard {
			logger.Errorf("Error: %v", err)
		}
		os.Exit(1)
	}
}

// newRegistry builds the tool registry. The registration table is
// constructed once here and handed to the server; nothing registers
// through package side effects.
func newRegistry(logger *logrus.Logger, cfg *config.Config) *registry.Registry {
	reg := registry.New(logger, registry.WithDisabledTools(registry.DisabledFromEnv()...))
	excelreader.RegisterAll(reg, cfg)
	return reg
}

// configureLogging points the logger at the configured log file for
// stdio mode, or stderr for the HTTP transports. Returns the opened
// log file, if any, for the caller to close.
func configureLogging(logger *logrus.Logger, cfg *config.Config, transport string) *os.File {
	logger.SetLevel(cfg.Level())

	if transport != "stdio" {
		logger.SetOutput(os.Stderr)
		return nil
	}

	// stdio: log to file only; a broken log file means no logging at
	// all rather than a corrupted protocol stream
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
		logger.SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return nil
	}
	logger.SetOutput(file)
	logger.WithField("level", logger.GetLevel().String()).Debug("Logging configured")
	return file
}

// printToolInfo prints every registered tool with its description and
// usage notes for tools that provide them.
func printToolInfo(logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg := newRegistry(logger, cfg)

	for _, name := range reg.ToolNames() {
		tool, _ := reg.Tool(name)
		def := tool.Definition()
		fmt.Printf("%s\n  %s\n", def.Name, def.Description)

		if provider, ok := tool.(tools.ExtendedHelpProvider); ok {
			help := provider.ProvideExtendedInfo()
			if help.WhenToUse != "" {
				fmt.Printf("  When to use: %s\n", help.WhenToUse)
			}
			for _, pattern := range help.CommonPatterns {
				fmt.Printf("  - %s\n", pattern)
			}
		}
		fmt.Println()
	}
	return nil
}

// logrusAdapter adapts logrus.Logger to the mcp-go util.Logger interface
type logrusAdapter struct {
	logger *logrus.Logger
}

func (l *logrusAdapter) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *logrusAdapter) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *logrusAdapter) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *logrusAdapter) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}
