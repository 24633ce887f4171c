package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/config"
	"github.com/genielabs-com/leapter-mcp/internal"
	"github.com/genielabs-com/leapter-mcp/leapter"
	"github.com/genielabs-com/leapter-mcp/tools"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ~/.config/leapter-mcp/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client := leapter.NewClient(cfg.BaseURL, cfg.APIKey, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)

	s := server.NewMCPServer(
		"leapter",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Leapter exposes AI blueprints as callable tools. Use list_projects to see available projects, list_blueprints to discover a project's blueprints, describe_blueprint for a blueprint's input form, and run_blueprint to execute one."),
	)

	tools.RegisterAll(s, client)

	if cfg.ExposeBlueprints {
		if err := tools.RegisterBlueprintTools(context.Background(), s, client); err != nil {
			internal.Errorf("registering blueprint tools: %v", err)
		}
	}

	internal.Logf("starting leapter MCP server (stdio), platform %s", cfg.BaseURL)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
