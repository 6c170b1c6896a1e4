package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskworks/draw2977/internal/config"
	"github.com/riskworks/draw2977/internal/fill"
	"github.com/riskworks/draw2977/internal/mcp"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "draw2977",
		Short: "Fill DD Form 2977 (Deliberate Risk Assessment Worksheet) PDFs from JSON records",
		Long: "draw2977 maps a structured JSON record onto the DD Form 2977 PDF template,\n" +
			"producing a filled, still-editable worksheet. Both template generations are\n" +
			"supported: flat AcroForm fields and the embedded XFA datasets packet.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(cmd.Flags()); err != nil {
				return err
			}
			setupLogging(cfg)
			return nil
		},
		// a bare invocation fills using the default paths next to the binary
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newFillCmd(cfg),
		newInspectCmd(cfg),
		newValidateCmd(cfg),
		newServeCmd(cfg),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newFillCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill the template from an input record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cfg)
		},
	}
}

func newInspectCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List the template's AcroForm fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := fill.NewService(cfg.MaxFileSize)
			result, err := service.Inspect(fill.InspectRequest{TemplatePath: cfg.TemplatePath})
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d fields\n", result.TemplatePath, len(result.Fields))
			for _, f := range result.Fields {
				line := fmt.Sprintf("  %-14s %s", f.Type, f.Name)
				if f.Value != "" {
					line += fmt.Sprintf(" = %q", f.Value)
				}
				if len(f.Options) > 0 {
					line += " [" + strings.Join(f.Options, ", ") + "]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newValidateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the template against the DD 2977 field-name contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := fill.NewService(cfg.MaxFileSize)
			result, err := service.Validate(fill.ValidateRequest{
				TemplatePath: cfg.TemplatePath,
				Strategy:     cfg.FormStrategy(),
			})
			if err != nil {
				return err
			}
			report := result.Report
			total := len(report.Present) + len(report.Missing)
			fmt.Printf("%s (%s): %d of %d expected slots present\n",
				result.TemplatePath, report.Strategy, len(report.Present), total)
			for _, name := range report.Missing {
				color.Yellow("  missing: %s", name)
			}
			return nil
		},
	}
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the filler as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version != "dev" {
				cfg.Version = version
			}
			service := fill.NewService(cfg.MaxFileSize)
			server, err := mcp.NewServer(cfg, service)
			if err != nil {
				return err
			}
			return server.Run(context.Background())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("draw2977 %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func runFill(cfg *config.Config) error {
	service := fill.NewService(cfg.MaxFileSize)

	result, err := service.Fill(fill.FillRequest{
		TemplatePath: cfg.TemplatePath,
		InputPath:    cfg.InputPath,
		OutputPath:   cfg.OutputPath,
		PreviewPath:  cfg.PreviewPath,
		Strategy:     cfg.FormStrategy(),
		Refresh:      cfg.Refresh,
		Verify:       cfg.Verify,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning: %s", w))
	}
	color.Green("Created: %s", result.OutputPath)
	if result.PreviewPath != "" {
		color.Green("Preview: %s", result.PreviewPath)
	}
	return nil
}

// setupLogging keeps log output on stderr and quiet unless debugging, so
// stdout stays a clean single-line protocol for scripts (and MCP stdio).
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Printf("configuration: %s", cfg.String())
	}
}
