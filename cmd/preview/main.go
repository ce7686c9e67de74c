package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/floatplane/mitsuqtt-preview/internal/config"
	"github.com/floatplane/mitsuqtt-preview/internal/export"
	"github.com/floatplane/mitsuqtt-preview/internal/routes"
	"github.com/floatplane/mitsuqtt-preview/internal/server"
	"github.com/floatplane/mitsuqtt-preview/internal/templates"
)

func main() {
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	ctx, stop := signalContext()
	defer stop()

	var err error
	switch command {
	case "serve":
		err = runServe(ctx, args)
	case "export":
		err = runExport(ctx, args)
	case "routes":
		printRoutes()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// signalContext is cancelled by the first SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// setup parses the shared flags and builds the renderer.
func setup(fs *flag.FlagSet, args []string) (*config.Config, *templates.Renderer, *slog.Logger, error) {
	configPath := config.DefaultFile
	verbose := false
	// the config file has to be read before flags can override it
	for i, arg := range args {
		switch {
		case (arg == "-config" || arg == "--config") && i+1 < len(args):
			configPath = args[i+1]
		case strings.HasPrefix(arg, "-config="):
			configPath = strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	_ = fs.String("config", config.DefaultFile, "Path to the YAML config file")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store := templates.NewOsStore(cfg.FrontendDir, cfg.Language)
	renderer := templates.New(store, templates.DefaultContext(), templates.Options{Strict: cfg.Strict}, logger)
	return cfg, renderer, logger, nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg, renderer, logger, err := setup(fs, args)
	if err != nil {
		return err
	}

	return server.New(cfg, routes.Default(), renderer, logger).Run(ctx)
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	minify := fs.Bool("minify", false, "Minify HTML and CSS")
	out := fs.String("out", "preview-export", "Output directory")
	_, renderer, logger, err := setup(fs, args)
	if err != nil {
		return err
	}

	res, err := export.Run(ctx, routes.Default(), renderer, afero.NewOsFs(), export.Options{
		OutputDir: *out,
		Minify:    *minify,
	}, logger)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Exported %d pages to %s\n", len(res.Files), *out)
	return nil
}

func printRoutes() {
	table := routes.Default()
	for _, p := range table.Paths() {
		a := table.Resolve(p)
		target := a.View
		if a.Kind == routes.KindStatic {
			target = "statics/" + a.File
		}
		fmt.Printf("  %-16s %-7s %s\n", p, a.Kind, target)
	}
}

func printUsage() {
	fmt.Println("Usage: preview [command] [flags]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve          Serve the web UI preview (default)")
	fmt.Println("  export         Render every page into a directory")
	fmt.Println("  routes         List the preview routes")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags for serve and export:")
	fmt.Println("  -config <file> Config file (default preview.yaml)")
	fmt.Println("  -port <n>      Listen port (default 8000)")
	fmt.Println("  -frontend <d>  Frontend directory (default src/frontend)")
	fmt.Println("  -strict        Fail renders on missing partials")
	fmt.Println("  -live          Reload browsers when templates change")
	fmt.Println("\nFlags for export:")
	fmt.Println("  -out <dir>     Output directory (default preview-export)")
	fmt.Println("  -minify        Minify HTML and CSS")
}
