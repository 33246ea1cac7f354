package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image8bit/internal/raster"
	"github.com/ironsheep/image8bit/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image8bit %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image8bit - MCP server for 8-bit graymap (PGM) images")
			fmt.Println()
			fmt.Println("Usage: image8bit [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE8BIT_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  IMAGE8BIT_BLUR_WORKERS=<n>      Default goroutines per blur (CPU count)")
			fmt.Println("  IMAGE8BIT_MAX_PIXELS=<n>        Largest image the server will allocate")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	cfg.Version = Version

	raster.SetMaxPixels(cfg.MaxPixels)
	if cfg.Debug {
		raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		log.Printf("image8bit v%s (built %s, commit %s), %d blur workers, max %d pixels",
			Version, BuildTime, GitCommit, cfg.BlurWorkers, cfg.MaxPixels)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
