package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kjdelacruz/stagetally/internal/app"
	"github.com/kjdelacruz/stagetally/internal/logger"
)

const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

var (
	version = "dev"
)

// printBanner displays the StageTally logo
func printBanner() {
	logo := []string{
		`  ____  _                   _____     _ _       `,
		` / ___|| |_ __ _  __ _  ___|_   _|_ _| | |_   _ `,
		` \___ \| __/ _' |/ _' |/ _ \ | |/ _' | | | | | |`,
		`  ___) | || (_| | (_| |  __/ | | (_| | | | |_| |`,
		` |____/ \__\__,_|\__, |\___| |_|\__,_|_|_|\__, |`,
		`                 |___/                    |___/ `,
	}
	fmt.Println()
	for _, line := range logo {
		fmt.Printf("  %s%s%s\n", yellow, line, reset)
	}
	fmt.Printf("  %slive tabulation for pageants and quiz bees%s\n\n", cyan, reset)
}

// envOr returns the environment variable when set, else the fallback
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	// .env is optional; flags and real env vars win
	godotenv.Load()

	port := flag.Int("port", envIntOr("STAGETALLY_PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envOr("STAGETALLY_DB", "stagetally.db"), "SQLite database path")
	baseURL := flag.String("baseurl", envOr("STAGETALLY_BASE_URL", ""), "Public base URL for QR codes (auto-detected if not set)")
	logLevel := flag.String("loglevel", envOr("STAGETALLY_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	noBanner := flag.Bool("nobanner", false, "Skip the startup banner")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `StageTally - Live Tabulation for Pageants and Quiz Bees

Usage:
  stagetally [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "stagetally.db")
  -baseurl str   Public base URL for QR codes (auto-detected if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -nobanner      Skip the startup banner
  -version       Show version and exit
  -help          Show this help message

Environment (also read from an optional .env file):
  STAGETALLY_PORT, STAGETALLY_DB, STAGETALLY_BASE_URL, STAGETALLY_LOG_LEVEL

Examples:
  stagetally                         # Run on port 8080 with stagetally.db
  stagetally -port 80 -db prod.db    # Production example
  stagetally -baseurl http://10.0.0.5:8080

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("stagetally %s\n", version)
		os.Exit(0)
	}

	if !*noBanner {
		printBanner()
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	addr := fmt.Sprintf(":%d", *port)
	url := *baseURL
	if url == "" {
		url = app.DefaultBaseURL(addr)
	}

	a, err := app.New(appLog, app.Config{DBPath: *dbPath, BaseURL: url})
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	if err := a.Run(addr); err != nil {
		log.Fatal("Server error:", err)
	}
}
