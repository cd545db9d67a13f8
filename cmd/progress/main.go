package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fruitfriends/internal/config"
	"fruitfriends/internal/logger"
	"fruitfriends/internal/repository"
	"fruitfriends/internal/service"

	"go.uber.org/zap"
)

// command is a parsed subcommand with its flags
type command struct {
	name      string
	output    string
	input     string
	childName string
}

// parseArgs reads the subcommand and its flags. It runs before any storage
// is opened, so invalid usage never leaves a store to clean up.
func parseArgs(args []string) (*command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("missing command")
	}

	cmd := &command{name: args[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)

	switch cmd.name {
	case "export":
		fs.StringVar(&cmd.output, "output", "", "Output file path (default: progress_YYYYMMDD_HHMMSS.json)")
	case "import":
		fs.StringVar(&cmd.input, "input", "", "Input file path (required)")
	case "show":
		fs.StringVar(&cmd.childName, "name", "", "Child name (required)")
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	switch {
	case cmd.name == "import" && cmd.input == "":
		return nil, fmt.Errorf("-input flag is required")
	case cmd.name == "show" && cmd.childName == "":
		return nil, fmt.Errorf("-name flag is required")
	}

	return cmd, nil
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, log, cmd); err != nil {
		log.Error("Command failed", zap.String("command", cmd.name), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

// run opens the configured store, executes cmd and closes the store
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, cmd *command) error {
	store, closeStore, err := repository.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	progressService := service.NewProgressService(store, log)
	feedbackService := service.NewFeedbackService(store, log)
	backupService := service.NewBackupService(progressService, feedbackService, log)

	switch cmd.name {
	case "export":
		return handleExport(ctx, backupService, cmd.output)
	case "import":
		return handleImport(ctx, backupService, cmd.input)
	default:
		return handleShow(ctx, progressService, cmd.childName)
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string) error {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("progress_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := backupService.Export(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d progress records and %d feedback entries to %s\n",
		len(backup.Progress), len(backup.Feedback), outputPath)
	return nil
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	backup, err := backupService.Import(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d progress records and %d feedback entries\n",
		len(backup.Progress), len(backup.Feedback))
	return nil
}

func handleShow(ctx context.Context, progressService *service.ProgressService, childName string) error {
	progress := progressService.GetProgress(ctx, childName)

	out := struct {
		Progress interface{} `json:"progress"`
		Accuracy int         `json:"accuracy"`
	}{
		Progress: progress,
		Accuracy: service.Accuracy(progress),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func printUsage() {
	fmt.Println("Fruit Friends Progress Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  progress export [options]    Export progress and feedback to a JSON file")
	fmt.Println("  progress import [options]    Import progress and feedback from a JSON file")
	fmt.Println("  progress show [options]      Print one child's progress and accuracy")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: progress_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println()
	fmt.Println("Show Options:")
	fmt.Println("  -name <child>     Child name (required)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORAGE_BACKEND  Storage backend: memory, file, or sql (default: sql)")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./fruitfriends.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  DATA_DIR         Directory for the file backend (default: ./data)")
	fmt.Println("  LOG_LEVEL        debug, info, warn, or error (default: info)")
}
