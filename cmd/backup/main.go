package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/config"
	"wordisland/internal/service"
	"wordisland/internal/store"
	"wordisland/internal/utils"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	exportPlayer := exportCmd.String("player", "", "Export only this player id (default: every player)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear each imported player's existing data first (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	backupService := service.NewBackupService(st, cfg.StoreEngine, logger)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, logger, backupService, *exportOutput, *exportPlayer)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, logger, backupService, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, logger *zap.Logger, backupService *service.BackupService, outputPath, playerID string) {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create output directory", zap.Error(err))
		}
	}

	logger.Info("exporting store", zap.String("path", outputPath), zap.String("player", playerID))
	backup, err := backupService.Export(ctx, outputPath, playerID)
	if err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}

	fileInfo, err := os.Stat(outputPath)
	if err != nil {
		logger.Fatal("failed to stat export", zap.Error(err))
	}
	logger.Info("export complete",
		zap.Int("players", len(backup.Players)),
		zap.Float64("size_mb", float64(fileInfo.Size())/1024/1024))
}

func handleImport(ctx context.Context, logger *zap.Logger, backupService *service.BackupService, inputPath string, clearFirst bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		logger.Fatal("input file does not exist", zap.String("path", inputPath))
	}

	if clearFirst {
		fmt.Print("WARNING: This will delete the existing progress of every player in the backup. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			logger.Info("import cancelled")
			return
		}
	}

	logger.Info("importing store", zap.String("path", inputPath), zap.Bool("clear", clearFirst))
	backup, err := backupService.Import(ctx, inputPath, clearFirst)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	logger.Info("import complete", zap.Int("players", len(backup.Players)))
}

func printUsage() {
	fmt.Println("Word Island Progress Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export player progress to a JSON file")
	fmt.Println("  backup import [options]    Import player progress from a JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println("  -player <id>      Export a single player")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear imported players' existing data first (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -player 0190c1e2-... -output kid.json")
	fmt.Println("  backup import -input backup.json")
	fmt.Println("  backup import -input backup.json -clear")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORE_ENGINE     Store engine: sql, redis, or memory (default: sql)")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./wordisland.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  REDIS_ADDR       Redis address when STORE_ENGINE=redis")
}
