package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"rpe/internal/domain/criteria"
	"rpe/internal/platform/config"
	"rpe/internal/platform/db"
)

// criteria-migrate rewires stored evaluation answers from retired criteria
// to their successors. The mapping file is CSV, one "old title,new title"
// pair per line.
func main() {
	mappingPath := flag.String("mapping", "", "path to a CSV file with old,new criterion title pairs")
	flag.Parse()

	if *mappingPath == "" {
		log.Fatal("-mapping is required")
	}

	mapping, err := loadMapping(*mappingPath)
	if err != nil {
		log.Fatalf("load mapping failed: %v", err)
	}
	if len(mapping) == 0 {
		log.Fatal("mapping file has no pairs")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	migrator := criteria.NewMigrator(criteria.NewStore(pool), nil)
	report, err := migrator.Run(ctx, mapping)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	printReport(report)
}

func loadMapping(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	mapping := map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		oldTitle := strings.TrimSpace(record[0])
		newTitle := strings.TrimSpace(record[1])
		if oldTitle == "" || (strings.EqualFold(oldTitle, "old") && strings.EqualFold(newTitle, "new")) {
			continue
		}
		mapping[oldTitle] = newTitle
	}
	return mapping, nil
}

func printReport(report criteria.Report) {
	for _, pair := range report.Pairs {
		status := ""
		if pair.CreatedCriterion {
			status = " (created successor)"
		}
		fmt.Printf("%s -> %s%s: %d migrated, %d skipped\n",
			pair.OldTitle, pair.NewTitle, status, pair.Migrated, pair.Skipped)
	}
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}
