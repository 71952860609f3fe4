// importctl loads a program workbook straight into the database from
// the command line, for backfills too large or too sensitive to run
// through the web upload.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"congress-api/config"
	"congress-api/internal/doh"
	"congress-api/internal/dswd"
	"congress-api/internal/importer"
	"congress-api/internal/tupad"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var schemas = map[string]importer.Schema{
	"tupad": tupad.Schema,
	"doh":   doh.Schema,
	"dswd":  dswd.Schema,
}

func main() {
	var (
		program   = flag.String("program", "", "program to import into: tupad, doh or dswd")
		file      = flag.String("file", "", "path to the xlsx workbook")
		batchSize = flag.Int("batch", importer.DefaultBatchSize, "rows per transaction")
		preview   = flag.Int("preview", 0, "map N rows and print them instead of inserting")
	)
	flag.Parse()

	if err := run(*program, *file, *batchSize, *preview); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(program, file string, batchSize, preview int) error {
	schema, ok := schemas[program]
	if !ok {
		return fmt.Errorf("unknown program %q (want tupad, doh or dswd)", program)
	}
	if file == "" {
		return fmt.Errorf("-file is required")
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if preview > 0 {
		rows, warnings, err := importer.PreviewWorkbook(schema, f, preview)
		if err != nil {
			return err
		}
		for i, row := range rows {
			fmt.Printf("row %d:\n", i+1)
			for _, field := range schema.Fields() {
				v, _ := row.Get(field)
				fmt.Printf("  %-22s %v\n", field, v)
			}
		}
		printWarnings(warnings)
		return nil
	}

	_ = godotenv.Load()
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	im := &importer.Importer{DB: db, BatchSize: batchSize}

	color.Cyan("importing %s into %s ...", file, schema.Table)
	res, err := im.ImportWorkbook(context.Background(), schema, f, func(pct int) {
		fmt.Printf("\r%s", color.GreenString("%3d%%", pct))
	})
	fmt.Println()

	printSummary(schema, res)
	printWarnings(res.Warnings)

	if err != nil {
		// chunks committed before the failure stay committed
		return fmt.Errorf("import stopped after %d rows: %w", res.Inserted, err)
	}
	color.Green("done")
	return nil
}

func printSummary(schema importer.Schema, res importer.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Table", "Inserted", "Chunks", "Warnings"})
	table.Append([]string{
		schema.Table,
		strconv.Itoa(res.Inserted),
		strconv.Itoa(res.Chunks),
		strconv.Itoa(len(res.Warnings)),
	})
	table.Render()
}

func printWarnings(warnings []importer.Warning) {
	if len(warnings) == 0 {
		return
	}

	color.Yellow("%d cells degraded during mapping:", len(warnings))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sheet Row", "Field", "Raw Value", "Note"})
	for _, w := range warnings {
		table.Append([]string{strconv.Itoa(w.Row), w.Field, w.Raw, w.Note})
	}
	table.Render()
}
