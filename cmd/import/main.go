package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	pricesadapters "stock_analysis/internal/feature/prices/adapters"
	pricesusecase "stock_analysis/internal/feature/prices/usecase"
	stocksadapters "stock_analysis/internal/feature/stocks/adapters"
	stocksusecase "stock_analysis/internal/feature/stocks/usecase"
	"stock_analysis/internal/platform/config"
	platformdb "stock_analysis/internal/platform/db"
)

func main() {
	symbol := flag.String("symbol", "", "stock symbol the CSV belongs to (required)")
	file := flag.String("file", "", "path to the CSV file (required)")
	flag.Parse()

	if *symbol == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := platformdb.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	priceRepo := pricesadapters.NewPriceRepository(db)
	stockUC := stocksusecase.NewStockUsecase(stocksadapters.NewStockRepository(db))
	importUC := pricesusecase.NewImportUsecase(priceRepo, stockUC)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := importUC.ImportCSV(ctx, *symbol, f)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("import ok: %d rows for %s", n, *symbol)
}
