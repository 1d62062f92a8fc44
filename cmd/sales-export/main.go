// sales-export flattens the orders store into a gzip-compressed CSV for
// bookkeeping: one row per line item, with the order-level amounts repeated.
package main

import (
	"encoding/csv"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/sajjplace/storefront/internal/domain/order"
	"github.com/sajjplace/storefront/internal/storage/jsonfile"
)

func main() {
	var (
		dataDir string
		outPath string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory the orders.json store lives in")
	flag.StringVar(&outPath, "out", "sales.csv.gz", "output file path")
	flag.Parse()

	if err := run(dataDir, outPath); err != nil {
		slog.Error("sales export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(dataDir, outPath string) error {
	store, err := jsonfile.NewOrderStore(dataDir)
	if err != nil {
		return errors.Wrap(err, "open order store")
	}
	orders, err := store.List()
	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	order.SortNewestFirst(orders)

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer func() { _ = f.Close() }()

	gz := pgzip.NewWriter(f)
	w := csv.NewWriter(gz)

	header := []string{
		"order_id", "date", "customer", "email", "phone",
		"product_id", "product", "unit_price", "qty",
		"shipping", "bottle", "discount", "total", "method", "paid", "delivered",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}

	rows := 0
	for _, o := range orders {
		for _, it := range o.Items {
			row := []string{
				o.ID,
				o.Date.Format(time.RFC3339),
				o.Customer.Name,
				o.Customer.Email,
				o.Customer.Phone,
				it.ProductID,
				it.Name,
				it.Price.String(),
				strconv.Itoa(it.Qty),
				o.Shipping.String(),
				o.BottleCost.String(),
				o.Discount.String(),
				o.EffectiveTotal().String(),
				string(o.Payment.Method),
				strconv.FormatBool(o.Payment.Paid),
				strconv.FormatBool(o.Payment.Delivered),
			}
			if err := w.Write(row); err != nil {
				return errors.Wrapf(err, "write row for order %s", o.ID)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "close gzip stream")
	}

	slog.Info("sales export written",
		slog.String("path", outPath),
		slog.Int("orders", len(orders)),
		slog.Int("rows", rows),
	)
	return nil
}
