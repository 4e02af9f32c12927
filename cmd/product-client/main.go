package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ecommerce-api/internal/client"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"

	"github.com/urfave/cli/v2"
)

func main() {
	// request logs go to stderr so stdout stays parseable JSON
	logger.SetOutput(os.Stderr)

	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logger.Error(context.Background(), "product-client failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "product-client",
		Usage: "talk to the ecommerce product API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "base URL of the API",
				Value:   "http://localhost:3000",
				EnvVars: []string{"PRODUCT_API_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products, optionally filtered",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "color"},
				},
				Action: func(c *cli.Context) error {
					if c.IsSet("category") && c.IsSet("color") {
						return cli.Exit("--category and --color are mutually exclusive", 2)
					}
					pc := productClient(c)
					var (
						products []model.Product
						err      error
					)
					switch {
					case c.IsSet("category"):
						products, err = pc.ListByCategory(c.Context, c.String("category"))
					case c.IsSet("color"):
						products, err = pc.ListByColor(c.Context, c.String("color"))
					default:
						products, err = pc.List(c.Context)
					}
					if err != nil {
						return err
					}
					return printJSON(out, products)
				},
			},
			{
				Name:  "create",
				Usage: "add a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Float64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "category", Required: true},
					&cli.StringSliceFlag{Name: "variant", Usage: "color:size:stock, repeatable"},
				},
				Action: func(c *cli.Context) error {
					variants, err := parseVariants(c.StringSlice("variant"))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					p, err := productClient(c).Create(c.Context, client.NewProduct{
						Name:     c.String("name"),
						Price:    c.Float64("price"),
						Category: c.String("category"),
						Variants: variants,
					})
					if err != nil {
						return err
					}
					return printJSON(out, p)
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a product by id",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("delete takes exactly one product id", 2)
					}
					p, err := productClient(c).Delete(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(out, p)
				},
			},
		},
	}
}

func productClient(c *cli.Context) *client.ProductClient {
	return client.NewProductClient(c.String("server"), c.Duration("timeout"))
}

// parseVariants reads "color:size:stock" triples.
func parseVariants(specs []string) ([]model.Variant, error) {
	variants := make([]model.Variant, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid variant %q, want color:size:stock", s)
		}
		stock, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid stock in variant %q: %w", s, err)
		}
		variants = append(variants, model.Variant{Color: parts[0], Size: parts[1], Stock: stock})
	}
	return variants, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
