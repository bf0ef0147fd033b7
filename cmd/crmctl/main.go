package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/Raymond9734/smallbiz-crm/internal/apiclient"
	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

const defaultBaseURL = "http://localhost:8080/api"

var errUsage = errors.New("usage")

func main() {
	// Optional .env next to the binary
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Small business CRM command-line client\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  crmctl [--api URL] customers [--limit N] [--offset N]\n")
	fmt.Fprintf(w, "  crmctl [--api URL] orders [--customer ID] [--limit N] [--offset N]\n")
	fmt.Fprintf(w, "  crmctl [--api URL] followups\n")
	fmt.Fprintf(w, "  crmctl [--api URL] export -o FILE\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  --api URL    API base URL (default $CRM_API_URL or %s).\n", defaultBaseURL)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	baseURL := os.Getenv("CRM_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	fs := flag.NewFlagSet("crmctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	api := fs.String("api", baseURL, "API base URL")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() == 0 {
		usage(stderr)
		return errUsage
	}

	client := apiclient.New(*api)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "customers":
		return listCustomers(ctx, client, rest, stdout, stderr)
	case "orders":
		return listOrders(ctx, client, rest, stdout, stderr)
	case "followups":
		return listFollowups(ctx, client, stdout)
	case "export":
		return exportCustomers(ctx, client, rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		usage(stderr)
		return errUsage
	}
}

func pageFlags(name string, stderr io.Writer) (*flag.FlagSet, *int, *int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("limit", models.DefaultLimit, "page size")
	offset := fs.Int("offset", 0, "rows to skip")
	return fs, limit, offset
}

func listCustomers(ctx context.Context, c *apiclient.Client, args []string, stdout, stderr io.Writer) error {
	fs, limit, offset := pageFlags("customers", stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	result, err := c.ListCustomers(ctx, models.Page{Limit: *limit, Offset: *offset})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL\tTAGS")
	for _, cu := range result.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", cu.ID, cu.Name, deref(cu.Phone), deref(cu.Email), strings.Join(cu.TagStrings(), ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%d of %d customers\n", len(result.Data), result.Pagination.Total)
	return nil
}

func listOrders(ctx context.Context, c *apiclient.Client, args []string, stdout, stderr io.Writer) error {
	fs, limit, offset := pageFlags("orders", stderr)
	customerID := fs.Int64("customer", 0, "only orders of this customer")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var orders []*models.Order
	if *customerID != 0 {
		var err error
		orders, err = c.ListCustomerOrders(ctx, *customerID)
		if err != nil {
			return err
		}
	} else {
		result, err := c.ListOrders(ctx, models.Page{Limit: *limit, Offset: *offset})
		if err != nil {
			return err
		}
		orders = result.Data
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tTOTAL\tSTATUS")
	for _, o := range orders {
		customer := o.CustomerName
		if customer == "" {
			customer = fmt.Sprintf("#%d", o.CustomerID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", o.ID, o.OrderDate.Format(models.DateLayout), customer, o.TotalAmount, o.Status)
	}
	return tw.Flush()
}

func listFollowups(ctx context.Context, c *apiclient.Client, stdout io.Writer) error {
	followups, err := c.ListFollowups(ctx)
	if err != nil {
		return err
	}

	if len(followups) == 0 {
		fmt.Fprintln(stdout, "No pending followups")
		return nil
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDUE\tCUSTOMER\tPHONE\tMESSAGE")
	for _, f := range followups {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.DueDate.Format(models.DateLayout), f.CustomerName, deref(f.CustomerPhone), deref(f.Message))
	}
	return tw.Flush()
}

func exportCustomers(ctx context.Context, c *apiclient.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *out == "" {
		fmt.Fprintln(stderr, "export requires -o FILE")
		return errUsage
	}

	data, err := c.ExportCustomers(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}

	fmt.Fprintf(stdout, "Wrote %d bytes to %s\n", len(data), *out)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
