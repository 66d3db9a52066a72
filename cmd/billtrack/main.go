package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"billtrack/internal/cli"
	"billtrack/internal/core"
	applog "billtrack/internal/log"
	"billtrack/internal/services"
	"billtrack/internal/ui"
)

const usage = `billtrack - track recurring monthly bills

Usage:
  billtrack <command> [flags]

Commands:
  list       Show this month's bills ordered by due date
  add        Add a bill (-name, -amount, -due, [-category])
  edit       Edit a bill (-id plus any of -name, -amount, -due, -category)
  delete     Delete a bill (-id)
  pay        Toggle this month's paid state (-id)
  summary    Show total / paid / unpaid for this month
  chart      Show category breakdown (-paid for paid-only)
  export     Write the collection as JSON (-o file, default stdout)
  import     Replace the collection from JSON (-i file)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	store, cleanup := cli.InitStore(logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Store close failed", applog.FieldError, err)
		}
	}()

	ctx := context.Background()
	ledger, err := services.NewLedger(ctx, store)
	if err != nil {
		logger.Error("Failed to load expenses", applog.FieldError, err)
		os.Exit(1)
	}

	now := time.Now()
	if err := run(ctx, ledger, os.Args[1], os.Args[2:], now); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "billtrack:", err)
			os.Exit(1)
		}
		logger.Error("Command failed", applog.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, ledger *services.Ledger, command string, args []string, now time.Time) error {
	switch command {
	case "list":
		fmt.Print(ui.RenderSchedule(ledger.Snapshot(), now))
		return nil
	case "add":
		return runAdd(ctx, ledger, args)
	case "edit":
		return runEdit(ctx, ledger, args)
	case "delete":
		return runDelete(ctx, ledger, args)
	case "pay":
		return runPay(ctx, ledger, args, now)
	case "summary":
		fmt.Print(ui.RenderSummary(ledger.Snapshot(), now))
		return nil
	case "chart":
		return runChart(ledger, args, now)
	case "export":
		return runExport(ledger, args)
	case "import":
		return runImport(ctx, ledger, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runAdd(ctx context.Context, ledger *services.Ledger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "bill name (required)")
	category := fs.String("category", "", "category (blank picks "+core.DefaultCategory+")")
	amount := fs.String("amount", "", "amount, e.g. 12.34 (required)")
	due := fs.String("due", "", "due day of month, 1-31 (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := services.ParseDraft(*name, *category, *amount, *due)
	if err != nil {
		return err
	}
	e, err := ledger.Add(ctx, d)
	if err != nil {
		return err
	}
	fmt.Printf("Added %q (%s)\n", e.Name, e.ID)
	return nil
}

func runEdit(ctx context.Context, ledger *services.Ledger, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "bill id (required)")
	name := fs.String("name", "", "new name")
	category := fs.String("category", "", "new category")
	amount := fs.String("amount", "", "new amount")
	due := fs.String("due", "", "new due day")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("edit: -id is required")
	}

	prev, err := ledger.Get(*id)
	if err != nil {
		return err
	}

	// Unset flags keep the previous value
	if *name == "" {
		*name = prev.Name
	}
	if *category == "" {
		*category = prev.Category
	}
	if *amount == "" {
		*amount = prev.Amount.String()
	}
	if *due == "" {
		*due = fmt.Sprintf("%d", prev.DueDay)
	}

	d, err := services.ParseDraft(*name, *category, *amount, *due)
	if err != nil {
		return err
	}
	e, err := ledger.Update(ctx, *id, d)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %q (%s)\n", e.Name, e.ID)
	return nil
}

func runDelete(ctx context.Context, ledger *services.Ledger, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "bill id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("delete: -id is required")
	}
	if err := ledger.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", *id)
	return nil
}

func runPay(ctx context.Context, ledger *services.Ledger, args []string, now time.Time) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	id := fs.String("id", "", "bill id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("pay: -id is required")
	}
	e, err := ledger.TogglePaid(ctx, *id, now)
	if err != nil {
		return err
	}
	state := "unpaid"
	if e.IsPaid(core.MonthKeyFor(now)) {
		state = "paid"
	}
	fmt.Printf("%q is now %s for %s\n", e.Name, state, core.MonthKeyFor(now))
	return nil
}

func runChart(ledger *services.Ledger, args []string, now time.Time) error {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	paidOnly := fs.Bool("paid", false, "only count bills paid this month")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Print(ui.RenderChart(ledger.Snapshot(), now, *paidOnly))
	return nil
}

func runExport(ledger *services.Ledger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := core.EncodeCollection(ledger.Snapshot())
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", *out)
	return nil
}

func runImport(ctx context.Context, ledger *services.Ledger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("i", "", "input file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("import: -i is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	records, rejects, err := core.DecodeCollection(data)
	if err != nil {
		return err
	}
	for _, rej := range rejects {
		fmt.Fprintln(os.Stderr, "billtrack: skipping:", rej)
	}
	if err := ledger.Replace(ctx, records); err != nil {
		return err
	}
	fmt.Printf("Imported %d bills (%d skipped)\n", len(records), len(rejects))
	return nil
}
