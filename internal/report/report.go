package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ksdme/mailreport/internal/colors"
	"github.com/ksdme/mailreport/internal/models"
	"github.com/ksdme/mailreport/internal/store"
	"github.com/ksdme/mailreport/internal/utils"
	"github.com/pkg/errors"
)

type Options struct {
	// Only show the largest Top mailboxes when positive.
	Top int
	// Comma separated list of accounts replacing the full listing.
	Users string
	// Path of the CSV export, none when empty.
	Output    string
	HideEmpty bool
}

// Renders the report for a single run.
type Reporter struct {
	Out      io.Writer
	Renderer *lipgloss.Renderer
	Palette  colors.ColorPalette

	// Name of the server shown in the footer.
	Server string
}

func NewReporter(out io.Writer, renderer *lipgloss.Renderer, palette colors.ColorPalette, server string) *Reporter {
	return &Reporter{
		Out:      out,
		Renderer: renderer,
		Palette:  palette,
		Server:   server,
	}
}

// Run collects the mailboxes from the api and prints the report. Nothing
// is printed when the accounts can not be listed.
func (r *Reporter) Run(ctx context.Context, api API, options Options) error {
	start := time.Now()

	listed, err := api.ListAccounts(ctx)
	if err != nil {
		return err
	}

	accounts := SelectAccounts(listed, options.Users)
	slog.Debug("selected accounts", "listed", len(listed), "selected", len(accounts))

	records, err := Collect(ctx, api, accounts, options.HideEmpty)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Insert(ctx, records); err != nil {
		return err
	}

	if options.Top > 0 {
		err = r.PrintTop(ctx, db, options.Top)
	} else {
		err = r.PrintByAccount(ctx, db)
	}
	if err != nil {
		return err
	}

	// The export is always the collection as is, independent of the view.
	if options.Output != "" {
		all, err := db.All(ctx)
		if err != nil {
			return err
		}
		if err := ExportCSV(options.Output, all); err != nil {
			return err
		}
		slog.Info("exported mailboxes", "path", options.Output, "count", len(all))
	}

	total, err := db.GrandTotal(ctx)
	if err != nil {
		return err
	}

	r.PrintFooter(time.Since(start), len(records), total)
	return nil
}

func (r *Reporter) PrintTop(ctx context.Context, db *store.Store, n int) error {
	records, err := db.Top(ctx, n)
	if err != nil {
		return err
	}

	r.println(r.style(r.Palette.Title).Render(fmt.Sprintf("Top %d Largest Mailboxes Across All Accounts", n)))
	fmt.Fprintln(r.Out, r.table(records))
	return nil
}

func (r *Reporter) PrintByAccount(ctx context.Context, db *store.Store) error {
	accounts, err := db.AccountTotals(ctx)
	if err != nil {
		return err
	}

	r.println(r.style(r.Palette.Title).Render("Mailbox Sizes for All cPanel Users (Sorted by Account and Domain)"))

	for _, account := range accounts {
		r.println(r.style(r.Palette.Account).Render(fmt.Sprintf(
			"-------- Account: %s (Total: %s) --------",
			account.Name,
			utils.HumanSize(account.TotalBytes),
		)))

		domains, err := db.DomainTotals(ctx, account.Name)
		if err != nil {
			return err
		}

		for _, domain := range domains {
			records, err := db.Mailboxes(ctx, account.Name, domain.Name)
			if err != nil {
				return errors.Wrapf(err, "could not render domain %s", domain.Name)
			}

			r.println(r.style(r.Palette.Domain).Render(fmt.Sprintf(
				"Domain: %s (Total: %s)",
				domain.Name,
				utils.HumanSize(domain.TotalBytes),
			)))
			fmt.Fprintln(r.Out, r.table(records))
		}
	}

	return nil
}

func (r *Reporter) PrintFooter(elapsed time.Duration, count int, totalBytes int64) {
	label := r.style(r.Palette.Label)

	r.println(fmt.Sprintf("%s %s seconds", label.Render("Execution Time:"), utils.Seconds(elapsed)))
	fmt.Fprintf(r.Out, "%s %s\n", label.Render("Server:"), r.Server)
	fmt.Fprintf(r.Out, "%s %d\n", label.Render("Total Mailboxes Processed:"), count)
	fmt.Fprintf(r.Out, "%s %s\n", label.Render("Total Size:"), utils.HumanSize(totalBytes))
}

// Section lines are preceded by an empty line.
func (r *Reporter) println(text string) {
	fmt.Fprintf(r.Out, "\n%s\n", text)
}

func (r *Reporter) style(color lipgloss.Color) lipgloss.Style {
	return r.Renderer.NewStyle().Bold(true).Foreground(color)
}

// The table numbers its header as row 0 and data from row 1.
const headerRow = 0

func (r *Reporter) table(records []models.Mailbox) string {
	cell := r.Renderer.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Renderer.NewStyle().Foreground(r.Palette.Muted)).
		BorderRow(true).
		Headers(models.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return header
			case col == 3:
				return number
			default:
				return cell
			}
		})

	for _, record := range records {
		t.Row(record.Row()...)
	}

	return t.String()
}
