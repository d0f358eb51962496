package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/ksdme/mailreport/internal/colors"
	"github.com/ksdme/mailreport/internal/config"
	"github.com/ksdme/mailreport/internal/report"
	"github.com/ksdme/mailreport/internal/utils"
	"github.com/ksdme/mailreport/internal/whm"
	"github.com/muesli/termenv"
)

var version = "dev"

type args struct {
	Top       int    `arg:"-t,--top" help:"show only the top N largest mailboxes" placeholder:"N"`
	Users     string `arg:"-u,--users" help:"only report these cPanel users (comma separated)" placeholder:"USERS"`
	Output    string `arg:"-o,--output" help:"also write the mailboxes to this CSV file" placeholder:"PATH"`
	HideEmpty bool   `arg:"--hide-empty" help:"hide mailboxes with zero storage"`

	Config  string `arg:"-c,--config,env:MAILREPORT_CONFIG" help:"YAML file with host, token and verify_ssl"`
	Debug   bool   `arg:"--debug" help:"log api requests and responses"`
	NoColor bool   `arg:"--no-color" help:"disable colored output"`
}

func (args) Description() string {
	return "Fetches mailbox sizes of every cPanel account from WHM and prints a report."
}

func (args) Version() string {
	return "mailreport " + version
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// Runs a single invocation and returns its exit code: 0 on success, 1 when
// the report failed and 2 on usage errors.
func run(argv []string, stdout io.Writer, stderr io.Writer) int {
	var cli args
	if retcode, consumed := utils.ParseArgs(stdout, stderr, "mailreport", argv, &cli); consumed {
		return retcode
	}

	palette := colors.DefaultColorPalette()
	options := []termenv.OutputOption{}
	if cli.NoColor {
		options = append(options, termenv.WithProfile(termenv.Ascii))
	}
	renderer := lipgloss.NewRenderer(stdout, options...)
	errRenderer := lipgloss.NewRenderer(stderr, options...)

	fail := func(err error) int {
		fmt.Fprintln(stderr, errRenderer.NewStyle().Bold(true).Foreground(palette.Error).Render("error: "+err.Error()))
		return 1
	}

	if cli.Top < 0 {
		fmt.Fprintln(stderr, "error: --top must not be negative")
		return 2
	}

	settings, err := config.Load(cli.Config)
	if err != nil {
		return fail(err)
	}
	settings.Debug = settings.Debug || cli.Debug
	if err := settings.Validate(); err != nil {
		return fail(err)
	}

	if settings.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if !settings.VerifySSL {
		slog.Warn("tls certificate verification is disabled", "host", settings.Host)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reporter := report.NewReporter(stdout, renderer, palette, settings.Host)
	err = reporter.Run(ctx, whm.NewClient(settings), report.Options{
		Top:       cli.Top,
		Users:     cli.Users,
		Output:    cli.Output,
		HideEmpty: cli.HideEmpty,
	})
	if err != nil {
		return fail(err)
	}

	return 0
}
