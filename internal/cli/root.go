package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/normalise"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"github.com/spf13/cobra"
)

const tickerPrompt = "Enter a ticker symbol: "

// Summariser is the part of pipeline.Driver the command uses.
type Summariser interface {
	Summarise(ctx context.Context, ref commonModels.FilingReference) pipeline.Summary
	SummariseDocument(ctx context.Context, ref commonModels.FilingReference, doc commonModels.RawDocument) pipeline.Summary
}

// Factory builds the summariser once flags are parsed, so --help never
// touches the network.
type Factory func(ctx context.Context) (Summariser, error)

type options struct {
	form    string
	file    string
	verbose bool
}

func NewRootCommand(newSummariser Factory) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "earnings [ticker]",
		Short: "Summarise a company's latest earnings release",
		Long: `Finds the latest filing of the given form for a ticker on SEC EDGAR,
reads its earnings exhibit and prints revenue, operating income, EPS,
guidance and key drivers.

Without a ticker argument the command prompts for one.

Examples:
  earnings AAPL
  earnings MSFT --form 10-Q
  earnings NVDA --file ./ex99-1.htm`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger_i.Init(cmd.ErrOrStderr(), level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, newSummariser)
		},
	}

	cmd.Flags().StringVarP(&opts.form, "form", "f", config.DefaultForm, "SEC form type to look up")
	cmd.Flags().StringVar(&opts.file, "file", "", "summarise a locally saved exhibit instead of fetching one")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline steps to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options, newSummariser Factory) error {
	var ticker string
	if len(args) == 1 {
		ticker = args[0]
	} else {
		t, err := promptTicker(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		ticker = t
	}
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return errors.New("a ticker symbol is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summariser, err := newSummariser(ctx)
	if err != nil {
		return fmt.Errorf("starting summariser: %w", err)
	}

	ref := commonModels.FilingReference{Ticker: ticker, Form: opts.form}
	var summary pipeline.Summary
	if opts.file != "" {
		doc, err := normalise.ReadFile(opts.file, ref.Normalised(config.DefaultForm))
		if err != nil {
			return err
		}
		summary = summariser.SummariseDocument(ctx, ref, doc)
	} else {
		summary = summariser.Summarise(ctx, ref)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s's Results Summary:\n", ticker)
	fmt.Fprintln(out, summary.Report)
	return nil
}

func promptTicker(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, tickerPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading ticker: %w", err)
	}
	return line, nil
}

// Execute runs the command and exits non-zero on error.
func Execute(newSummariser Factory) {
	cmd := NewRootCommand(newSummariser)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}
