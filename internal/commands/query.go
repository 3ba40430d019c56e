package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piotrekio/mquery/internal/config"
	"github.com/piotrekio/mquery/internal/history"
	"github.com/piotrekio/mquery/internal/logger"
	"github.com/piotrekio/mquery/internal/render"
	"github.com/piotrekio/mquery/internal/statement"
)

const (
	outputText = "text"
	outputCSV  = "csv"
)

// queryOptions holds the flags of the root command. Empty strings fall back to
// the config file.
type queryOptions struct {
	encoding        string
	headerMarker    string
	criteria        history.Criteria
	reverse         bool
	summary         bool
	summaryCurrency string
	color           string
	output          string
}

func addQueryFlags(cmd *cobra.Command, opts *queryOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.encoding, "encoding", "e", "", "text encoding of the file (default windows-1250)")
	f.StringVar(&opts.headerMarker, "header", "", "prefix of the line preceding the transactions (default \"#Data operacji\")")
	f.Var(amountValue{&opts.criteria.AmountFrom}, "amount-from", "only entries with an absolute amount of at least this")
	f.Var(amountValue{&opts.criteria.AmountTo}, "amount-to", "only entries with an absolute amount of at most this")
	f.StringVar(&opts.criteria.Category, "category", "", "only entries whose category contains this (case-insensitive)")
	f.StringVar(&opts.criteria.Currency, "currency", "", "only entries in this currency")
	f.StringVar(&opts.criteria.Description, "description", "", "only entries whose description contains this (case-insensitive)")
	f.Var(dateValue{&opts.criteria.DateFrom}, "date-from", "only entries on or after this date (YYYY-MM-DD)")
	f.Var(dateValue{&opts.criteria.DateTo}, "date-to", "only entries on or before this date (YYYY-MM-DD)")
	f.BoolVarP(&opts.reverse, "reverse", "r", false, "list days in reverse order")
	f.BoolVarP(&opts.summary, "summary", "s", false, "print income, expenses and balance")
	f.StringVar(&opts.summaryCurrency, "summary-currency", "", "currency totalled by --summary (default PLN)")
	f.StringVar(&opts.color, "color", "", "colorize output: auto, always or never (default auto)")
	f.StringVarP(&opts.output, "output", "o", outputText, "output format: text or csv")
}

// statementFileExists rejects a missing statement before anything is read.
func statementFileExists(_ *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", statement.ErrFileNotFound, args[0])
	}
	return nil
}

func runQuery(cmd *cobra.Command, path string, global *globalOptions, opts *queryOptions) error {
	log := logger.New(cmd.ErrOrStderr(), global.verbose)

	cfg, err := loadConfig(global.configPath, log)
	if err != nil {
		return err
	}

	readOpts := cfg.ReaderOptions()
	if opts.encoding != "" {
		readOpts.Encoding = opts.encoding
	}
	if opts.headerMarker != "" {
		readOpts.HeaderMarker = opts.headerMarker
	}

	colorMode, err := render.ParseColorMode(firstNonEmpty(opts.color, cfg.Output.Color))
	if err != nil {
		return err
	}
	if opts.output != outputText && opts.output != outputCSV {
		return fmt.Errorf("invalid output format %q (want %s or %s)", opts.output, outputText, outputCSV)
	}
	if err := opts.criteria.Validate(); err != nil {
		return err
	}

	log.Debug().Str("file", path).Str("encoding", readOpts.Encoding).Str("header", readOpts.HeaderMarker).Msg("reading statement")
	entries, err := statement.Load(path, readOpts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Warn().Str("header", readOpts.HeaderMarker).Msg("no transactions found; check --header and --encoding")
	}

	filtered := history.Filter(entries, opts.criteria)
	log.Debug().Int("read", len(entries)).Int("kept", len(filtered)).Msg("filtered history")

	out := cmd.OutOrStdout()
	if opts.output == outputCSV {
		return statement.WriteHistory(out, filtered, readOpts)
	}

	reverse := cfg.Output.Reverse
	if cmd.Flags().Changed("reverse") {
		reverse = opts.reverse
	}

	r := render.New(out, colorMode)
	if err := r.History(history.GroupByDate(filtered, reverse)); err != nil {
		return fmt.Errorf("printing history: %w", err)
	}
	if opts.summary {
		currency := firstNonEmpty(opts.summaryCurrency, cfg.Summary.Currency)
		fmt.Fprintln(out)
		if err := r.Summary(history.Summarize(filtered, currency)); err != nil {
			return fmt.Errorf("printing summary: %w", err)
		}
	}
	return nil
}

// loadConfig reads the config at path. Without an explicit path a missing default
// config file is not an error.
func loadConfig(path string, log zerolog.Logger) (*config.Config, error) {
	if path != "" {
		log.Debug().Str("config", path).Msg("loading config")
		return config.Load(path)
	}
	def, err := config.DefaultPath()
	if err != nil {
		log.Debug().Err(err).Msg("no config dir, using defaults")
		return config.Default(), nil
	}
	log.Debug().Str("config", def).Msg("loading config")
	return config.LoadOrDefault(def)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
