// Package cli реализует утилиту uyapimport: разбор сохраненной страницы портала
// и отправку найденных дел в API.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"davazen/internal/cases/adapters/portal"
	"davazen/internal/cases/domain/entities"
	"davazen/internal/client"
	"davazen/internal/client/config"
	"davazen/pkg/logger"
)

// Константы для логирования.
const (
	LogParsedPage  = "portal page parsed"
	LogNoRows      = "no case rows found on the page"
	LogDryRun      = "dry run, nothing submitted"
	LogImportDone  = "import finished"
	errCtxReadPage = "reading portal page"
	errCtxParse    = "parsing portal page"
	errCtxLogin    = "logging in"
	errCtxSubmit   = "submitting cases"
	errCtxOutput   = "writing output"
)

// ErrNoInput - не указан файл страницы.
var ErrNoInput = errors.New("path to the saved portal page is required (-file)")

// Options - параметры командной строки.
type Options struct {
	File        string
	BaseURL     string
	ServerParse bool
	DryRun      bool
}

// ParseFlags разбирает аргументы командной строки. Значения по умолчанию берутся из cfg.
func ParseFlags(args []string, cfg *config.Config, stderr io.Writer) (Options, error) {
	opts := Options{BaseURL: cfg.BaseURL}

	fs := flag.NewFlagSet("uyapimport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.File, "file", "", "saved portal page with the case table (- for stdin)")
	fs.StringVar(&opts.BaseURL, "a", opts.BaseURL, "davazen API base URL")
	fs.BoolVar(&opts.ServerParse, "server-parse", false, "send the raw page and let the server parse it")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "print parsed cases as JSON instead of submitting them")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if opts.File == "" && fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	if opts.File == "" {
		return Options{}, ErrNoInput
	}
	return opts, nil
}

// Run выполняет импорт и печатает созданные дела в out.
func Run(ctx context.Context, cfg *config.Config, opts Options, stdin io.Reader, out io.Writer) error {
	log := logger.Log(ctx).With(zap.String("file", opts.File))

	page, err := readPage(opts.File, stdin)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxReadPage, err)
	}

	drafts, err := portal.ParseTable(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxParse, err)
	}
	log.Info(ctx, LogParsedPage, zap.Int("rows", len(drafts)))

	if opts.DryRun {
		log.Info(ctx, LogDryRun)
		return writeJSON(out, drafts)
	}
	if len(drafts) == 0 && !opts.ServerParse {
		log.Warn(ctx, LogNoRows)
		return writeJSON(out, []entities.Case{})
	}

	clientCfg := *cfg
	clientCfg.BaseURL = opts.BaseURL
	api := client.New(&clientCfg, nil)

	if err := api.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return fmt.Errorf("%s: %w", errCtxLogin, err)
	}

	var created []entities.Case
	if opts.ServerParse {
		created, err = api.ImportHTML(ctx, page)
	} else {
		created, err = api.ImportBatch(ctx, drafts)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSubmit, err)
	}

	log.Info(ctx, LogImportDone,
		zap.Int("parsed", len(drafts)),
		zap.Int("created", len(created)),
		zap.Int("skipped", len(drafts)-len(created)))
	return writeJSON(out, created)
}

func readPage(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", errCtxOutput, err)
	}
	return nil
}
