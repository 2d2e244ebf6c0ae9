package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/infrastructure/csvcodec"
	"github.com/jhoicas/repricer-api/internal/infrastructure/filestore"
	"github.com/jhoicas/repricer-api/pkg/logger"
)

type runOptions struct {
	input      string
	outDir     string
	configPath string
	today      string
	timezone   string
	logLevel   string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reprice an inventory CSV and write updated, excluded and log CSVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepricing(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Inventory export (cp932, utf-8 or latin1)")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", ".", "Directory for updated.csv, excluded.csv and log.csv")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "./data/repricer_config.json", "Repricer config document")
	cmd.Flags().StringVar(&opts.today, "today", "", "Reference date YYYY-MM-DD (default: today in --timezone)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "Asia/Tokyo", "IANA timezone used to compute today")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "trace, debug, info, warn, error")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRepricing(cmd *cobra.Command, opts runOptions) error {
	ctx := cmd.Context()

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", opts.timezone, err)
	}
	in := repricer.RepriceInput{FileName: filepath.Base(opts.input)}
	if opts.today != "" {
		d, err := time.Parse(time.DateOnly, opts.today)
		if err != nil {
			return fmt.Errorf("--today debe tener formato YYYY-MM-DD: %w", err)
		}
		in.Today = &d
	}
	in.Content, err = os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("leer entrada: %w", err)
	}

	log := logger.New(logger.Config{Env: "development", Level: opts.logLevel, Out: cmd.ErrOrStderr()})
	uc := repricer.NewUseCase(
		filestore.NewConfigStore(opts.configPath),
		csvcodec.Codec{},
		nil, nil, nil,
		log.Component("repricer"),
		repricer.Options{Location: loc, PreviewLimit: 1},
	)
	out, err := uc.Preview(ctx, in)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{"updated.csv", out.UpdatedCSV},
		{"excluded.csv", out.ExcludedCSV},
		{"log.csv", out.LogCSV},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(opts.outDir, f.name), f.data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", f.name, err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Charset string `json:"charset"`
		Today   string `json:"today"`
		Summary any    `json:"summary"`
	}{out.Charset, out.Today, out.Summary})
}
