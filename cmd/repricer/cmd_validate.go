package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config <path>",
		Short: "Check a repricer config document without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer config: %w", err)
			}
			cfg, err := entity.ParseRepricerConfigDocument(raw)
			if err != nil {
				return fmt.Errorf("config inválida: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: guard %.2f, %d excluded SKUs, %d buckets\n",
				cfg.GuardPercentage, len(cfg.ExcludedSKUs), len(cfg.Rules))
			return nil
		},
	}
}
