package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wichananm65/dynamic-form-backend/internal/record"
)

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx...]",
	Short: "Bulk-upload local spreadsheets into the configured store",
	Long: `Parses each spreadsheet in order and saves one record per data row.
The first row of each file is treated as a header. An empty file stops
the import; files processed before it stay saved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), args)
	},
}

func runImport(ctx context.Context, paths []string) error {
	sources := make([]record.Source, 0, len(paths))
	for _, p := range paths {
		src, err := record.FromPath(p)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close(context.Background())

	if err := d.service.BulkUpload(ctx, sources); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("imported %d file(s)\n", len(sources))
	return nil
}
