package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.cleanup()

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := a.desk.ExportRoster(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", outPath, err)
			}

			a.log.Info().Str("path", outPath).
				Int("students", len(a.desk.Students())).
				Int("teachers", len(a.desk.Teachers())).
				Msg("roster exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "roster.xlsx", "output workbook path")
	return cmd
}
