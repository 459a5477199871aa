package app

import (
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/userhub/userhub/internal/streams"
)

func init() { //nolint: gochecknoinits
	csvCmd.Flags().StringVar(&csvIn, "in", "", "Path to the input CSV file")
	csvCmd.Flags().StringVar(&csvOut, "out", "", "Path to the output text file")

	_ = csvCmd.MarkFlagRequired("in")
	_ = csvCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(csvCmd)
}

var (
	csvIn  string
	csvOut string

	csvCmd = &cobra.Command{
		Use:   "csv2jsonl",
		Short: "Convert a CSV file into a JSON-lines text file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := streams.ConvertFile(csvIn, csvOut); err != nil {
				log.Error().Err(err).Msg("operation failed")
				return err
			}

			var stats runtime.MemStats
			runtime.ReadMemStats(&stats)

			log.Info().
				Str("in", csvIn).
				Str("out", csvOut).
				Float64("heapMB", float64(stats.HeapAlloc)/1024/1024).
				Msg("operation succeeded")

			return nil
		},
	}
)
