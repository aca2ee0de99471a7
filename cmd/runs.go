package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/languoid-cli/internal/store"
)

var (
	runsLanguage string
	runsLimit    int
	runsOffset   int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded guess runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := st.ListRuns(cmd.Context(), store.RunFilter{
			Language: runsLanguage,
			Limit:    runsLimit,
			Offset:   runsOffset,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tLANGUAGE\tMETHOD\tGLOTTOCODE\tVERIFIED\tCANDIDATES")
		for _, run := range runs {
			verified := "-"
			if run.Verified != nil {
				verified = fmt.Sprintf("%t", *run.Verified)
			}
			code := run.Glottocode
			if code == "" {
				code = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Language, run.Method, code, verified, run.Candidates,
			)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsLanguage, "language", "", "filter by language name")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "maximum rows to list")
	runsCmd.Flags().IntVar(&runsOffset, "offset", 0, "rows to skip")
	rootCmd.AddCommand(runsCmd)
}
