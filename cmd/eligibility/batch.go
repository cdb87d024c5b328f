package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iskolar-ocr/internal/config"
)

func createBatchCmd() *cobra.Command {
	var (
		policyFile string
		parallel   int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "batch [manifest.yaml]",
		Short: "Validate every document listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := basePolicy(policyFile)
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}

			ids, reqs, err := config.LoadManifest(args[0], policy, engine.Catalog())
			if err != nil {
				return err
			}

			start := time.Now()
			results, err := engine.ValidateBatch(cmd.Context(), reqs, parallel)
			if err != nil {
				return err
			}
			logger.Info("batch validated", "documents", len(results), "duration", time.Since(start))

			if asJSON {
				out := make(map[string]any, len(results))
				for i, res := range results {
					out[ids[i]] = res
				}
				return printJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tELIGIBLE\tGRADES\tFAILING\tCHECKS\tRECOMMENDATION")
			for i, res := range results {
				v := res.Verdict
				fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%d/%d\t%s\n",
					ids[i], v.IsEligible, v.GradeCount, len(v.FailingGrades),
					v.PassedChecks, v.TotalChecks, v.Recommendation)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&policyFile, "policy", "", "YAML policy file applied before the manifest policy")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "documents validated at once")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print full results as JSON keyed by document id")
	return cmd
}
