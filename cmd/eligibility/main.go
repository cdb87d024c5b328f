package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iskolar-ocr/internal/config"
	"github.com/iskolar-ocr/internal/eligibility"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	if err := config.LoadEnv(); err != nil {
		logger.Warn("env file not loaded", "error", err)
	}

	rootCmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Scholarship grade report eligibility checks",
		Long: `Extracts grades from OCR text of a grade report, matches it against the
applicant's declared details and the administrator policy, and prints a verdict.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(createValidateCmd())
	rootCmd.AddCommand(createBatchCmd())
	rootCmd.AddCommand(createDetectCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createDBCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine builds an engine over the catalog named by the environment
func newEngine() (*eligibility.Engine, error) {
	cat, err := config.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load synonyms: %w", err)
	}
	return eligibility.NewEngine(cat), nil
}

// basePolicy is the environment policy, optionally overlaid with a file
func basePolicy(path string) (eligibility.PolicyConfig, error) {
	p := config.PolicyFromEnv()
	if path == "" {
		return p, nil
	}
	return config.LoadPolicyFile(path, p)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
