package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iskolar-ocr/internal/audit"
	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/crossdoc"
	"github.com/iskolar-ocr/internal/db"
	"github.com/iskolar-ocr/internal/debug"
	"github.com/iskolar-ocr/internal/eligibility"
)

func createValidateCmd() *cobra.Command {
	var (
		textFile     string
		policyFile   string
		md           eligibility.DeclaredMetadata
		semester     string
		schoolYear   string
		ceiling      float64
		expectedDoc  string
		applicantRef string
		record       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate one OCR text file",
		Example: `  eligibility validate --text scan.txt --first-name Juan --last-name "Dela Cruz" \
    --university "Cavite State University" --year-level "2nd Year" --semester "1st Semester"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}

			policy, err := basePolicy(policyFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("semester") {
				policy.RequiredSemester = semester
			}
			if flags.Changed("school-year") {
				policy.RequiredSchoolYear = schoolYear
			}
			if flags.Changed("ceiling") {
				policy.PassingGradeCeiling = ceiling
			}
			if flags.Changed("expected-doc") {
				policy.ExpectedDocumentType = expectedDoc
			}

			engine, err := newEngine()
			if err != nil {
				return err
			}

			start := time.Now()
			res := engine.Validate(eligibility.Request{Text: string(text), Metadata: md, Policy: policy})
			logger.Info("validated",
				"file", textFile,
				"eligible", res.Verdict.IsEligible,
				"grades", res.Verdict.GradeCount,
				"duration", time.Since(start),
			)
			if res.Diagnostic != "" {
				logger.Warn("extraction diagnostic", "diagnostic", res.Diagnostic)
			}
			debug.Print(verbose, res.Debug)

			if record {
				if err := recordCheck(cmd, applicantRef, md, res); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&textFile, "text", "", "OCR text file")
	f.StringVar(&policyFile, "policy", "", "YAML policy file")
	f.StringVar(&md.FirstName, "first-name", "", "declared first name")
	f.StringVar(&md.LastName, "last-name", "", "declared last name")
	f.StringVar(&md.UniversityName, "university", "", "declared university")
	f.StringVar(&md.YearLevelName, "year-level", "", `declared year level, e.g. "2nd Year"`)
	f.StringVar(&md.DeclaredTerm, "term", "", "declared term: semester label or prelim/midterm/final")
	f.StringVar(&md.SchoolStudentID, "student-id", "", "declared school student ID")
	f.StringVar(&semester, "semester", "", "required semester")
	f.StringVar(&schoolYear, "school-year", "", `required school year, e.g. "2023-2024"`)
	f.Float64Var(&ceiling, "ceiling", eligibility.DefaultCeiling, "passing grade ceiling")
	f.StringVar(&expectedDoc, "expected-doc", "", "expected document type")
	f.StringVar(&applicantRef, "applicant", "", "applicant reference stored with --record")
	f.BoolVar(&record, "record", false, "record the check in the database")
	f.BoolVarP(&verbose, "verbose", "v", false, "print the extraction trace")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func recordCheck(cmd *cobra.Command, applicantRef string, md eligibility.DeclaredMetadata, res eligibility.Result) error {
	conn, err := db.NewConnection(cmd.Context(), db.SettingsFromEnv())
	if err != nil {
		return err
	}
	defer conn.Close()

	check := audit.NewCheck(applicantRef, "cli", md, res)
	if err := audit.NewPostgresStore(conn.DB, logger).Record(cmd.Context(), check); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded check %s\n", check.ID)
	return nil
}

func createDetectCmd() *cobra.Command {
	var textFile, expected string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Check whether a text looks like a different document type",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), crossdoc.Detect(engine.Catalog(), string(text), expected))
		},
	}

	cmd.Flags().StringVar(&textFile, "text", "", "OCR text file")
	cmd.Flags().StringVar(&expected, "expected", string(catalog.DocGrades),
		fmt.Sprintf("expected document type %v", catalog.DocumentTypes()))
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
