package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/eligibility"
	"github.com/iskolar-ocr/internal/normalize"
)

// ErrUnknownYearLevel is returned when a manifest declares a year level the
// catalog cannot map.
var ErrUnknownYearLevel = errors.New("unknown year level")

// Environment variables read by PolicyFromEnv.
const (
	EnvRequiredSemester   = "ELIGIBILITY_REQUIRED_SEMESTER"
	EnvRequiredSchoolYear = "ELIGIBILITY_REQUIRED_SCHOOL_YEAR"
	EnvPassingCeiling     = "ELIGIBILITY_PASSING_CEILING"
	EnvGradeMin           = "ELIGIBILITY_GRADE_MIN"
	EnvGradeMax           = "ELIGIBILITY_GRADE_MAX"
	EnvExpectedDocument   = "ELIGIBILITY_EXPECTED_DOCUMENT"
	EnvSynonymsFile       = "ELIGIBILITY_SYNONYMS_FILE"
)

// PolicyFromEnv builds the administrator policy from ELIGIBILITY_* variables
func PolicyFromEnv() eligibility.PolicyConfig {
	def := normalize.DefaultBounds()
	return eligibility.PolicyConfig{
		RequiredSemester:    GetEnv(EnvRequiredSemester, ""),
		RequiredSchoolYear:  GetEnv(EnvRequiredSchoolYear, ""),
		PassingGradeCeiling: GetEnvFloat(EnvPassingCeiling, eligibility.DefaultCeiling),
		GradeBounds: normalize.Bounds{
			Lower: GetEnvFloat(EnvGradeMin, def.Lower),
			Upper: GetEnvFloat(EnvGradeMax, def.Upper),
		},
		ExpectedDocumentType: GetEnv(EnvExpectedDocument, ""),
	}.WithDefaults()
}

// LoadPolicyFile reads a YAML policy. Fields missing from the file keep the
// values of base.
func LoadPolicyFile(path string, base eligibility.PolicyConfig) (eligibility.PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read policy: %w", err)
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return base, fmt.Errorf("parse policy %s: %w", path, err)
	}
	return p.WithDefaults(), nil
}

// LoadCatalog returns the catalog with the overrides named by
// ELIGIBILITY_SYNONYMS_FILE applied, or the built-in one.
func LoadCatalog() (*catalog.Catalog, error) {
	path := GetEnv(EnvSynonymsFile, "")
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadOverrides(path)
}

// Manifest lists documents for batch validation.
type Manifest struct {
	Policy    *eligibility.PolicyConfig `yaml:"policy"`
	Documents []ManifestEntry           `yaml:"documents"`
}

// ManifestEntry is one document in a manifest. TextFile is resolved relative
// to the manifest.
type ManifestEntry struct {
	ID       string                       `yaml:"id"`
	TextFile string                       `yaml:"text_file"`
	Metadata eligibility.DeclaredMetadata `yaml:"metadata"`
}

// LoadManifest reads a batch manifest and the OCR text of every entry. The
// manifest policy, when present, overrides base field by field.
func LoadManifest(path string, base eligibility.PolicyConfig, cat *catalog.Catalog) ([]string, []eligibility.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}

	m := Manifest{Policy: &base}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	policy := m.Policy.WithDefaults()

	dir := filepath.Dir(path)
	ids := make([]string, 0, len(m.Documents))
	reqs := make([]eligibility.Request, 0, len(m.Documents))
	for i, doc := range m.Documents {
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		if doc.Metadata.YearLevelName != "" {
			if _, ok := cat.ResolveYearLevel(doc.Metadata.YearLevelName); !ok {
				return nil, nil, fmt.Errorf("document %s: %q: %w", id, doc.Metadata.YearLevelName, ErrUnknownYearLevel)
			}
		}

		textPath := doc.TextFile
		if !filepath.IsAbs(textPath) {
			textPath = filepath.Join(dir, textPath)
		}
		text, err := os.ReadFile(textPath)
		if err != nil {
			return nil, nil, fmt.Errorf("document %s: %w", id, err)
		}

		ids = append(ids, id)
		reqs = append(reqs, eligibility.Request{Text: string(text), Metadata: doc.Metadata, Policy: policy})
	}
	return ids, reqs, nil
}
