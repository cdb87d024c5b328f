package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iskolar-ocr/internal/eligibility"
)

const scan = "CAVITE STATE UNIVERSITY\nName: Juan Dela Cruz\n2nd Year\nFirst Semester\nPHYS 201 Physics 2.25 4\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCommand(t *testing.T) {
	cmd := createValidateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--text", writeTemp(t, "scan.txt", scan),
		"--first-name", "Juan",
		"--year-level", "2nd Year",
		"--semester", "1st Semester",
	})
	require.NoError(t, cmd.Execute())

	var res eligibility.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Verdict.IsEligible)
	require.Len(t, res.Grades, 1)
	assert.Equal(t, "Physics", res.Grades[0].Subject)
	assert.True(t, res.SemesterSection.Found)
}

func TestValidateCommandRequiresText(t *testing.T) {
	cmd := createValidateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--first-name", "Juan"})
	assert.Error(t, cmd.Execute())
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "juan.txt"), []byte(scan), 0o600))
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`documents:
  - id: juan-2nd
    text_file: juan.txt
    metadata:
      year_level: 2nd Year
  - id: juan-3rd
    text_file: juan.txt
    metadata:
      year_level: 3rd Year
`), 0o600))

	cmd := createBatchCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{manifest})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "juan-2nd"))
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[2], "false")
}

func TestDetectCommand(t *testing.T) {
	cmd := createDetectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--text", writeTemp(t, "scan.txt", scan), "--expected", "letter_to_mayor"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"wrong_document_detected": false`)
}
