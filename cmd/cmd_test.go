package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqtrainer/internal/report"
	"github.com/abhisek/mcqtrainer/internal/selection"
)

func newQuizFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "quiz"}
	addQuizFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestQuizRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    selection.Request
		wantErr bool
	}{
		{
			name: "defaults",
			want: selection.Request{Scope: selection.ScopeOverall, Mode: selection.ModeAll},
		},
		{
			name: "weak shorthand",
			args: []string{"--weak", "--threshold", "2"},
			want: selection.Request{Scope: selection.ScopeOverall, Mode: selection.ModeWeakRecentStreak, Threshold: 2},
		},
		{
			name: "sub-category incorrect",
			args: []string{"--category", "Math", "--sub", "Algebra", "--mode", "incorrect"},
			want: selection.Request{
				Scope: selection.ScopeSubCategory, Mode: selection.ModeIncorrect,
				Category: "Math", SubCategory: "Algebra",
			},
		},
		{
			name:    "incorrect needs a sub-category",
			args:    []string{"--mode", "incorrect"},
			wantErr: true,
		},
		{
			name:    "reset is not a quiz",
			args:    []string{"--category", "Math", "--sub", "Algebra", "--mode", "reset"},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			args:    []string{"--mode", "hard"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quizRequest(newQuizFlags(t, tt.args...))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuizTitle(t *testing.T) {
	assert.Equal(t, "All categories", quizTitle(selection.Request{}))
	assert.Equal(t, "Math (weak)", quizTitle(selection.Request{
		Scope: selection.ScopeCategory, Category: "Math", Mode: selection.ModeWeakRecentStreak,
	}))
	assert.Equal(t, "Algebra (unanswered)", quizTitle(selection.Request{
		Scope: selection.ScopeSubCategory, Category: "Math", SubCategory: "Algebra", Mode: selection.ModeUnanswered,
	}))
}

const bankCSV = `Kategorie,Unter-Kategorie,Frage #,Frage,Antwort A,Antwort B,Antwort C,Antwort D,Richtige Antwort,Abbildung,TimesAnswered,TimesCorrect,TimesChosenA,TimesChosenB,TimesChosenC,TimesChosenD,timesCorrectRecent
"Math","Algebra","1","2+2?","3","4","5","6","B","",2,1,1,1,0,0,1
"Math","Geometry","2","Sides of a square?","3","4","5","6","B","",0,0,0,0,0,0,0
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommands_EndToEnd(t *testing.T) {
	for _, k := range []string{"MCQ_DB", "MCQ_WEAK_THRESHOLD", "MCQ_WRITE_MODE", "MCQ_LOG_FILE", "MCQ_LOG_LEVEL", "MCQ_SEED_CSV"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	db := filepath.Join(dir, "q.db")
	cfg := filepath.Join(dir, "config.yaml")
	src := filepath.Join(dir, "bank.csv")
	require.NoError(t, os.WriteFile(src, []byte(bankCSV), 0o644))
	common := []string{"--db", db, "--config", cfg}

	out := run(t, append([]string{"import", src}, common...)...)
	assert.Contains(t, out, "Imported 2 questions (0 rows skipped)")

	out = run(t, append([]string{"stats", "--json"}, common...)...)
	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 2, r.Summary.TotalQuestions)
	assert.Equal(t, 2, r.Summary.TotalAttempts)
	require.Len(t, r.Categories, 1)
	assert.Equal(t, "Math", r.Categories[0].Name)

	out = run(t, append([]string{"reset", "--category", "Math", "--sub", "Algebra"}, common...)...)
	assert.Contains(t, out, "Reset statistics of 1 questions in Math / Algebra")

	exported := filepath.Join(dir, "out.csv")
	out = run(t, append([]string{"export", exported}, common...)...)
	assert.Contains(t, out, "Exported 2 questions")
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], `"",0,0,0,0,0,0,0`), lines[1])

	backup := filepath.Join(dir, "backup.db")
	out = run(t, append([]string{"backup", backup}, common...)...)
	assert.Contains(t, out, "Backup written")

	out = run(t, append([]string{"clear", "--yes"}, common...)...)
	assert.Contains(t, out, "Question bank cleared.")

	out = run(t, append([]string{"restore", backup}, common...)...)
	assert.Contains(t, out, "Restored 2 questions")

	out = run(t, append([]string{"stats", "--json=false"}, common...)...)
	assert.Contains(t, out, "Overall")
	assert.Contains(t, out, "Geometry")
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, report.Aggregate(nil))
	assert.Contains(t, buf.String(), "No questions.")
}
