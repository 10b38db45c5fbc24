package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/synth"
)

type stubSearcher struct{ queries []string }

func (s *stubSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	s.queries = append(s.queries, req.Query)
	return &search.Response{Results: []search.Result{{Title: "A", URL: "https://a.example", Content: "a"}}}, nil
}

type stubSynth struct {
	messages []string
	err      error
}

func (s *stubSynth) Synthesize(_ context.Context, _ synth.Prompt, msg string) (string, error) {
	s.messages = append(s.messages, msg)
	return "report body", s.err
}

type stubLookup struct{}

func (stubLookup) Lookup(context.Context, string) []dm.ArxivLink {
	return []dm.ArxivLink{{Title: "X", Link: "http://arxiv.org/abs/1"}}
}

// execute 重置全局 flag 状态后执行命令
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func useStubs(t *testing.T, sy *stubSynth) *stubSearcher {
	t.Helper()
	s := &stubSearcher{}
	orig := newAnalyzer
	newAnalyzer = func(context.Context, *config.Config) (analyzer, error) {
		return engine.New(s, sy, stubLookup{}), nil
	}
	t.Cleanup(func() { newAnalyzer = orig })
	return s
}

func TestScout(t *testing.T) {
	sy := &stubSynth{}
	s := useStubs(t, sy)

	out, err := execute(t, "scout", "self-healing", "concrete")
	require.NoError(t, err)

	assert.Equal(t, []string{"self-healing concrete"}, s.queries)
	assert.Contains(t, out, "report body")
	assert.Contains(t, out, "Web: A")
	assert.Contains(t, out, "Paper: X")
}

func TestScoutEmpty(t *testing.T) {
	sy := &stubSynth{}
	s := useStubs(t, sy)

	_, err := execute(t, "scout")
	assert.ErrorIs(t, err, engine.ErrEmptyInput)
	assert.Empty(t, s.queries)
	assert.Empty(t, sy.messages)
}

func TestScoutJSON(t *testing.T) {
	useStubs(t, &stubSynth{})

	out, err := execute(t, "scout", "--json", "idea")
	require.NoError(t, err)

	var got struct {
		Workflow string              `json:"workflow"`
		Status   string              `json:"status"`
		Result   dm.AggregatedResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "idea", got.Workflow)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "report body", got.Result.Report)
	require.Len(t, got.Result.References, 2)
	assert.Equal(t, dm.ReferenceWeb, got.Result.References[0].Kind)
	assert.Equal(t, dm.ReferencePaper, got.Result.References[1].Kind)
}

func TestScoutFailed(t *testing.T) {
	useStubs(t, &stubSynth{err: errors.New("402 payment required")})

	out, err := execute(t, "scout", "idea")
	assert.ErrorIs(t, err, errAnalysisFailed)
	assert.Contains(t, out, "⚠️ Error: synthesize: 402 payment required")
}

func TestDocumentFile(t *testing.T) {
	sy := &stubSynth{}
	s := useStubs(t, sy)

	path := filepath.Join(t.TempDir(), "attention_is_all_you_need.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	out, err := execute(t, "document", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyze: attention_is_all_you_need.pdf"}, sy.messages)
	assert.Empty(t, s.queries)
	assert.Contains(t, out, "Paper: X")
}

func TestDocumentURL(t *testing.T) {
	sy := &stubSynth{}
	useStubs(t, sy)

	_, err := execute(t, "document", "--url", "https://arxiv.org/pdf/1706.03762")
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyze: https://arxiv.org/pdf/1706.03762"}, sy.messages)
}

func TestDocumentErrors(t *testing.T) {
	sy := &stubSynth{}
	useStubs(t, sy)

	_, err := execute(t, "document")
	assert.ErrorIs(t, err, engine.ErrEmptyInput)

	_, err = execute(t, "document", "--file", filepath.Join(t.TempDir(), "nope.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "document", "--file", "a.pdf", "--url", "https://x")
	assert.Error(t, err)

	assert.Empty(t, sy.messages)
}

func TestMissingCredential(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvLLMAPIKey, "")
	t.Setenv(config.EnvTavilyAPIKey, "")

	_, err := execute(t, "scout", "idea")
	assert.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gap_analyzer dev\n", out)
}
