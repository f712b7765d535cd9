package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bent101/wordle-entropy/history"
	"github.com/bent101/wordle-entropy/solver"
	"github.com/bent101/wordle-entropy/words"
)

func writeDataDir(t *testing.T, answers, used string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, words.AnswersFile), []byte(answers), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, words.UsedFile), []byte(used), 0644))
	return dir
}

func recordServed(t *testing.T, dbPath string, served ...string) {
	t.Helper()
	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	for _, w := range served {
		require.NoError(t, store.Record(context.Background(), solver.ScoredWord{Word: w, Entropy: 1}, false))
	}
}

func TestHintsSkipsServedWords(t *testing.T) {
	dir := writeDataDir(t, `["CRANE", "TRAIN", "GRAPE", "PLANE"]`, `[]`)
	db := filepath.Join(t.TempDir(), "history.db")
	recordServed(t, db, "TRAIN")

	var out bytes.Buffer
	err := runHints(context.Background(), []string{"-data", dir, "-history-db", db, "-word", "crane"}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "3 patterns over 3 answers, 1.58 bits")
	assert.Contains(t, got, "-gg-g 1")
	assert.Contains(t, got, "ggggg 1 solved")
	// TRAIN's pattern against CRANE
	assert.NotContains(t, got, "-ggy-")
}

func TestHintsWithoutHistory(t *testing.T) {
	dir := writeDataDir(t, `["CRANE", "TRAIN", "GRAPE", "PLANE"]`, `[]`)

	var out bytes.Buffer
	require.NoError(t, runHints(context.Background(), []string{"-data", dir, "-word", "CRANE"}, &out))
	assert.Contains(t, out.String(), "4 patterns over 4 answers, 2.00 bits")
	assert.Contains(t, out.String(), "🟩🟩🟩🟩🟩 ggggg 1 solved")
}

func TestHintsPatternFilter(t *testing.T) {
	dir := writeDataDir(t, `["CRANE", "TRAIN", "BRAIN", "GRAPE"]`, `[]`)

	var out bytes.Buffer
	require.NoError(t, runHints(context.Background(), []string{"-data", dir, "-word", "CRANE", "-pattern", "-GGY-"}, &out))
	assert.Equal(t, "BRAIN TRAIN\n", out.String())

	out.Reset()
	require.NoError(t, runHints(context.Background(), []string{"-data", dir, "-word", "CRANE", "-pattern", "yyyyy"}, &out))
	assert.Contains(t, out.String(), "no remaining answer gives")

	err := runHints(context.Background(), []string{"-data", dir, "-word", "CRANE", "-pattern", "gxg"}, &out)
	assert.Error(t, err)
}

func TestHintsRequiresWord(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runHints(context.Background(), nil, &out))
}

func TestBestReportsSampleAndRemaining(t *testing.T) {
	dir := writeDataDir(t, `["CRANE", "TRAIN", "GRAPE", "PLANE", "BRAVE"]`, `["BRAVE"]`)

	var out bytes.Buffer
	require.NoError(t, runBest(context.Background(), []string{"-data", dir, "-sample-size", "2", "-seed", "1"}, &out))
	assert.Contains(t, out.String(), "scored up to 2 of 4 remaining answers")
}

func TestBestColdStart(t *testing.T) {
	dir := writeDataDir(t, `["CRANE", "TRAIN"]`, `[]`)

	var out bytes.Buffer
	require.NoError(t, runBest(context.Background(), []string{"-data", dir, "-seed", "1"}, &out))
	assert.Contains(t, out.String(), "picked a precalculated starter")
}

func TestHistoryCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	var out bytes.Buffer
	require.NoError(t, runHistory(context.Background(), []string{"-history-db", db}, &out))
	assert.Equal(t, "nothing served yet\n", out.String())

	dir := writeDataDir(t, `["CRANE", "TRAIN", "GRAPE", "PLANE"]`, `[]`)
	out.Reset()
	require.NoError(t, runBest(context.Background(), []string{"-data", dir, "-history-db", db, "-seed", "1"}, &out))
	out.Reset()
	require.NoError(t, runBest(context.Background(), []string{"-data", dir, "-history-db", db, "-seed", "1"}, &out))

	out.Reset()
	require.NoError(t, runHistory(context.Background(), []string{"-history-db", db, "-limit", "5"}, &out))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	// newest first: the second request ranked, the first used a starter
	assert.Contains(t, string(lines[0]), "ranked")
	assert.Contains(t, string(lines[1]), "starter")
	assert.Contains(t, string(lines[1]), "bits")

	assert.Error(t, runHistory(context.Background(), nil, &out))
}

func TestConfigFlagsOverrideFileBeforeValidating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample_size: 0\n"), 0644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	resolve := configFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-sample-size", "5"}))

	cfg, err := resolve()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.SampleSize)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	resolve = configFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path}))
	_, err = resolve()
	assert.Error(t, err)
}
