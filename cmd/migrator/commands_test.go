package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBanks(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("questions:\n  - text: q\n    answers: [a, b]\n    correct: a\n    difficulty: 1\n"), 0o600))

	banks, err := loadBanks([]string{good, good})
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "a", banks[1][0].CorrectAnswer)

	_, err = loadBanks([]string{good, filepath.Join(dir, "missing.yaml")})
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"up", "down", "status", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	files, err := seed.Flags().GetStringSlice("file")
	require.NoError(t, err)
	assert.Equal(t, []string{"db/seeds/questions.yaml"}, files)
}
