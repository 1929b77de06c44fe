// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "law-monitor-api-token", "  tok_abc123  \n")
				writeFile(t, dir, "mutation-api-token", "tok_xyz\n")
				return dir
			},
			want: map[string]string{
				"law-monitor-api-token": "tok_abc123",
				"mutation-api-token":    "tok_xyz",
			},
		},
		{
			name: "missing directory yields empty map",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty and whitespace-only files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "law-monitor-api-token", "tok")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", "  \n\t ")
				return dir
			},
			want: map[string]string{"law-monitor-api-token": "tok"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				writeFile(t, dir, "law-monitor-api-token", "tok")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: map[string]string{"law-monitor-api-token": "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadWarnsOnUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "law-monitor-api-token", "tok")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	var warnings bytes.Buffer
	got, err := Load(dir, &warnings)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"law-monitor-api-token": "tok"}, got)
	assert.Contains(t, warnings.String(), "warning: could not read secret dangling")
}

func TestLoadRejectsFileAsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "not-a-dir", "x")

	_, err := Load(filepath.Join(dir, "not-a-dir"), io.Discard)
	assert.ErrorContains(t, err, "reading secrets directory")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
