package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortflow/internal/testutil"
)

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// sampleFile writes the reference document to a temp file.
func sampleFile(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "input.txt", testutil.SampleDocument)
}

// jsonOpts returns root options that emit JSON with a fixed trace ID.
func jsonOpts() *RootOptions {
	return &RootOptions{Format: "json", RunIDs: testutil.NewFixedRunIDGenerator("run-test")}
}

// execute runs cmd with args and returns stdout and the error.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
