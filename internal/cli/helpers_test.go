package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const responsesInput = `items:
  - id: q1
    family: L2
    parameters: [1, 0]
  - id: q2
    family: L4
    parameters: [1.2, -0.3, 0.2, 0.95]
  - id: q3
    family: GPCM
    parameters: [0.9, -1, 0, 1]
quadrature:
  points: 5
  min: -2
  max: 2
responses:
  - [1, 1, 3]
  - [0, 0, 0]
  - [1, 0, 2]
  - [0, 1, 1]
  - [1, -1, 2]
  - [0, 0, 1]
`

const estimatesInput = `items:
  - id: only
    family: L2
    parameters: [1, 0]
quadrature:
  theta: [-1, 0, 1]
  densities: [1, 2, 1]
estimates:
  rjk:
    - - [3, 2, 1]
      - [1, 2, 3]
  nt: [4, 4, 4]
`

// writeFile writes content to name under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
