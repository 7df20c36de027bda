package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockscope/internal/analyze"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError,
		GetExitCode(WrapExitError(ExitCommandError, "bad flags", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]int{"n": 1}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestOutputFormatter_JSONWarning(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.SuccessWithWarning("partial", "best-effort"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "best-effort", resp.Warning)
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("analyzing %d nodes", 4)

	assert.Empty(t, out.String())
	assert.Equal(t, "analyzing 4 nodes\n", errOut.String())
}

func TestRenderBlocks_Text(t *testing.T) {
	blocks := make(analyze.BlockAccessMap)
	blocks.Add("orders", 2, 0, 1)
	blocks.Add("customer", 7)

	opts := &BlocksOptions{RootOptions: &RootOptions{Format: "text"}, ShowIDs: true}
	got := renderBlocks(blocks, opts).(string)

	assert.Contains(t, got, "Blocks explored: 4")
	assert.Contains(t, got, "customer: 1 blocks [7]")
	assert.Contains(t, got, "orders: 3 blocks [0 1 2]")
}

func TestRenderBlocks_JSONSortsIDs(t *testing.T) {
	blocks := make(analyze.BlockAccessMap)
	blocks.Add("orders", 3, 1, 2)

	opts := &BlocksOptions{RootOptions: &RootOptions{Format: "json"}}
	result := renderBlocks(blocks, opts).(BlocksResult)

	assert.Equal(t, []int64{1, 2, 3}, result.Relations["orders"])
	assert.Equal(t, 3, result.Total)
}
