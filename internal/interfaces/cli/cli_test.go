package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-nz/planwise/internal/domain/zone"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestZoneLookup(t *testing.T) {
	out, err := runCommand(t, "zone", "lookup", "H3")
	require.NoError(t, err)

	var info zone.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "Residential - Single House Zone", info.Name)
}

func TestZoneLookup_Unknown(t *testing.T) {
	_, err := runCommand(t, "zone", "lookup", "H99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "H99")
}

func TestZoneResolve(t *testing.T) {
	out, err := runCommand(t, "zone", "resolve", "Single", "House", "(Zone", "3)")
	require.NoError(t, err)

	var info zone.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "H3", info.Code)
}

func TestZoneList(t *testing.T) {
	out, err := runCommand(t, "zone", "list")
	require.NoError(t, err)

	var infos []zone.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Len(t, infos, 19)
}

func TestOverlayClassify(t *testing.T) {
	out, err := runCommand(t, "overlay", "classify",
		`[{"HERITAGE_NAME":"Villa"},{"UNKNOWN_FIELD":1}]`)
	require.NoError(t, err)

	var result struct {
		Classified []struct {
			Type string `json:"Type"`
		} `json:"classified"`
		Unclassified []map[string]interface{} `json:"unclassified"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Classified, 1)
	assert.Equal(t, "heritage", result.Classified[0].Type)
	assert.Len(t, result.Unclassified, 1)
}

func TestOverlayClassify_NoInput(t *testing.T) {
	_, err := runCommand(t, "overlay", "classify")
	require.Error(t, err)
}

func TestOverlayTypes(t *testing.T) {
	out, err := runCommand(t, "overlay", "types")
	require.NoError(t, err)

	var types []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &types))
	assert.Len(t, types, 9)
}

func TestDocsList(t *testing.T) {
	out, err := runCommand(t, "docs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unitaryplan.aucklandcouncil.govt.nz")
}
