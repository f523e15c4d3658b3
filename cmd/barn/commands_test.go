package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goblinText = `Goblin Warrior CR 1/2
XP 200
NE Small humanoid (goblinoid)
Init +2; Senses darkvision 60 ft.; Perception +1
DEFENSE
AC 16, touch 13, flat-footed 14
HP 6 (1d8+2)
Fort +2; Ref +2; Will -1
OFFENSE
Speed 30 ft.
Melee dogslicer +2 (1d6)
STATISTICS
Str 11, Dex 14, Con 13, Int 10, Wis 9, Cha 6
Base Atk +1; CMB +0; CMD 12
ECOLOGY
Environment temperate plains
`

const wolfText = `Wolf CR 1
XP 400
N Medium animal
Init +2; Senses low-light vision, scent; Perception +8
DEFENSE
AC 14, touch 12, flat-footed 12
HP 13 (2d8+4)
Fort +5; Ref +5; Will +1
OFFENSE
Speed 50 ft.
Melee bite +2 (1d6+1 plus trip)
`

// runBarn executes the root command with an isolated environment and
// returns stdout and stderr.
func runBarn(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeBlock(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestParse_Report(t *testing.T) {
	path := writeBlock(t, t.TempDir(), "goblin.txt", goblinText)

	out, _, err := runBarn(t, "", "parse", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 48)
	assert.Equal(t, "Name: Goblin Warrior CR 1/2", lines[0])
	assert.Contains(t, out, "AC: 16, touch 13, flat-footed 14\n")
}

func TestParse_StdinJSON(t *testing.T) {
	out, _, err := runBarn(t, goblinText, "parse", "-", "--json")
	require.NoError(t, err)

	var got parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, creature.IDFor(goblinText), got.ID)
	assert.Equal(t, "-", got.Source)
	require.Len(t, got.Fields, 48)
	assert.Equal(t, "Goblin Warrior CR 1/2", got.Fields[0].Value)
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := runBarn(t, "", "parse", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeBlock(t, dir, "goblin.txt", goblinText)
	bad := writeBlock(t, dir, "scrap.txt", "Just a name\nDEFENSE\nAC varies\n")

	out, _, err := runBarn(t, "", "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	out, _, err = runBarn(t, "", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, bad+": missing CR; missing Alignment")
	assert.Contains(t, out, `AC is not numeric: "varies"`)
}

func TestValidate_CustomRequire(t *testing.T) {
	path := writeBlock(t, t.TempDir(), "wolf.txt", wolfText)

	_, _, err := runBarn(t, "", "validate", "--require", "Name,Melee", path)
	require.NoError(t, err)

	out, _, err := runBarn(t, "", "validate", "--require", "Name,Feats", path)
	require.Error(t, err)
	assert.Contains(t, out, "missing Feats")

	_, _, err = runBarn(t, "", "validate", "--require", "Bogus", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "Bogus"`)
}

func TestImportListShow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "barn.db")
	goblin := writeBlock(t, dir, "goblin.txt", goblinText)
	wolf := writeBlock(t, dir, "wolf.txt", wolfText)
	missing := filepath.Join(dir, "missing.txt")

	out, _, err := runBarn(t, "", "--db", db, "import", "--workers", "2", goblin, wolf, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Contains(t, out, "imported "+creature.IDFor(goblinText)+" Goblin Warrior CR 1/2")
	assert.Contains(t, out, "imported "+creature.IDFor(wolfText)+" Wolf CR 1")
	assert.Contains(t, out, "skipped "+missing)

	out, _, err = runBarn(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	goblinAt := strings.Index(out, "Goblin Warrior")
	wolfAt := strings.Index(out, "Wolf CR 1")
	require.True(t, goblinAt >= 0 && wolfAt >= 0, out)
	assert.Less(t, goblinAt, wolfAt, "list is ordered by name")

	out, _, err = runBarn(t, "", "--db", db, "show", creature.IDFor(wolfText), "--actor")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Wolf CR 1\n")
	assert.Contains(t, out, "Actor: HP 13/13, AC 14")
	assert.Contains(t, out, "  bite +2")
}

func TestImport_ReplacesOnReimport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "barn.db")
	goblin := writeBlock(t, dir, "goblin.txt", goblinText)

	for range 2 {
		_, _, err := runBarn(t, "", "--db", db, "import", goblin)
		require.NoError(t, err)
	}

	out, _, err := runBarn(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Goblin Warrior"))
}

func TestShow_NotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "barn.db")
	_, _, err := runBarn(t, "", "--db", db, "show", "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestList_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "barn.db")
	out, _, err := runBarn(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Equal(t, "No creatures stored.\n", out)
}

func TestInitDB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "barn.db")
	out, _, err := runBarn(t, "", "--db", db, "init-db")
	require.NoError(t, err)
	assert.Equal(t, "Database ready at "+db+"\n", out)
	_, statErr := os.Stat(db)
	assert.NoError(t, statErr)
}

func TestVerboseLogsToStderr(t *testing.T) {
	path := writeBlock(t, t.TempDir(), "goblin.txt", goblinText)
	out, errOut, err := runBarn(t, "", "-v", "parse", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Stat block extracted")
	assert.Contains(t, errOut, "Stat block extracted")
}
