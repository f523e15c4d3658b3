package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/internal/handlers"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
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
Melee dogslicer +2 (1d6), bite -1 (1d4)
STATISTICS
Str 11, Dex 14, Con 13, Int 10, Wis 9, Cha 6
Base Atk +1; CMB +0; CMD 12
`

// newTestAPI serves the real handlers over an in-memory store.
func newTestAPI(t *testing.T) (*httptest.Server, *ConsoleConfig) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMockStorage()
	processor := batch.NewProcessor(1, batch.WithLogger(log))

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, nil, log))
	creatures := handlers.NewCreatureHandler(store, processor, 1<<20, log)
	mux.Handle("/v1/creatures", creatures)
	mux.Handle("/v1/creatures/", creatures)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &ConsoleConfig{APIBaseURL: srv.URL}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAPIClient(t *testing.T) {
	srv, cfg := newTestAPI(t)
	client := srv.Client()

	assert.True(t, testConnection(client, cfg.APIBaseURL))

	c, err := createCreature(client, cfg.APIBaseURL, goblinText)
	require.NoError(t, err)
	assert.Equal(t, "Goblin Warrior CR 1/2", c.Name)

	list, err := listCreatures(client, cfg.APIBaseURL)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	got, err := getCreature(client, cfg.APIBaseURL, c.ID)
	require.NoError(t, err)
	assert.Equal(t, statblock.Render(c.Record), statblock.Render(got.Record))

	actor, err := getActor(client, cfg.APIBaseURL, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, actor.MaxHP)
	assert.Equal(t, 16, actor.AC)
	assert.Equal(t, map[string]int{"dogslicer": 2, "bite": -1}, actor.Attacks)
}

func TestAPIClient_Errors(t *testing.T) {
	srv, cfg := newTestAPI(t)
	client := srv.Client()

	_, err := getCreature(client, cfg.APIBaseURL, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Plain-text error bodies are reported with their status.
	_, err = createCreature(client, cfg.APIBaseURL, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")

	assert.False(t, testConnection(client, "http://127.0.0.1:1"))
}

func TestConsoleUI_PickAndView(t *testing.T) {
	srv, cfg := newTestAPI(t)
	client := srv.Client()
	_, err := createCreature(client, cfg.APIBaseURL, goblinText)
	require.NoError(t, err)

	var m tea.Model = NewConsoleUI(cfg, client)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = m.Update(m.(ConsoleUI).loadCreatures()())
	ui := m.(ConsoleUI)
	require.False(t, ui.loadingList)
	require.Len(t, ui.creatures, 1)
	assert.Contains(t, ui.View(), "Goblin Warrior")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.(ConsoleUI).loadingRecord)

	m, cmd = m.Update(cmd())
	ui = m.(ConsoleUI)
	require.False(t, ui.showPicker)
	require.NotNil(t, ui.creature)
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	ui = m.(ConsoleUI)
	require.NotNil(t, ui.actor)
	assert.Equal(t, 6, ui.actor.HP)
	assert.True(t, ui.ready)
}

func TestConsoleUI_Copy(t *testing.T) {
	srv, cfg := newTestAPI(t)
	c, err := createCreature(srv.Client(), cfg.APIBaseURL, goblinText)
	require.NoError(t, err)

	var copied string
	ui := NewConsoleUI(cfg, srv.Client()).withCreature(c)
	ui.copyText = func(s string) error {
		copied = s
		return nil
	}

	var m tea.Model = ui
	m, cmd := m.Update(keyRune('c'))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, statblock.Render(c.Record), copied)
	assert.Contains(t, m.(ConsoleUI).status, "copied")

	ui = m.(ConsoleUI)
	ui.copyText = func(string) error { return errors.New("no clipboard") }
	m, cmd = ui.Update(keyRune('c'))
	m, _ = m.Update(cmd())
	assert.Contains(t, m.(ConsoleUI).status, "no clipboard")
}

func TestConsoleUI_QuitModal(t *testing.T) {
	ui := NewConsoleUI(&ConsoleConfig{}, http.DefaultClient)
	ui.loadingList = false

	m, _ := ui.Update(keyRune('x'))
	assert.False(t, m.(ConsoleUI).showQuitModal, "picker ignores letters")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.(ConsoleUI).showQuitModal)

	m, _ = m.Update(keyRune('n'))
	assert.False(t, m.(ConsoleUI).showQuitModal)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(keyRune('y'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFormatReport(t *testing.T) {
	srv, cfg := newTestAPI(t)
	c, err := createCreature(srv.Client(), cfg.APIBaseURL, goblinText)
	require.NoError(t, err)

	out := formatReport(c, 100)
	assert.Contains(t, out, "GOBLIN WARRIOR CR 1/2")
	assert.Contains(t, out, "16, touch 13, flat-footed 14")
	assert.NotContains(t, out, "Treasure", "empty fields are hidden")
	assert.Contains(t, out, "of 48 fields set")

	// AC does not fit in the value column at this width.
	for _, line := range strings.Split(formatReport(c, 50), "\n") {
		if strings.HasPrefix(line, strings.Repeat(" ", labelWidth+1)) {
			return
		}
	}
	t.Error("expected a wrapped continuation line at width 50")
}

func TestWriteMetadata(t *testing.T) {
	srv, cfg := newTestAPI(t)
	c, err := createCreature(srv.Client(), cfg.APIBaseURL, goblinText)
	require.NoError(t, err)

	out := writeMetadata(c, nil)
	assert.Contains(t, out, "No usable stats")

	out = writeMetadata(c, &handlers.ActorResponse{HP: 6, MaxHP: 6, AC: 16, Attacks: map[string]int{"bite": -1, "dogslicer": 2}})
	assert.Contains(t, out, "HP 6/6")
	assert.Less(t, strings.Index(out, "bite -1"), strings.Index(out, "dogslicer +2"))
}
