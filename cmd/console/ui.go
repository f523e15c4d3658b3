package main

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/creature-barn/internal/handlers"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/muesli/reflow/wordwrap"
)

// labelWidth fits the longest field name, "Special Abilities and Content".
const labelWidth = 30

// ConsoleUI is the BubbleTea model that runs the stat block viewer.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config         *ConsoleConfig
	client         *http.Client
	creature       *creature.Creature
	actor          *handlers.ActorResponse
	reportViewport viewport.Model
	metaViewport   viewport.Model
	ready          bool
	width          int
	height         int
	err            error
	status         string

	// Creature picker state
	showPicker    bool
	creatures     []storage.Summary
	selected      int
	loadingList   bool
	loadingRecord bool

	showQuitModal bool

	copyText func(string) error
}

type creaturesLoadedMsg struct {
	creatures []storage.Summary
	err       error
}

type creatureLoadedMsg struct {
	creature *creature.Creature
	err      error
}

type actorLoadedMsg struct {
	actor *handlers.ActorResponse
	err   error
}

type copiedMsg struct {
	err error
}

var (
	reportPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingLeft(3)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	reportVp := viewport.New(50, 20)
	reportVp.MouseWheelEnabled = true

	return ConsoleUI{
		config:         cfg,
		client:         client,
		reportViewport: reportVp,
		metaViewport:   viewport.New(20, 20),
		showPicker:     true,
		loadingList:    true,
		copyText:       clipboard.WriteAll,
	}
}

// withCreature opens the viewer on c instead of the picker.
func (m ConsoleUI) withCreature(c *creature.Creature) ConsoleUI {
	m.creature = c
	m.showPicker = false
	m.loadingList = false
	return m
}

// formatReport lays out the non-empty fields of c as wrapped label/value
// rows.
func formatReport(c *creature.Creature, width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(c.Name)) + "\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(width, 1))) + "\n\n")

	valueWidth := max(width-labelWidth-1, 10)
	set := 0
	for _, e := range statblock.Entries(c.Record) {
		if e.Value == "" {
			continue
		}
		set++
		lines := strings.Split(wordwrap.String(e.Value, valueWidth), "\n")
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, e.Field)) + " " + lines[0] + "\n")
		for _, line := range lines[1:] {
			content.WriteString(strings.Repeat(" ", labelWidth+1) + line + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render(fmt.Sprintf("%d of %d fields set", set, len(statblock.Fields))))
	return content.String()
}

func writeMetadata(c *creature.Creature, actor *handlers.ActorResponse) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CREATURE") + "\n\n")

	id := c.ID
	if len(id) > 8 {
		id = id[:8] + "..."
	}
	content.WriteString("ID:\n" + id + "\n\n")
	if c.CR != "" {
		content.WriteString("Challenge:\n" + c.CR + "\n\n")
	}
	if c.Type != "" {
		content.WriteString("Type:\n" + c.Type + "\n\n")
	}

	if actor == nil {
		content.WriteString("Combat:\nNo usable stats\n\n")
	} else {
		content.WriteString(fmt.Sprintf("Combat:\nHP %d/%d\nAC %d\n\n", actor.HP, actor.MaxHP, actor.AC))
		if len(actor.Attacks) > 0 {
			content.WriteString("Attacks:\n")
			for _, name := range slices.Sorted(maps.Keys(actor.Attacks)) {
				content.WriteString(fmt.Sprintf("• %s %+d\n", name, actor.Attacks[name]))
			}
			content.WriteString("\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• c: Copy report\n")
	content.WriteString("• l: Creature list\n")
	content.WriteString("• ↑/↓: Scroll\n")
	content.WriteString("• q: Quit\n")
	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showPicker {
		return m.loadCreatures()
	}
	return m.loadActor(m.creature.ID)
}

func (m *ConsoleUI) layout() {
	reportWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - reportWidth - 6

	m.reportViewport.Width = reportWidth - 2
	m.reportViewport.Height = m.height - 4
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 2
	m.ready = m.width > 0 && m.height > 0
}

// refresh re-renders both panels for the current creature and width.
func (m *ConsoleUI) refresh() {
	if m.creature == nil {
		return
	}
	m.reportViewport.SetContent(formatReport(m.creature, m.reportViewport.Width-3))
	m.metaViewport.SetContent(writeMetadata(m.creature, m.actor))
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showPicker {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()

	case actorLoadedMsg:
		// A creature without usable combat stats still shows its report.
		m.actor = msg.actor
		m.refresh()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Copy failed: " + msg.err.Error())
		} else {
			m.status = statusStyle.Render("Report copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}
		switch msg.String() {
		case "q":
			m.showQuitModal = true
			return m, nil
		case "c":
			return m, m.copyReport()
		case "l":
			m.showPicker = true
			m.loadingList = true
			m.status = ""
			return m, m.loadCreatures()
		}
	}

	var vpCmd, mvCmd tea.Cmd
	m.reportViewport, vpCmd = m.reportViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(vpCmd, mvCmd)
}

func (m ConsoleUI) copyReport() tea.Cmd {
	if m.creature == nil {
		return nil
	}
	report := statblock.Render(m.creature.Record)
	copyText := m.copyText
	return func() tea.Msg {
		return copiedMsg{err: copyText(report)}
	}
}

func (m ConsoleUI) loadCreatures() tea.Cmd {
	return func() tea.Msg {
		list, err := listCreatures(m.client, m.config.APIBaseURL)
		return creaturesLoadedMsg{list, err}
	}
}

func (m ConsoleUI) loadCreature(id string) tea.Cmd {
	return func() tea.Msg {
		c, err := getCreature(m.client, m.config.APIBaseURL, id)
		return creatureLoadedMsg{c, err}
	}
}

func (m ConsoleUI) loadActor(id string) tea.Cmd {
	return func() tea.Msg {
		a, err := getActor(m.client, m.config.APIBaseURL, id)
		return actorLoadedMsg{a, err}
	}
}

func (m ConsoleUI) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case creaturesLoadedMsg:
		m.loadingList = false
		m.err = msg.err
		m.creatures = msg.creatures
		if m.selected >= len(m.creatures) {
			m.selected = 0
		}

	case creatureLoadedMsg:
		m.loadingRecord = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.creature = msg.creature
		m.actor = nil
		m.showPicker = false
		m.layout()
		m.refresh()
		m.reportViewport.GotoTop()
		return m, m.loadActor(m.creature.ID)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.loadingList {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		}
		if m.loadingList || m.loadingRecord || m.err != nil {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
		case tea.KeyDown:
			if m.selected < len(m.creatures)-1 {
				m.selected++
			}
		case tea.KeyEnter:
			if len(m.creatures) > 0 {
				m.loadingRecord = true
				return m, m.loadCreature(m.creatures[m.selected].ID)
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.showPicker {
			m.layout()
			m.refresh()
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		}
		switch msg.String() {
		case "y", "Y":
			return m, tea.Quit
		case "n", "N":
			m.showQuitModal = false
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderPicker() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingList:
		content.WriteString(modalTitleStyle.Render("Loading Creatures..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching stored stat blocks..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.loadingRecord:
		content.WriteString(modalTitleStyle.Render("Opening..."))
	case len(m.creatures) == 0:
		content.WriteString(modalTitleStyle.Render("No Creatures"))
		content.WriteString("\n\n")
		content.WriteString("Import stat blocks with `barn import` or start the console with a file.")
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Ctrl+C to exit"))
	default:
		content.WriteString(modalTitleStyle.Render("Select a Creature"))
		content.WriteString("\n\n")
		for i, c := range m.creatures {
			line := c.Name
			if c.CR != "" && !strings.Contains(line, c.CR) {
				line += " (" + c.CR + ")"
			}
			if i == m.selected {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showPicker {
		return m.renderPicker()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	reportWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - reportWidth - 6

	reportPanel := reportPanelStyle.Width(reportWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.reportViewport.View(),
			"",
			m.status,
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 1).Render(
		m.metaViewport.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, reportPanel, metaPanel)
}
