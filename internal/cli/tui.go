package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// Lookup is the set of vehicle lookups the CLI uses.
// *vehicles.Client satisfies it.
type Lookup interface {
	Years(ctx context.Context) ([]int, error)
	Makes(ctx context.Context, year int) ([]string, error)
	Models(ctx context.Context, year int, makeName string) ([]string, error)
}

// =============================================================================
// PickerModel - Interactive year/make/model selection
// =============================================================================

type pickerStage int

const (
	stageYear pickerStage = iota
	stageMake
	stageModel
	stageDone
)

type yearsLoadedMsg struct {
	years []int
	err   error
}

type makesLoadedMsg struct {
	year  int
	makes []string
	err   error
}

type modelsLoadedMsg struct {
	year     int
	makeName string
	models   []string
	err      error
}

// PickerModel is the bubbletea model walking year → make → model.
//
// Each step fetches its list through the Lookup and records the choice in
// State using the VehicleState selection methods, so picking a new year
// clears the make and model below it. Responses that arrive after the user
// moved to a different year or make are ignored.
type PickerModel struct {
	State  vehicles.VehicleState
	Stage  pickerStage
	Cursor int
	Offset int
	Height int

	Loading bool
	Err     *vehicles.APIError

	ctx    context.Context
	lookup Lookup
	// previous selection, used to place the cursor
	prev *vehicles.VehicleState
}

// NewPickerModel creates a picker. prev may be nil; when set, the cursor
// starts on the previously chosen entry of each list.
func NewPickerModel(ctx context.Context, lookup Lookup, prev *vehicles.VehicleState) PickerModel {
	return PickerModel{
		Stage:   stageYear,
		Height:  15,
		Loading: true,
		ctx:     ctx,
		lookup:  lookup,
		prev:    prev,
	}
}

// Completed reports whether year, make and model were all picked.
func (m PickerModel) Completed() bool {
	return m.Stage == stageDone && m.State.Complete()
}

func (m PickerModel) Init() tea.Cmd {
	return m.fetchYears()
}

func (m PickerModel) fetchYears() tea.Cmd {
	ctx, lookup := m.ctx, m.lookup
	return func() tea.Msg {
		years, err := lookup.Years(ctx)
		return yearsLoadedMsg{years: years, err: err}
	}
}

func (m PickerModel) fetchMakes(year int) tea.Cmd {
	ctx, lookup := m.ctx, m.lookup
	return func() tea.Msg {
		makes, err := lookup.Makes(ctx, year)
		return makesLoadedMsg{year: year, makes: makes, err: err}
	}
}

func (m PickerModel) fetchModels(year int, makeName string) tea.Cmd {
	ctx, lookup := m.ctx, m.lookup
	return func() tea.Msg {
		models, err := lookup.Models(ctx, year, makeName)
		return modelsLoadedMsg{year: year, makeName: makeName, models: models, err: err}
	}
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case yearsLoadedMsg:
		if m.Stage != stageYear {
			return m, nil
		}
		m.Loading = false
		m.Err = vehicles.ToAPIError(msg.err)
		if msg.err == nil {
			m.State.Years = msg.years
			m.placeCursor(indexOf(msg.years, m.previous().SelectedYear))
		}

	case makesLoadedMsg:
		if m.Stage != stageMake || !sameYear(m.State.SelectedYear, msg.year) {
			return m, nil
		}
		m.Loading = false
		m.Err = vehicles.ToAPIError(msg.err)
		if msg.err == nil {
			m.State.Makes = msg.makes
			m.placeCursor(indexOf(msg.makes, m.previous().SelectedMake))
		}

	case modelsLoadedMsg:
		if m.Stage != stageModel || !sameYear(m.State.SelectedYear, msg.year) ||
			m.State.SelectedMake == nil || *m.State.SelectedMake != msg.makeName {
			return m, nil
		}
		m.Loading = false
		m.Err = vehicles.ToAPIError(msg.err)
		if msg.err == nil {
			m.State.Models = msg.models
			m.placeCursor(indexOf(msg.models, m.previous().SelectedModel))
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		return m.back()
	case "r":
		if m.Err != nil {
			return m.retry()
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.items())-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if m.Loading || m.Err != nil || len(m.items()) == 0 {
			return m, nil
		}
		return m.choose()
	}
	return m, nil
}

// choose records the entry under the cursor and moves to the next stage.
func (m PickerModel) choose() (tea.Model, tea.Cmd) {
	switch m.Stage {
	case stageYear:
		year := m.State.Years[m.Cursor]
		m.State.SelectYear(year)
		m.enter(stageMake)
		return m, m.fetchMakes(year)
	case stageMake:
		name := m.State.Makes[m.Cursor]
		m.State.SelectMake(name)
		m.enter(stageModel)
		return m, m.fetchModels(*m.State.SelectedYear, name)
	case stageModel:
		m.State.SelectModel(m.State.Models[m.Cursor])
		m.Stage = stageDone
		return m, tea.Quit
	}
	return m, nil
}

// back returns to the previous stage, or quits from the first one.
func (m PickerModel) back() (tea.Model, tea.Cmd) {
	switch m.Stage {
	case stageMake:
		i := indexOf(m.State.Years, m.State.SelectedYear)
		m.State.SelectedYear = nil
		m.State.Makes = nil
		m.enter(stageYear)
		m.Loading = false
		m.placeCursor(i)
	case stageModel:
		i := indexOf(m.State.Makes, m.State.SelectedMake)
		m.State.SelectedMake = nil
		m.State.Models = nil
		m.enter(stageMake)
		m.Loading = false
		m.placeCursor(i)
	default:
		return m, tea.Quit
	}
	return m, nil
}

func (m PickerModel) retry() (tea.Model, tea.Cmd) {
	m.Err = nil
	m.Loading = true
	switch m.Stage {
	case stageYear:
		return m, m.fetchYears()
	case stageMake:
		return m, m.fetchMakes(*m.State.SelectedYear)
	case stageModel:
		return m, m.fetchModels(*m.State.SelectedYear, *m.State.SelectedMake)
	}
	return m, nil
}

func (m *PickerModel) enter(stage pickerStage) {
	m.Stage = stage
	m.Loading = true
	m.Err = nil
	m.Cursor = 0
	m.Offset = 0
}

func (m *PickerModel) placeCursor(i int) {
	if i < 0 {
		i = 0
	}
	m.Cursor = i
	m.Offset = 0
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// items returns the current stage's list as display strings.
func (m PickerModel) items() []string {
	switch m.Stage {
	case stageYear:
		return yearStrings(m.State.Years)
	case stageMake:
		return m.State.Makes
	case stageModel:
		return m.State.Models
	}
	return nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc back  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.Stage == stageDone:
		b.WriteString(StyleSuccess.Render(iconSuccess + " " + m.State.Summary()))
		b.WriteString("\n")
		return b.String()
	case m.Err != nil:
		b.WriteString(listErrorStyle.Render(iconError + " " + m.Err.Message))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  press r to retry"))
		b.WriteString("\n")
		return b.String()
	case m.Loading:
		b.WriteString(listDimStyle.Render("Loading " + m.noun() + "..."))
		b.WriteString("\n")
		return b.String()
	}

	items := m.items()
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("No " + m.noun() + " available"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(items))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + items[i]))
		} else if items[i] == "" {
			b.WriteString("  " + styleUnset.Render("(unnamed)"))
		} else {
			b.WriteString(listNormalStyle.Render("  " + items[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(items))))
	return b.String()
}

func (m PickerModel) title() string {
	switch m.Stage {
	case stageMake:
		return "Select Make  " + listDimStyle.Render(m.State.Summary())
	case stageModel:
		return "Select Model  " + listDimStyle.Render(m.State.Summary())
	case stageDone:
		return "Vehicle Selected"
	default:
		return "Select Year"
	}
}

func (m PickerModel) noun() string {
	switch m.Stage {
	case stageMake:
		return vehicles.ResourceMakes
	case stageModel:
		return vehicles.ResourceModels
	default:
		return vehicles.ResourceYears
	}
}

// =============================================================================
// Helpers
// =============================================================================

func sameYear(selected *int, year int) bool {
	return selected != nil && *selected == year
}

func indexOf[T comparable](list []T, want *T) int {
	if want == nil {
		return -1
	}
	return slices.Index(list, *want)
}

// previous returns the earlier selection, or an empty state.
func (m PickerModel) previous() vehicles.VehicleState {
	if m.prev == nil {
		return vehicles.VehicleState{}
	}
	return *m.prev
}
