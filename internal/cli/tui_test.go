package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

type fakeLookup struct {
	years     []int
	makes     map[int][]string
	models    map[string][]string
	failYears bool
	calls     []string
}

func (f *fakeLookup) Years(ctx context.Context) ([]int, error) {
	f.calls = append(f.calls, "years")
	if f.failYears {
		return nil, vehicles.ErrFetchYears
	}
	return f.years, nil
}

func (f *fakeLookup) Makes(ctx context.Context, year int) ([]string, error) {
	f.calls = append(f.calls, "makes")
	return f.makes[year], nil
}

func (f *fakeLookup) Models(ctx context.Context, year int, makeName string) ([]string, error) {
	f.calls = append(f.calls, "models:"+makeName)
	return f.models[makeName], nil
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		years:  []int{2022, 2021, 2020},
		makes:  map[int][]string{2020: {"Acura", "Toyota"}, 2021: {"Honda"}},
		models: map[string][]string{"Toyota": {"Camry", "Corolla"}, "Acura": {"MDX"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs any resulting fetch command synchronously.
func send(t *testing.T, m PickerModel, msg tea.Msg) (PickerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PickerModel)
	if !ok {
		t.Fatalf("Update() returned %T, want PickerModel", next)
	}
	return pm, cmd
}

func settle(t *testing.T, m PickerModel, cmd tea.Cmd) PickerModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	m, _ = send(t, m, cmd())
	return m
}

func start(t *testing.T, lookup Lookup, prev *vehicles.VehicleState) PickerModel {
	t.Helper()
	m := NewPickerModel(context.Background(), lookup, prev)
	return settle(t, m, m.Init())
}

func TestPickerFullWalk(t *testing.T) {
	lookup := newFakeLookup()
	m := start(t, lookup, nil)

	if m.Loading || len(m.State.Years) != 3 {
		t.Fatalf("years not loaded: %+v", m)
	}

	// 2022 -> 2021 -> 2020
	m, _ = send(t, m, key("down"))
	m, _ = send(t, m, key("j"))
	m, cmd := send(t, m, key("enter"))
	if m.Stage != stageMake || !m.Loading {
		t.Fatalf("after choosing a year: stage=%v loading=%v", m.Stage, m.Loading)
	}
	m = settle(t, m, cmd)
	if *m.State.SelectedYear != 2020 || len(m.State.Makes) != 2 {
		t.Fatalf("makes not loaded for 2020: %+v", m.State)
	}

	m, _ = send(t, m, key("down"))
	m, cmd = send(t, m, key("enter"))
	m = settle(t, m, cmd)
	if *m.State.SelectedMake != "Toyota" || len(m.State.Models) != 2 {
		t.Fatalf("models not loaded for Toyota: %+v", m.State)
	}

	m, cmd = send(t, m, key("enter"))
	if !m.Completed() {
		t.Fatal("picker should be complete")
	}
	if cmd == nil {
		t.Error("completing should quit")
	}
	if got := m.State.Summary(); got != "2020 Toyota Camry" {
		t.Errorf("Summary() = %q", got)
	}
	want := []string{"years", "makes", "models:Toyota"}
	if strings.Join(lookup.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", lookup.calls, want)
	}
}

func TestPickerCursorBounds(t *testing.T) {
	m := start(t, newFakeLookup(), nil)

	m, _ = send(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first entry: %d", m.Cursor)
	}
	for range 10 {
		m, _ = send(t, m, key("down"))
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (last entry)", m.Cursor)
	}
}

func TestPickerScrolls(t *testing.T) {
	lookup := &fakeLookup{}
	for y := 2030; y > 1990; y-- {
		lookup.years = append(lookup.years, y)
	}
	m := start(t, lookup, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 13})
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}
	for range 7 {
		m, _ = send(t, m, key("down"))
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}
	if !strings.Contains(m.View(), "[8/40]") {
		t.Errorf("View() should show position, got:\n%s", m.View())
	}
}

func TestPickerBackClearsDependents(t *testing.T) {
	m := start(t, newFakeLookup(), nil)
	m, _ = send(t, m, key("down"))
	m, _ = send(t, m, key("down"))
	m, cmd := send(t, m, key("enter"))
	m = settle(t, m, cmd)
	m, cmd = send(t, m, key("down"))
	m, cmd = send(t, m, key("enter"))
	m = settle(t, m, cmd)

	m, _ = send(t, m, key("esc"))
	if m.Stage != stageMake || m.State.SelectedMake != nil || m.State.Models != nil {
		t.Fatalf("back from model stage: %+v", m.State)
	}
	if m.Cursor != 1 {
		t.Errorf("cursor should return to Toyota, got %d", m.Cursor)
	}

	m, _ = send(t, m, key("esc"))
	if m.Stage != stageYear || m.State.SelectedYear != nil || m.State.Makes != nil {
		t.Fatalf("back from make stage: %+v", m.State)
	}
	if m.Cursor != 2 {
		t.Errorf("cursor should return to 2020, got %d", m.Cursor)
	}

	_, cmd = send(t, m, key("esc"))
	if cmd == nil {
		t.Error("esc on the first stage should quit")
	}
}

func TestPickerIgnoresStaleResponses(t *testing.T) {
	m := start(t, newFakeLookup(), nil)
	m, _ = send(t, m, key("down"))
	m, _ = send(t, m, key("enter")) // 2021, fetch not yet delivered

	m, _ = send(t, m, makesLoadedMsg{year: 2020, makes: []string{"Stale"}})
	if m.State.Makes != nil || !m.Loading {
		t.Errorf("stale makes applied: %+v", m.State.Makes)
	}

	m, _ = send(t, m, makesLoadedMsg{year: 2021, makes: []string{"Honda"}})
	if len(m.State.Makes) != 1 || m.Loading {
		t.Errorf("current makes not applied: %+v", m.State.Makes)
	}

	m, _ = send(t, m, yearsLoadedMsg{years: []int{1999}})
	if len(m.State.Years) != 3 {
		t.Error("years response outside the year stage should be ignored")
	}
}

func TestPickerErrorAndRetry(t *testing.T) {
	lookup := newFakeLookup()
	lookup.failYears = true
	m := start(t, lookup, nil)

	if m.Err == nil || m.Err.Code != "FETCH_FAILED" || m.Err.Message != "Failed to fetch years" {
		t.Fatalf("Err = %+v, want FETCH_FAILED", m.Err)
	}
	if !strings.Contains(m.View(), "Failed to fetch years") {
		t.Error("View() should show the error message")
	}

	m, cmd := send(t, m, key("enter"))
	if cmd != nil || m.Stage != stageYear {
		t.Error("enter should do nothing while an error is shown")
	}

	lookup.failYears = false
	m, cmd = send(t, m, key("r"))
	if !m.Loading || cmd == nil {
		t.Fatal("r should start a retry")
	}
	m = settle(t, m, cmd)
	if m.Err != nil || len(m.State.Years) != 3 {
		t.Errorf("retry did not recover: err=%v years=%v", m.Err, m.State.Years)
	}
}

func TestPickerEmptyList(t *testing.T) {
	m := start(t, newFakeLookup(), nil)
	m, cmd := send(t, m, key("enter")) // 2022 has no makes
	m = settle(t, m, cmd)

	if !strings.Contains(m.View(), "No makes available") {
		t.Errorf("View() = %q", m.View())
	}
	m, cmd = send(t, m, key("enter"))
	if cmd != nil || m.Stage != stageMake {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestPickerPreselectsPrevious(t *testing.T) {
	year, mk := 2020, "Toyota"
	prev := &vehicles.VehicleState{SelectedYear: &year, SelectedMake: &mk}

	m := start(t, newFakeLookup(), prev)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (2020)", m.Cursor)
	}
	m, cmd := send(t, m, key("enter"))
	m = settle(t, m, cmd)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (Toyota)", m.Cursor)
	}
}

func TestPickerQuit(t *testing.T) {
	m := start(t, newFakeLookup(), nil)
	m, cmd := send(t, m, key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Completed() {
		t.Error("quitting early should not complete")
	}
}
