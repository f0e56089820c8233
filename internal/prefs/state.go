package prefs

import "fmt"

// Panel names, also used as cookie names.
const (
	PanelModules = "modules"
	PanelJumper  = "jumper"
)

// State holds whether each collapsible panel starts expanded.
type State struct {
	ModulesOpen bool `json:"modules_open"`
	JumperOpen  bool `json:"jumper_open"`
}

// ToggleModules returns s with the modules panel flipped.
func (s State) ToggleModules() State {
	s.ModulesOpen = !s.ModulesOpen
	return s
}

// ToggleJumper returns s with the jump-to panel flipped.
func (s State) ToggleJumper() State {
	s.JumperOpen = !s.JumperOpen
	return s
}

// Toggle flips the named panel.
func (s State) Toggle(panel string) (State, error) {
	switch panel {
	case PanelModules:
		return s.ToggleModules(), nil
	case PanelJumper:
		return s.ToggleJumper(), nil
	}
	return s, fmt.Errorf("unknown panel %q", panel)
}
