package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/arcks/internal/popup"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

var (
	ErrNoPage  = errors.New("script has no page")
	ErrNoSteps = errors.New("script has no steps")
)

// Script is a scripted hover session.
type Script struct {
	Page      string            `yaml:"page"`
	Base      string            `yaml:"base"`
	Viewport  popup.Viewport    `yaml:"viewport"`
	Settings  *ScriptSettings   `yaml:"settings"`
	Summaries map[string]Canned `yaml:"summaries"`
	Steps     []Step            `yaml:"steps"`
}

// ScriptSettings overrides the base settings of a run. Unset fields keep
// their base values.
type ScriptSettings struct {
	HoverDelay int   `yaml:"hoverDelay"`
	Enabled    *bool `yaml:"enabled"`
}

// Canned is a scripted summary answer.
type Canned struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Error   string `yaml:"error"`
}

// Result converts the answer.
func (c Canned) Result() summary.Result {
	if c.Error != "" {
		return summary.Failure(c.Error)
	}
	return summary.Success(c.Title, c.Summary)
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Enter      string `yaml:"enter"`
	Leave      string `yaml:"leave"`
	EnterPopup bool   `yaml:"enterPopup"`
	LeavePopup bool   `yaml:"leavePopup"`
	Wait       string `yaml:"wait"`
}

// String describes the step for output.
func (s Step) String() string {
	switch {
	case s.Enter != "":
		return "enter " + s.Enter
	case s.Leave != "":
		return "leave " + s.Leave
	case s.EnterPopup:
		return "enter popup"
	case s.LeavePopup:
		return "leave popup"
	case s.Wait != "":
		return "wait " + s.Wait
	default:
		return "noop"
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Enter != "", s.Leave != "", s.EnterPopup, s.LeavePopup, s.Wait != ""} {
		if set {
			n++
		}
	}
	return n
}

// Load reads a script file. A relative page path is resolved against the
// script's directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !filepath.IsAbs(s.Page) {
		s.Page = filepath.Join(filepath.Dir(path), s.Page)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the script.
func (s *Script) Validate() error {
	if s.Page == "" {
		return ErrNoPage
	}
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i, step := range s.Steps {
		if step.actions() != 1 {
			return fmt.Errorf("step %d: want exactly one action, got %d", i+1, step.actions())
		}
		if step.Wait != "" {
			d, err := time.ParseDuration(step.Wait)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			if d < 0 {
				return fmt.Errorf("step %d: negative wait %s", i+1, step.Wait)
			}
		}
	}
	if _, err := s.ResolvedSettings(); err != nil {
		return err
	}
	return nil
}

// ResolvedSettings merges the script's overrides into the defaults.
func (s *Script) ResolvedSettings() (settings.Settings, error) {
	return s.ResolvedSettingsFrom(settings.Defaults())
}

// ResolvedSettingsFrom merges the script's overrides into base.
func (s *Script) ResolvedSettingsFrom(base settings.Settings) (settings.Settings, error) {
	out := base
	if s.Settings != nil {
		if s.Settings.HoverDelay != 0 {
			out.HoverDelay = s.Settings.HoverDelay
		}
		if s.Settings.Enabled != nil {
			out.Enabled = *s.Settings.Enabled
		}
	}
	if err := out.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return out, nil
}

// ResolvedViewport returns the script viewport or a 1280x800 default.
func (s *Script) ResolvedViewport() popup.Viewport {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return popup.Viewport{Width: 1280, Height: 800}
	}
	return s.Viewport
}
