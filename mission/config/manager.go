package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/rover-mission/mission/service"
)

// Scenario file formats, keyed by extension
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

var extensions = map[string]string{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".hcl":  FormatHCL,
}

// Lookup order when a scenario is requested without extension
var lookupOrder = []string{".json", ".yaml", ".yml", ".hcl"}

// Manager handles scenario loading and caching
type Manager struct {
	configDir       string
	defaultScenario *service.Scenario
	scenarios       map[string]*service.Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		scenarios: make(map[string]*service.Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// LoadScenario loads a scenario by identifier. An explicit extension picks
// the file; otherwise the first existing file in lookup order is used.
func (m *Manager) LoadScenario(name string) (*service.Scenario, error) {
	id := scenarioID(name)

	m.mu.RLock()
	if scenario, exists := m.scenarios[id]; exists {
		m.mu.RUnlock()
		return scenario, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if scenario, exists := m.scenarios[id]; exists {
		return scenario, nil
	}

	path, format, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	scenario, err := readScenario(path, format)
	if err != nil {
		return nil, err
	}

	if err := ValidateScenario(scenario); err != nil {
		return nil, err
	}

	m.scenarios[id] = scenario
	return scenario, nil
}

// ListScenarios returns information about all valid scenarios, sorted by
// identifier. Invalid files are skipped.
func (m *Manager) ListScenarios() ([]*service.ScenarioInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*service.ScenarioInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := extensions[filepath.Ext(entry.Name())]
		if !ok {
			continue
		}

		id := scenarioID(entry.Name())
		if seen[id] {
			continue
		}

		scenario, err := m.LoadScenario(entry.Name())
		if err != nil {
			continue
		}
		seen[id] = true

		infos = append(infos, &service.ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  id,
			Name:        scenario.Name,
			Description: scenario.Description,
			Size:        scenario.Size,
			Obstacles:   len(scenario.Obstacles),
			Format:      format,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ScenarioID < infos[j].ScenarioID
	})

	return infos, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *service.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	scenario, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = scenario
	return nil
}

// RefreshCache drops every cached scenario and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*service.Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// SaveScenario validates a scenario and writes it as JSON
func (m *Manager) SaveScenario(name string, scenario *service.Scenario) error {
	if err := ValidateScenario(scenario); err != nil {
		return err
	}

	if !validSaveName(name) {
		return fmt.Errorf("%w: invalid scenario id %q", service.ErrInvalidScenario, name)
	}
	id := scenarioID(name)

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	path := filepath.Join(m.configDir, id+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[id] = scenario
	m.mu.Unlock()

	return nil
}

// Source returns the text source of a stored scenario
func (m *Manager) Source(name, commands string) (*service.TextSource, error) {
	scenario, err := m.LoadScenario(name)
	if err != nil {
		return nil, err
	}
	return scenario.TextSource(commands), nil
}

// loadDefaultScenario prefers default.*, then the first listed scenario,
// then a built-in minimal scenario.
func (m *Manager) loadDefaultScenario() error {
	scenario, err := m.LoadScenario("default")
	if err != nil {
		infos, listErr := m.ListScenarios()
		if listErr != nil || len(infos) == 0 {
			m.setDefault(minimalScenario())
			return nil
		}

		scenario, err = m.LoadScenario(infos[0].Filename)
		if err != nil {
			m.setDefault(minimalScenario())
			return nil
		}
	}

	m.setDefault(scenario)
	return nil
}

func (m *Manager) setDefault(scenario *service.Scenario) {
	m.mu.Lock()
	m.defaultScenario = scenario
	m.mu.Unlock()
}

// resolve maps a scenario name to a file path and format
func (m *Manager) resolve(name string) (string, string, error) {
	if format, ok := extensions[filepath.Ext(name)]; ok {
		path := filepath.Join(m.configDir, filepath.Base(name))
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", "", service.ErrScenarioNotFound
			}
			return "", "", fmt.Errorf("failed to stat scenario file: %w", err)
		}
		return path, format, nil
	}

	for _, ext := range lookupOrder {
		path := filepath.Join(m.configDir, filepath.Base(name)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, extensions[ext], nil
		}
	}
	return "", "", service.ErrScenarioNotFound
}

// readScenario decodes a scenario file in the given format
func readScenario(path, format string) (*service.Scenario, error) {
	var scenario service.Scenario

	switch format {
	case FormatHCL:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", service.ErrInvalidScenario, diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &scenario); diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", service.ErrInvalidScenario, diags.Error())
		}
		return &scenario, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &scenario)
	default:
		err = json.Unmarshal(data, &scenario)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", service.ErrInvalidScenario, filepath.Base(path), err)
	}

	return &scenario, nil
}

// scenarioID strips directory and known extension from a name
// validSaveName accepts a bare file name, optionally with a known scenario
// extension. Separators and dots in the identifier are rejected.
func validSaveName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	if filepath.Base(name) != name {
		return false
	}
	id := scenarioID(name)
	return id != "" && !strings.Contains(id, ".")
}

func scenarioID(name string) string {
	base := filepath.Base(name)
	if _, ok := extensions[filepath.Ext(base)]; ok {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// minimalScenario is used when the config directory holds no valid scenario
func minimalScenario() *service.Scenario {
	return &service.Scenario{
		Name:        "default",
		Description: "Default minimal scenario",
		Size:        "5x4",
		Obstacles:   []string{"2,0", "0,3", "3,2"},
		Position:    "0,0",
		Heading:     "N",
	}
}

// IsScenarioFile reports whether name has a scenario file extension
func IsScenarioFile(name string) bool {
	_, ok := extensions[filepath.Ext(name)]
	return ok
}

// ReadScenarioFile decodes a scenario file without validating it. The format
// follows the extension.
func ReadScenarioFile(path string) (*service.Scenario, string, error) {
	format, ok := extensions[filepath.Ext(path)]
	if !ok {
		return nil, "", fmt.Errorf("%w: unsupported file type %s", service.ErrInvalidScenario, filepath.Ext(path))
	}
	scenario, err := readScenario(path, format)
	if err != nil {
		return nil, format, err
	}
	return scenario, format, nil
}
