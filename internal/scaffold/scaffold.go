package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

const (
	agentTemplatePath    = "templates/AGENT.md"
	guidanceTemplatePath = "templates/integration-prompt.md.tmpl"
)

// Section is one top-level heading AGENT.md is expected to contain.
type Section struct {
	Title   string
	Summary string
}

// Sections lists the AGENT.md structure in document order.
var Sections = []Section{
	{"Project Overview", "Description, purpose, and key characteristics"},
	{"Development Workflow", "Git workflow, branching, commit standards"},
	{"Build Commands", "Dependencies, setup, testing, linting commands"},
	{"Code Style", "Style guidelines and conventions"},
	{"Architecture", "Key components, structure, environment variables"},
	{"Testing", "Testing strategies, local testing procedures"},
	{"Security", "Security considerations and practices"},
	{"Documentation", "Documentation standards and key files"},
}

// Source is one backed-up file embedded in the integration prompt.
type Source struct {
	Path    string // path relative to the project root, as the tool saw it
	Content string // verbatim file content
}

// GuidanceData holds the template variables for the integration prompt.
type GuidanceData struct {
	Sections []Section
	Sources  []Source
}

var (
	guidanceOnce sync.Once
	guidanceTmpl *template.Template
	guidanceErr  error
)

// AgentTemplate returns the starter AGENT.md content.
func AgentTemplate() ([]byte, error) {
	data, err := templateFS.ReadFile(agentTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading AGENT.md template: %w", err)
	}
	return data, nil
}

func loadGuidanceTemplate() (*template.Template, error) {
	guidanceOnce.Do(func() {
		raw, err := templateFS.ReadFile(guidanceTemplatePath)
		if err != nil {
			guidanceErr = fmt.Errorf("reading integration prompt template: %w", err)
			return
		}
		funcs := template.FuncMap{"inc": func(i int) int { return i + 1 }}
		guidanceTmpl, guidanceErr = template.New("integration-prompt").Funcs(funcs).Parse(string(raw))
		if guidanceErr != nil {
			guidanceErr = fmt.Errorf("parsing integration prompt template: %w", guidanceErr)
		}
	})
	return guidanceTmpl, guidanceErr
}

// RenderGuidance renders the integration prompt for the given sources.
// Sources are embedded as-is; their content is never interpreted.
func RenderGuidance(sources []Source) ([]byte, error) {
	tmpl, err := loadGuidanceTemplate()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := GuidanceData{Sections: Sections, Sources: sources}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering integration prompt: %w", err)
	}
	return buf.Bytes(), nil
}
