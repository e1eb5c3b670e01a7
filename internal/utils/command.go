package utils

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// CommandArgs is the data available to command templates.
type CommandArgs struct {
	Name string
	Port int
	Dir  string
}

/**
 * Expand text/template items
 * @param {[]string} items - Templates, e.g. command arguments or KEY=VALUE entries
 * @param {interface{}} data - Template data
 * @returns {[]string} Expanded items, surrounding whitespace trimmed
 * @throws
 * - Template parse or execution errors
 */
func ExpandTemplates(items []string, data interface{}) ([]string, error) {
	expanded := make([]string, 0, len(items))
	for i, item := range items {
		tmpl, err := template.New(fmt.Sprintf("item%d", i)).Option("missingkey=error").Parse(item)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", item, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to execute template '%s': %w", item, err)
		}
		expanded = append(expanded, strings.TrimSpace(buf.String()))
	}
	return expanded, nil
}

// GetCommandLine expands a templated argv and splits it into command and arguments.
func GetCommandLine(argv []string, data interface{}) (string, []string, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return "", nil, fmt.Errorf("empty command line")
	}
	expanded, err := ExpandTemplates(argv, data)
	if err != nil {
		return "", nil, err
	}
	return expanded[0], expanded[1:], nil
}
