package finding

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is the catch-all resource type assigned when no prefix
// rule matches a title.
const DefaultCategory = "General"

// CategoryRule maps a case-insensitive title prefix to a resource-type
// category. Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Prefix   string `yaml:"prefix"`
	Category string `yaml:"category"`
}

// CategoryMap classifies finding titles into resource-type categories.
// The zero value is not usable; construct with DefaultCategoryMap or
// LoadCategoryMap.
type CategoryMap struct {
	// Rules are ordered prefix rules. The first rule whose prefix matches
	// the start of the normalized title decides the category.
	Rules []CategoryRule `yaml:"rules"`

	// Default is the catch-all category used when no rule matches.
	Default string `yaml:"default"`
}

// DefaultCategoryMap returns the built-in resource-type table used when no
// rules file is configured.
func DefaultCategoryMap() *CategoryMap {
	return &CategoryMap{
		Rules: []CategoryRule{
			{Prefix: "storage", Category: "Storage"},
			{Prefix: "blob", Category: "Storage"},
			{Prefix: "unprotected storage", Category: "Storage"},
			{Prefix: "network", Category: "Network"},
			{Prefix: "nsg", Category: "Network"},
			{Prefix: "firewall", Category: "Network"},
			{Prefix: "vnet", Category: "Network"},
			{Prefix: "identity", Category: "Identity"},
			{Prefix: "rbac", Category: "Identity"},
			{Prefix: "entra", Category: "Identity"},
			{Prefix: "service principal", Category: "Identity"},
			{Prefix: "vm", Category: "Compute"},
			{Prefix: "compute", Category: "Compute"},
			{Prefix: "aks", Category: "Compute"},
			{Prefix: "function", Category: "Compute"},
			{Prefix: "sql", Category: "Database"},
			{Prefix: "database", Category: "Database"},
			{Prefix: "cosmos", Category: "Database"},
			{Prefix: "key vault", Category: "Key Vault"},
			{Prefix: "keyvault", Category: "Key Vault"},
			{Prefix: "secret", Category: "Key Vault"},
		},
		Default: DefaultCategory,
	}
}

// Classify returns the resource-type category for a finding title.
// Matching is case-insensitive on the start of the trimmed title; the
// configured default is returned when no rule matches.
func (m *CategoryMap) Classify(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, rule := range m.Rules {
		if strings.HasPrefix(normalized, strings.ToLower(rule.Prefix)) {
			return rule.Category
		}
	}
	if m.Default != "" {
		return m.Default
	}
	return DefaultCategory
}

// Validate checks the category map structure for correctness.
func (m *CategoryMap) Validate() error {
	for i, rule := range m.Rules {
		if strings.TrimSpace(rule.Prefix) == "" {
			return fmt.Errorf("rule at index %d has an empty prefix", i)
		}
		if strings.TrimSpace(rule.Category) == "" {
			return fmt.Errorf("rule %q at index %d has an empty category", rule.Prefix, i)
		}
	}
	if strings.TrimSpace(m.Default) == "" {
		return fmt.Errorf("default category is required")
	}
	return nil
}

// LoadCategoryMap reads and parses a category rules file from the given path.
// The file is YAML with an ordered `rules` list and a `default` category.
func LoadCategoryMap(path string) (*CategoryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules file: %w", err)
	}

	var m CategoryMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse category rules file: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("category rules validation failed: %w", err)
	}

	return &m, nil
}
