// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy decides which catalogue operations are exposed. Deny
// rules come from the environment and the configuration file; the two
// sources are unioned, so a tool disabled in either place stays
// disabled.
package policy

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/wazgate/wazgate/pkg/config"
	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/tools"
)

// Environment variables feeding the filter. List-valued variables are
// comma-separated.
const (
	envDisabledTools      = "WAZUH_DISABLED_TOOLS"
	envDisabledCategories = "WAZUH_DISABLED_CATEGORIES"
	envDisabledRegex      = "WAZUH_DISABLED_TOOLS_REGEX"
	envReadOnly           = "WAZUH_READ_ONLY"
)

// safeMethods are the verbs still allowed in read-only mode.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Filter holds the compiled deny rules.
type Filter struct {
	denyNames      map[string]bool
	denyCategories map[string]bool
	denyPatterns   []*regexp.Regexp
	readOnly       bool
}

// FromSettings builds a filter from the file-sourced settings and the
// process environment, typically os.Getenv. A pattern that does not
// compile fails the whole build; a filter that silently matched nothing
// would expose tools the operator meant to disable.
func FromSettings(settings config.FilterSettings, getenv func(string) string) (*Filter, error) {
	f := &Filter{
		denyNames:      splitSet(getenv(envDisabledTools)),
		denyCategories: splitSet(getenv(envDisabledCategories)),
		readOnly:       settings.ReadOnly || truthy(getenv(envReadOnly)),
	}

	for _, name := range settings.DisabledTools {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			f.denyNames[name] = true
		}
	}
	for _, category := range settings.DisabledCategories {
		if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
			f.denyCategories[category] = true
		}
	}

	patterns := splitList(getenv(envDisabledRegex))
	for _, pattern := range settings.DisabledRegex {
		// An empty entry would compile to a match-everything pattern and
		// empty the catalogue.
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	for _, pattern := range patterns {
		// Case-insensitive, unanchored: the pattern matches anywhere in
		// the tool name.
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid tool filter pattern %q: %w", pattern, err)
		}
		f.denyPatterns = append(f.denyPatterns, re)
	}

	return f, nil
}

// ReadOnly reports whether operations with unsafe verbs are excluded.
func (f *Filter) ReadOnly() bool {
	return f.readOnly
}

// Allowed reports whether the operation passes the filter.
func (f *Filter) Allowed(d tools.Descriptor) bool {
	_, excluded := f.excluded(d)
	return !excluded
}

// Apply returns a new registry holding only the operations that pass
// the filter.
func (f *Filter) Apply(reg *tools.Registry) *tools.Registry {
	enabled := tools.NewRegistry()
	for _, d := range reg.All() {
		if rule, isExcluded := f.excluded(d); isExcluded {
			logger.Debugw("tool excluded by policy", "tool", d.Name, "rule", rule)
			continue
		}
		// Names were unique in the source registry, so this cannot fail.
		_ = enabled.Register(d)
	}
	return enabled
}

// excluded reports whether the descriptor is excluded and by which rule.
func (f *Filter) excluded(d tools.Descriptor) (string, bool) {
	if f.denyNames[strings.ToLower(d.Name)] {
		return "name", true
	}
	if f.denyCategories[strings.ToLower(d.Category)] {
		return "category", true
	}
	for _, re := range f.denyPatterns {
		if re.MatchString(d.Name) {
			return "pattern", true
		}
	}
	if f.readOnly && !safeMethods[strings.ToUpper(d.HTTPMethod)] {
		return "read-only", true
	}
	return "", false
}

func splitSet(value string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[strings.ToLower(item)] = true
		}
	}
	return set
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// truthy reports whether value enables a boolean option. Unset or
// unrecognized values leave the option disabled.
func truthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	}
	return false
}
