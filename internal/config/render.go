package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# perktable configuration (TOML)\n\n")

	top, sections, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		b.WriteString(strings.Join(optionLines(o.Key, o.Default, o.Comment), "\n"))
		b.WriteString("\n")
	}
	for _, section := range order {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			b.WriteString(strings.Join(optionLines(o.Key, o.Default, o.Comment), "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// UpdateTOML merges missing defaults into an existing TOML string and
// comments out keys that are no longer part of the schema.
func UpdateTOML(existing string) (string, bool) {
	lines := strings.Split(existing, "\n")
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	section := ""
	depth := 0
	out := make([]string, 0, len(lines))
	changed := false

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if depth > 0 {
			// inside a multi-line array
			depth += strings.Count(trim, "[") - strings.Count(trim, "]")
			out = append(out, line)
			continue
		}
		if trim == "" || strings.HasPrefix(trim, "#") {
			out = append(out, line)
			continue
		}
		if isSectionHeader(trim) {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, value, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		depth = strings.Count(value, "[") - strings.Count(value, "]")
		full := key
		if section != "" {
			full = section + "." + key
		}
		seen[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema")
			out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	top, sections, order := groupOptions(missing)
	if len(top) > 0 {
		// top-level keys must precede the first table
		at := firstSectionLine(out)
		added := []string{"# Added by config update"}
		for _, o := range top {
			added = append(added, optionLines(o.Key, o.Default, o.Comment)...)
		}
		out = append(out[:at], append(added, out[at:]...)...)
	}
	for _, sec := range order {
		var added []string
		for _, o := range sections[sec] {
			added = append(added, optionLines(o.Key, o.Default, o.Comment)...)
		}
		if end, ok := sectionEnd(out, sec); ok {
			out = append(out[:end], append(added, out[end:]...)...)
			continue
		}
		out = append(out, "", "# Added by config update", "["+sec+"]")
		out = append(out, added...)
	}
	return strings.Join(out, "\n"), true
}

// sectionEnd returns the line index just past the body of [sec].
func sectionEnd(lines []string, sec string) (int, bool) {
	start := -1
	for i, l := range lines {
		trim := strings.TrimSpace(l)
		if !isSectionHeader(trim) {
			continue
		}
		if start >= 0 {
			return i, true
		}
		if strings.TrimSpace(trim[1:len(trim)-1]) == sec {
			start = i
		}
	}
	return len(lines), start >= 0
}

// groupOptions splits dotted keys into TOML sections, keeping first-seen order.
func groupOptions(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	top := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	order := make([]string, 0)
	for _, o := range opts {
		section, key, dotted := strings.Cut(o.Key, ".")
		if !dotted {
			top = append(top, o)
			continue
		}
		if _, ok := sections[section]; !ok {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func firstSectionLine(lines []string) int {
	for i, l := range lines {
		if isSectionHeader(strings.TrimSpace(l)) {
			return i
		}
	}
	return len(lines)
}

func parseTOMLKey(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", "", false
	}
	return key, value, true
}

func isSectionHeader(trim string) bool {
	return strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") && !strings.Contains(trim, "=")
}

// optionLines renders one option followed by a blank line. Lists are written
// one item per line so column layouts stay readable.
func optionLines(key string, value any, comment string) []string {
	var lines []string
	if comment != "" {
		lines = append(lines, "# "+comment)
	}
	switch v := value.(type) {
	case string:
		lines = append(lines, fmt.Sprintf("%s = %s", key, strconv.Quote(v)))
	case bool, int, int64, float64:
		lines = append(lines, fmt.Sprintf("%s = %v", key, v))
	case []string:
		if len(v) == 0 {
			lines = append(lines, key+" = []")
			break
		}
		lines = append(lines, key+" = [")
		for _, s := range v {
			lines = append(lines, "  "+strconv.Quote(s)+",")
		}
		lines = append(lines, "]")
	}
	return append(lines, "")
}
