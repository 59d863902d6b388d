package autorfp

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ExportSection is one heading with its body text.
type ExportSection struct {
	Title string
	Body  string
}

type ExportDocument struct {
	Title    string
	Subtitle string
	Sections []ExportSection
}

// FlattenValue renders a decoded JSON value as readable text. Objects become
// "Label: value" lines and arrays become bullet lines.
func FlattenValue(v any) string {
	var sb strings.Builder
	flatten(&sb, v, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func flatten(sb *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)

	switch val := v.(type) {
	case nil:
	case string:
		sb.WriteString(indent + val + "\n")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			switch child := val[k].(type) {
			case map[string]any, []any:
				sb.WriteString(indent + HumanizeKey(k) + ":\n")
				flatten(sb, child, depth+1)
			default:
				sb.WriteString(fmt.Sprintf("%s%s: %s\n", indent, HumanizeKey(k), scalar(child)))
			}
		}
	case []any:
		for _, item := range val {
			switch child := item.(type) {
			case map[string]any:
				sb.WriteString(indent + "-\n")
				flatten(sb, child, depth+1)
			default:
				sb.WriteString(indent + "- " + scalar(child) + "\n")
			}
		}
	default:
		sb.WriteString(indent + scalar(val) + "\n")
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprint(val)
	}
}

// HumanizeKey turns "technicalApproach" into "Technical Approach".
func HumanizeKey(key string) string {
	var sb strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			sb.WriteRune(' ')
			continue
		case i == 0:
			sb.WriteRune(unicode.ToUpper(r))
			continue
		case unicode.IsUpper(r):
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
