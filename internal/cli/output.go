package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/filter"
	"github.com/studiowebux/postboard/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	titleColumnWidth = 50
	urlColumnWidth   = 60
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// write projects v through the JMESPath filter/query if any, then formats it.
// text falls back to JSON once a projection changed the shape of v.
func write(opts Options, v interface{}, text func(interface{}) string) error {
	if opts.Filter != "" || opts.Query != "" {
		data, err := filter.Normalize(v)
		if err != nil {
			return err
		}
		v, err = filter.ApplyValue(data, opts.Filter, opts.Query)
		if err != nil {
			return err
		}
		text = nil
	}

	output, err := formatOutput(v, opts.OutputFormat, opts.Color, text)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = fmt.Fprint(opts.writer(), output)
	return err
}

// formatOutput formats v based on the output format
func formatOutput(v interface{}, format string, color bool, text func(interface{}) string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		if text != nil {
			return text(v), nil
		}
		fallthrough

	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		out := string(data) + "\n"
		if color {
			return highlightJSON(out), nil
		}
		return out, nil

	default:
		return "", fmt.Errorf("unknown output format %q (json, yaml, text)", format)
	}
}

func highlightJSON(src string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, src, "json", "terminal256", "monokai"); err != nil {
		return src
	}
	return sb.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderPostsTable(v interface{}) string {
	list := v.([]types.Post)
	if len(list) == 0 {
		return "No posts\n"
	}

	t := newTable("ID", "USER", "TITLE")
	for _, p := range list {
		t.Row(strconv.Itoa(p.ID), strconv.Itoa(p.UserID), ansi.Truncate(p.Title, titleColumnWidth, "…"))
	}
	return t.Render() + "\n"
}

func renderPostDetail(v interface{}) string {
	p := v.(types.Post)

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("#%d", p.ID)))
	sb.WriteString(" ")
	sb.WriteString(p.Title)
	sb.WriteString("\n")
	if p.UserID != 0 {
		sb.WriteString(fmt.Sprintf("user %d\n", p.UserID))
	}
	sb.WriteString("\n")
	sb.WriteString(p.Body)
	sb.WriteString("\n")
	return sb.String()
}

func renderPostDetails(v interface{}) string {
	list := v.([]types.Post)
	parts := make([]string, len(list))
	for i, p := range list {
		parts[i] = renderPostDetail(p)
	}
	return strings.Join(parts, "\n")
}

func renderHistoryTable(v interface{}) string {
	entries := v.([]types.HistoryEntry)
	if len(entries) == 0 {
		return "No history\n"
	}

	t := newTable("TIME", "STATUS", "DURATION", "SIZE", "URL")
	for _, e := range entries {
		t.Row(e.Timestamp, statusText(e), executor.FormatDuration(e.Duration),
			executor.FormatSize(e.ResponseSize), ansi.Truncate(e.URL, urlColumnWidth, "…"))
	}
	return t.Render() + "\n"
}

func statusText(e types.HistoryEntry) string {
	if e.Error != "" {
		return errorStyle.Render("error")
	}
	if executor.IsSuccessStatus(e.ResponseStatus) {
		return okStyle.Render(strconv.Itoa(e.ResponseStatus))
	}
	return errorStyle.Render(strconv.Itoa(e.ResponseStatus))
}
