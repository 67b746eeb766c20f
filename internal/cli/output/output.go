// Package output renders command results as tables, markdown, JSON or CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeCSV      Mode = "csv"
)

// Renderer writes results in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. ModeAuto resolves to ModeTable when out is
// a terminal and to ModeMarkdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY is NewRenderer with the terminal check supplied.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == ModeAuto || mode == "" {
		mode = ModeMarkdown
		if isTTY {
			mode = ModeTable
		}
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Writer returns the result writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Infof writes a status line to the error stream so results stay clean.
func (r *Renderer) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format+"\n", args...)
}

// SQL writes generated SQL. Markdown wraps it in a fenced block and JSON
// wraps it in an object.
func (r *Renderer) SQL(stmt string) error {
	switch r.mode {
	case ModeJSON:
		return r.JSON(map[string]string{"sql": stmt})
	case ModeMarkdown:
		_, err := fmt.Fprintf(r.out, "```sql\n%s\n```\n", strings.TrimRight(stmt, "\n"))
		return err
	default:
		_, err := fmt.Fprintln(r.out, strings.TrimRight(stmt, "\n"))
		return err
	}
}

// JSON writes v as indented JSON regardless of mode.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows under headers. In JSON mode each row becomes an object
// keyed by header.
func (r *Renderer) Table(headers []string, rows [][]any) error {
	switch r.mode {
	case ModeJSON:
		objects := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]any, len(headers))
			for i, h := range headers {
				if i < len(row) {
					obj[h] = row[i]
				}
			}
			objects = append(objects, obj)
		}
		return r.JSON(objects)
	case ModeCSV:
		return r.csv(headers, rows)
	case ModeMarkdown:
		return r.markdown(headers, rows)
	default:
		return r.pretty(headers, rows)
	}
}

func (r *Renderer) pretty(headers []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		t.AppendRow(cells)
	}
	t.Render()

	_, _ = fmt.Fprintf(r.out, "(%d rows)\n", len(rows))
	return nil
}

func (r *Renderer) markdown(headers []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(headers, " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = strings.ReplaceAll(FormatValue(v), "|", `\|`)
		}
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func (r *Renderer) csv(headers []string, rows [][]any) error {
	w := csv.NewWriter(r.out)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = FormatValue(v)
		}
		if err := w.Write(values); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatValue renders a cell, printing nil as NULL.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
