package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// printer renders command results. Values are reduced to plain JSON data first so the
// query and every format see the same shape the API returned.
type printer struct {
	format string
	query  string
	// columns orders table output; empty means every key, sorted.
	columns []string
	// cells rewrites individual table cells, keyed by column.
	cells map[string]func(any) string
}

func (p printer) withColumns(cols []string, cells map[string]func(any) string) printer {
	p.columns = cols
	p.cells = cells
	return p
}

func (p printer) print(w io.Writer, v any) error {
	data, err := plain(v)
	if err != nil {
		return err
	}
	if q := strings.TrimSpace(p.query); q != "" {
		if data, err = jmespath.Search(q, data); err != nil {
			return fmt.Errorf("query %q: %w", q, err)
		}
	}

	switch p.format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return p.table(w, data)
	}
}

func plain(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}

func (p printer) table(w io.Writer, data any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch t := data.(type) {
	case []any:
		rows := make([]map[string]any, 0, len(t))
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				// A list of scalars, e.g. a projection.
				fmt.Fprintln(tw, cell(item))
				continue
			}
			rows = append(rows, m)
		}
		if len(rows) > 0 {
			p.rows(tw, rows)
		}
	case map[string]any:
		keys := p.columns
		if len(keys) == 0 {
			keys = sortedKeys(t)
		}
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%s\n", k, p.render(k, t[k]))
		}
	case nil:
	default:
		fmt.Fprintln(tw, cell(t))
	}
	return tw.Flush()
}

func (p printer) rows(tw io.Writer, rows []map[string]any) {
	cols := p.columns
	if len(cols) == 0 {
		seen := map[string]bool{}
		for _, r := range rows {
			for k := range r {
				if !seen[k] {
					seen[k] = true
					cols = append(cols, k)
				}
			}
		}
		sort.Strings(cols)
	}

	fmt.Fprintln(tw, strings.ToUpper(strings.Join(cols, "\t")))
	for _, r := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = p.render(c, r[c])
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
}

func (p printer) render(col string, v any) string {
	if fn, ok := p.cells[col]; ok {
		return fn(v)
	}
	return cell(v)
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
