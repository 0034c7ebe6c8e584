package deepdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatPrettyString is FormatPretty that returns a string
func FormatPrettyString(changes Changes, colorize bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorize); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a line-per-record rendition of changes to w:
//
//	+ /c: 4
//	- /b: 2
//	~ /name: "al" => "sal"
//	@ /tags[2]: + "beta"
//
// + is an addition, - a deletion, ~ an edit and @ an array-slot record,
// with the slot index in brackets. When colorize is true lines are
// ANSI-colored and string edits render an inline character diff.
func FormatPretty(w io.Writer, changes Changes, colorize bool) error {
	f := newFormatter(colorize)
	for _, c := range changes {
		if _, err := io.WriteString(w, f.line(c)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatPrettyStats writes a one-line summary of diff stats to w
func FormatPrettyStats(w io.Writer, s *Stats, colorize bool) error {
	f := newFormatter(colorize)
	_, err := fmt.Fprintf(w, "%s %s %s %s\n",
		f.green(fmt.Sprintf("+%d", s.Added)),
		f.red(fmt.Sprintf("-%d", s.Deleted)),
		f.blue(fmt.Sprintf("~%d", s.Edited)),
		f.cyan(fmt.Sprintf("@%d", s.ArraySlots)),
	)
	return err
}

type formatter struct {
	colorize               bool
	green, red, blue, cyan func(a ...interface{}) string
}

func newFormatter(colorize bool) *formatter {
	if !colorize {
		return &formatter{
			colorize: false,
			green:    fmt.Sprint,
			red:      fmt.Sprint,
			blue:     fmt.Sprint,
			cyan:     fmt.Sprint,
		}
	}
	return &formatter{
		colorize: true,
		green:    color.New(color.FgGreen).SprintFunc(),
		red:      color.New(color.FgRed).SprintFunc(),
		blue:     color.New(color.FgBlue).SprintFunc(),
		cyan:     color.New(color.FgCyan).SprintFunc(),
	}
}

func (f *formatter) line(c *Change) string {
	loc := c.Path.String()
	inner := c
	isSlot := false
	for inner.Kind == ChangeArray && inner.Item != nil {
		isSlot = true
		loc += fmt.Sprintf("[%d]", inner.Index)
		inner = inner.Item
	}
	loc += inner.Path.String()
	if loc == "" {
		loc = "/"
	}

	if isSlot {
		var body string
		switch inner.Kind {
		case ChangeNew:
			body = f.green("+ " + jsonValue(inner.Rhs))
		case ChangeDeleted:
			body = f.red("- " + jsonValue(inner.Lhs))
		default:
			body = f.blue("~") + " " + f.editedValues(inner.Lhs, inner.Rhs)
		}
		return f.cyan("@ "+loc+":") + " " + body
	}
	switch inner.Kind {
	case ChangeNew:
		return f.green("+ " + loc + ": " + jsonValue(inner.Rhs))
	case ChangeDeleted:
		return f.red("- " + loc + ": " + jsonValue(inner.Lhs))
	default:
		return f.blue("~ "+loc+":") + " " + f.editedValues(inner.Lhs, inner.Rhs)
	}
}

// editedValues renders "old => new", with an inline character diff when
// both sides are strings and color is on
func (f *formatter) editedValues(lhs, rhs interface{}) string {
	ls, lok := lhs.(string)
	rs, rok := rhs.(string)
	if f.colorize && lok && rok {
		return f.stringDiff(ls, rs)
	}
	return jsonValue(lhs) + " => " + jsonValue(rhs)
}

func (f *formatter) stringDiff(lhs, rhs string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(lhs, rhs, false))
	buf := &bytes.Buffer{}
	buf.WriteByte('"')
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			buf.WriteString(f.green(d.Text))
		case diffmatchpatch.DiffDelete:
			buf.WriteString(f.red(d.Text))
		default:
			buf.WriteString(d.Text)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

func jsonValue(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
