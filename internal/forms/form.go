package forms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EndOfText terminates multi-line input.
const EndOfText = "."

// Form is an ordered group of fields.
type Form struct {
	Title  string
	Fields []Field
}

// Prompt asks for every field in order. Blank input keeps the current value,
// invalid input is reported and asked again. Input ending early keeps the
// remaining values.
func (f *Form) Prompt(in io.Reader, out io.Writer) error {
	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}

	if f.Title != "" {
		fmt.Fprintf(out, "== %s ==\n", f.Title)
	}
	fmt.Fprintf(out, "(enter keeps the current value, %q clears it)\n", Clear)

	for _, field := range f.Fields {
		for {
			raw, done, err := ask(r, out, field)
			if err != nil {
				return err
			}
			if raw == "" {
				if done {
					return nil
				}
				break
			}
			if err := field.Set(raw); err != nil {
				fmt.Fprintf(out, "  %s: %v\n", field.Label(), err)
				if done {
					return nil
				}
				continue
			}
			if done {
				return nil
			}
			break
		}
	}
	return nil
}

// ask reads one answer. done reports that the input is exhausted.
func ask(r *bufio.Reader, out io.Writer, field Field) (string, bool, error) {
	if m, ok := field.(Multiline); ok && m.Multiline() {
		fmt.Fprintf(out, "%s (finish with a line containing only %q)\n", field.Label(), EndOfText)
		if cur := field.Value(); cur != "" {
			fmt.Fprintf(out, "current:\n%s\n", cur)
		}
		return readBlock(r)
	}

	fmt.Fprintf(out, "%s [%s]: ", field.Label(), field.Value())
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", true, err
	}
	return strings.TrimSpace(line), errors.Is(err, io.EOF), nil
}

func readBlock(r *bufio.Reader) (string, bool, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", true, err
		}
		eof := errors.Is(err, io.EOF)
		line = strings.TrimRight(line, "\r\n")

		if len(lines) == 0 && strings.TrimSpace(line) == "" {
			return "", eof, nil
		}
		if line == EndOfText {
			return strings.Join(lines, "\n"), eof, nil
		}
		lines = append(lines, line)
		if eof {
			return strings.Join(lines, "\n"), true, nil
		}
	}
}

// Render writes every field and its current value.
func (f *Form) Render(out io.Writer) {
	if f.Title != "" {
		fmt.Fprintf(out, "== %s ==\n", f.Title)
	}
	for _, field := range f.Fields {
		fmt.Fprintf(out, "%s: %s\n", field.Label(), field.Value())
	}
}
