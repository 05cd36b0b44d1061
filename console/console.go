// Package console prints the canned shopping session to a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	boldCyan = "\x1b[1;36m"
	yellow   = "\x1b[33m"
	red      = "\x1b[31m"
	reset    = "\x1b[0m"
)

// Printer writes labelled prompts and responses. Responses are wrapped to
// width display columns; width <= 0 disables wrapping.
type Printer struct {
	w     io.Writer
	width int
	color bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, width int, color bool) *Printer {
	return &Printer{w: w, width: width, color: color}
}

// Prompt prints a user query, preceded by a blank line.
func (p *Printer) Prompt(query string) {
	fmt.Fprintf(p.w, "\n%s %s\n", p.style(boldCyan, "User Prompt:"), query)
}

// Response prints the agent's answer.
func (p *Printer) Response(answer string) {
	p.labelled(yellow, "Agent Response:", answer)
}

// Failure prints an error in place of an answer.
func (p *Printer) Failure(err error) {
	p.labelled(red, "Agent Error:", err.Error())
}

func (p *Printer) labelled(color, label, text string) {
	fmt.Fprintf(p.w, "%s %s\n", p.style(color, label), p.wrap(text, runewidth.StringWidth(label)+1))
}

// wrap word-wraps text to the printer width, measuring display columns. The
// first line shares its row with a label of indent columns.
func (p *Printer) wrap(text string, indent int) string {
	if p.width <= 0 || p.width <= indent {
		return text
	}

	var b strings.Builder
	col := indent
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
			col = 0
		}
		body := strings.TrimLeft(line, " \t")
		lead := line[:len(line)-len(body)]
		b.WriteString(lead)
		col += runewidth.StringWidth(lead)

		for j, word := range strings.Fields(body) {
			w := runewidth.StringWidth(word)
			switch {
			case j == 0:
			case col+1+w > p.width:
				b.WriteByte('\n')
				b.WriteString(lead)
				col = runewidth.StringWidth(lead)
			default:
				b.WriteByte(' ')
				col++
			}
			b.WriteString(word)
			col += w
		}
	}
	return b.String()
}

func (p *Printer) style(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + reset
}

// Answerer answers one query.
type Answerer interface {
	Chat(ctx context.Context, query string) (string, error)
}

// RunQueries asks each query in order and prints the exchange. A failed
// query is printed and the run continues. It returns the number of failures
// and stops early if ctx is cancelled.
func RunQueries(ctx context.Context, agent Answerer, p *Printer, queries []string) int {
	failures := 0
	for _, q := range queries {
		if ctx.Err() != nil {
			return failures
		}
		p.Prompt(q)
		answer, err := agent.Chat(ctx, q)
		if err != nil {
			failures++
			p.Failure(err)
			continue
		}
		p.Response(answer)
	}
	return failures
}
