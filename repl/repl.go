// Package repl implements an interactive shell over a sheet.Sheet: cells are
// assigned with "A1 <source>", read back by naming the address alone, and
// the debug hooks (:parse, :eval, :graphviz) exercise the engine independent
// of any stored cell.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/wcauchois/go-spreadsheet/sheet"
)

const (
	prompt = "sheet> "
	banner = `╔════════════════════════════════════════╗
║   reactive sheet REPL                   ║
╚════════════════════════════════════════╝
`
)

// Start begins an interactive session against a fresh sheet, reading lines
// from in and writing prompts/results to out.
func Start(in io.Reader, out io.Writer) {
	s := sheet.New()

	var (
		scanner *bufio.Scanner
		tty     *ttyInput
	)
	if ti, ok := newTTYInput(in, out); ok {
		tty = ti
		defer tty.Close()
	} else {
		scanner = bufio.NewScanner(in)
	}

	sessionOut := out
	if tty != nil {
		sessionOut = newTTYLineWriter(out)
	}

	fmt.Fprint(sessionOut, banner)
	fmt.Fprintf(sessionOut, "Assign a cell with `A1 =(+ 1 2)` or `A1 10`, read one back with `A1`.\n")
	fmt.Fprintf(sessionOut, "Commands: :parse <expr>, :eval <expr>, :graphviz, :help, :quit\n\n")

	for {
		var (
			line string
			ok   bool
		)
		if tty != nil {
			line, ok = tty.readLine(prompt)
		} else {
			fmt.Fprint(out, prompt)
			ok = scanner.Scan()
			line = scanner.Text()
		}
		if !ok {
			fmt.Fprintln(sessionOut)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if handleCommand(line, sessionOut, s) {
				return
			}
			continue
		}

		handleCellLine(line, sessionOut, s)
	}
}

func handleCommand(line string, out io.Writer, s *sheet.Sheet) bool {
	cmd, rest := splitCommand(line)
	switch cmd {
	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, "bye")
		return true

	case ":help", ":h":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  A1 <source>        assign a cell (a number, text, or =<formula>)")
		fmt.Fprintln(out, "  A1                 print the cell's current value")
		fmt.Fprintln(out, "  :parse <expr>      pretty-print the parsed AST")
		fmt.Fprintln(out, "  :eval <expr>       evaluate with the empty keyword resolver")
		fmt.Fprintln(out, "  :graphviz          dump the dependency graph as DOT")
		fmt.Fprintln(out, "  :quit              exit")
		fmt.Fprintln(out, "Tab completes a partial `:` command in a TTY session.")
		return false

	case ":parse":
		fmt.Fprintln(out, s.DebugParseExpr(rest))
		return false

	case ":eval":
		result, err := s.DebugEvalExpr(rest)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			return false
		}
		fmt.Fprintln(out, result)
		return false

	case ":graphviz":
		fmt.Fprintln(out, s.DebugGraphviz())
		return false

	default:
		fmt.Fprintf(out, "unknown command: %s (try :help)\n", cmd)
		return false
	}
}

func handleCellLine(line string, out io.Writer, s *sheet.Sheet) {
	addrText, source, isAssignment := splitAssignment(line)

	a, rest, err := sheet.ParseAddress(addrText)
	if err != nil || rest != "" {
		fmt.Fprintf(out, "Error: not a cell address: %q\n", addrText)
		return
	}

	if !isAssignment {
		val, cellSource := s.GetCell(a)
		fmt.Fprintf(out, "%s = %q  (source: %q)\n", a, val.String(), cellSource)
		return
	}

	if err := s.SetCell(a, source); err != nil {
		log.Printf("set cell %s failed: %v", a, err)
		fmt.Fprintf(out, "Error: %s\n", err)
		return
	}
	val, _ := s.GetCell(a)
	fmt.Fprintf(out, "%s = %s\n", a, val.String())
}

// splitAssignment splits "A1 <source>" into ("A1", "<source>", true), the
// raw cell source text passed straight through to SetCell so "=" still
// marks a formula per the cell-source grammar. A bare address with no
// following text returns ("A1", "", false).
func splitAssignment(line string) (string, string, bool) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) == 1 {
		return strings.TrimSpace(fields[0]), "", false
	}
	addrText := strings.TrimSpace(fields[0])
	source := strings.TrimSpace(fields[1])
	if source == "" {
		return addrText, "", false
	}
	return addrText, source, true
}

func splitCommand(line string) (string, string) {
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	return cmd, rest
}
