package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/wcauchois/go-spreadsheet/cmd/sheetserver"
	"github.com/wcauchois/go-spreadsheet/repl"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "-h", "--help", "help":
		usage()
	case "repl":
		os.Exit(replCommand(os.Args[2:]))
	case "serve":
		os.Exit(serveCommand(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  sheet repl          start an interactive sheet REPL\n")
	fmt.Fprintf(os.Stderr, "  sheet serve [addr]  start the WebSocket sheet server (default :8080)\n")
	fmt.Fprintf(os.Stderr, "  sheet help          show this help message\n")
}

func replCommand(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "repl takes no arguments\n")
		return 2
	}
	repl.Start(os.Stdin, os.Stdout)
	return 0
}

func serveCommand(args []string) int {
	addr := ":8080"
	if len(args) > 0 {
		addr = args[0]
		// Binding to "localhost" can cause IPv4/IPv6 mismatches; prefer
		// binding to all interfaces.
		addr = strings.Replace(addr, "localhost", "", 1)
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
	}

	srv := sheetserver.NewServer()
	if err := srv.Start(addr); err != nil {
		fmt.Fprintf(os.Stderr, "sheet server error: %v\n", err)
		return 1
	}
	return 0
}
