package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"mimedex/internal/mediatype"
)

// typeRow flattens a descriptor into the columns shared by lookup and file
// output.
func typeRow(t *mediatype.Type) []string {
	status := "current"
	if t.Obsolete() {
		status = "obsolete"
		if replacement := t.UseInstead(); replacement != "" {
			status = "obsolete (use " + replacement + ")"
		}
	}
	return []string{
		t.ContentType(),
		strings.Join(t.Extensions(), " "),
		t.Encoding(),
		yesNo(t.Registered()),
		status,
	}
}

var typeHeaders = []string{"Content Type", "Extensions", "Encoding", "Registered", "Status"}

// renderTypes writes the descriptor list as a table on terminals and as
// tab-separated lines otherwise, so output stays script-friendly when piped.
func renderTypes(w io.Writer, types []*mediatype.Type) {
	if isTerminal(w) {
		rows := make([][]string, 0, len(types))
		for _, t := range types {
			rows = append(rows, typeRow(t))
		}
		fmt.Fprintln(w, renderTable(typeHeaders, rows, nil))
		return
	}
	for _, t := range types {
		fmt.Fprintln(w, strings.Join(typeRow(t), "\t"))
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
