package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	strike = "\033[9m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Colorer paints strings for one output stream.
type Colorer struct{ on bool }

// For decides once per writer whether escapes are emitted.
func For(w io.Writer) Colorer {
	if disableColor {
		return Colorer{}
	}
	return Colorer{on: forceColor || isTTY(w)}
}

func (c Colorer) C(color, s string) string {
	if !c.on || color == "" {
		return s
	}
	return color + s + reset
}

func OK(w io.Writer, msg string) { fmt.Fprintln(w, For(w).C(fgGreen, symCheck+" "+msg)) }

func Fail(w io.Writer, msg string) { fmt.Fprintln(w, For(w).C(fgRed, symCross+" "+msg)) }

// Dim and Strike are exported for todo lines.
func Dim() string    { return dim }
func Strike() string { return strike }
