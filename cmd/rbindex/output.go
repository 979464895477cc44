// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorRed   = lipgloss.Color("#E74C3C")
	colorTeal  = lipgloss.Color("#2CD7C7")
	colorMuted = lipgloss.Color("#2C4A54")
)

// styles holds the styles used for command output. Every style is plain
// when output is not a terminal.
type styles struct {
	Title lipgloss.Style
	Red   lipgloss.Style
	Black lipgloss.Style
	Muted lipgloss.Style
	OK    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{Title: plain, Red: plain, Black: plain, Muted: plain, OK: plain}
	}
	return styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorTeal),
		Red:   lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		Black: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		OK:    lipgloss.NewStyle().Foreground(colorTeal),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeTree draws a tree visited in pre-order, one node per line, indented
// by depth. Red nodes are marked.
func writeTree[K any](w io.Writer, st styles, walk func(func(depth int, k K, red bool))) {
	walk(func(depth int, k K, red bool) {
		label := fmt.Sprint(k)
		if red {
			label = st.Red.Render(label + " (red)")
		} else {
			label = st.Black.Render(label + " (black)")
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label)
	})
}
