package main

import (
	"fmt"
	"io"

	"github.com/simonhull/id3scan"
)

type printer interface {
	print(ev id3scan.Event)
	flush()
}

// simplePrinter groups events under a "file ########## tag" banner with a
// blank line after each group.
type simplePrinter struct {
	w     io.Writer
	names bool

	open     bool
	filename string
	tag      id3scan.TagKind
}

func (p *simplePrinter) print(ev id3scan.Event) {
	if !p.open || ev.Filename != p.filename || ev.Tag != p.tag {
		p.flush()
		fmt.Fprintf(p.w, "%s ########## %s\n", ev.Filename, ev.Tag)
		p.open, p.filename, p.tag = true, ev.Filename, ev.Tag
	}
	fmt.Fprintf(p.w, "offset[%4x]\tsize[%2x]\tframe[%s]\tbody[%s]\n",
		ev.Offset, ev.Size, ev.Label, body(ev, p.names))
}

func (p *simplePrinter) flush() {
	if p.open {
		fmt.Fprintln(p.w)
		p.open = false
	}
}

// verbosePrinter prints one self-contained line per event.
type verbosePrinter struct {
	w     io.Writer
	names bool
}

func (p *verbosePrinter) print(ev id3scan.Event) {
	fmt.Fprintf(p.w, "filename[%s]\toffset[%4x]\tsize[%2x]\tframe[%s]\tbody[%s]\n",
		ev.Filename, ev.Offset, ev.Size, ev.Label, body(ev, p.names))
}

func (p *verbosePrinter) flush() {}

func body(ev id3scan.Event, names bool) string {
	if names && ev.Name != "" {
		return "{" + ev.Name + "}" + ev.Value
	}
	return ev.Value
}
