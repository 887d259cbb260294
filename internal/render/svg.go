package render

import (
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVG writes an icon as scalable vector graphics, one rect per fill.
// Colours are written as given, so any CSS colour a browser accepts works.
type SVG struct {
	canvas  *svg.SVG
	out     *errWriter
	width   int
	started bool
	closed  bool
}

// NewSVG creates an SVG surface writing to w. Output is complete after Close.
func NewSVG(w io.Writer, width int) (*SVG, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	out := &errWriter{w: w}
	return &SVG{
		canvas: svg.New(out),
		out:    out,
		width:  width,
	}, nil
}

// SetTitle adds a <title> element. It must be called before the first fill.
func (s *SVG) SetTitle(title string) {
	s.start()
	s.canvas.Title(title)
}

func (s *SVG) start() {
	if s.started {
		return
	}
	s.started = true
	s.canvas.Start(s.width, s.width,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, s.width, s.width),
		`shape-rendering="crispEdges"`)
}

// FillAll paints the whole canvas.
func (s *SVG) FillAll(c string) error {
	return s.FillRect(0, 0, s.width, s.width, c)
}

// FillRect paints the w x h block at (x, y).
func (s *SVG) FillRect(x, y, w, h int, c string) error {
	if s.closed {
		return fmt.Errorf("svg surface is closed")
	}
	s.start()
	s.canvas.Rect(x, y, w, h, fillAttr(c))
	return s.out.err
}

// Close finishes the document and reports any write error.
func (s *SVG) Close() error {
	if s.closed {
		return s.out.err
	}
	s.start()
	s.canvas.End()
	s.closed = true
	return s.out.err
}

// fillAttr builds a fill attribute. svgo passes arguments containing '='
// through as raw attributes.
func fillAttr(c string) string {
	return fmt.Sprintf(`fill="%s"`, html.EscapeString(c))
}

// errWriter remembers the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = fmt.Errorf("failed to write svg: %w", err)
	}
	return n, err
}
