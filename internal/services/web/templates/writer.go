package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so component bodies stay
// linear.
type htmlWriter struct {
	ctx  context.Context
	w    io.Writer
	body templ.Component
	err  error
}

// newHTMLWriter takes the children out of ctx so nested components do not
// render them again.
func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	body := templ.GetChildren(ctx)
	return &htmlWriter{ctx: templ.ClearChildren(ctx), w: w, body: body}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) attrIf(ok bool, name, value string) {
	if ok {
		h.attr(name, value)
	}
}

func (h *htmlWriter) flag(ok bool, name string) {
	if ok {
		h.raw(" " + name)
	}
}

func (h *htmlWriter) intText(n int) {
	h.raw(strconv.Itoa(n))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) children() {
	h.render(h.body)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}
