package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"secretsui/internal/keys"
	"secretsui/internal/logging"
	"secretsui/internal/telemetry"
	"secretsui/internal/ui"
	"secretsui/internal/ui/component"
	"secretsui/internal/ui/render"
	"secretsui/internal/ui/textutil"
)

// dispatch routes one key: global bindings first, then the current
// screen's chain (which holds the popup router while a popup is shown).
func (e *Engine) dispatch(ev keys.Event) {
	_, span := e.tracer.Start(context.Background(), "engine.dispatch",
		oteltrace.WithAttributes(telemetry.KeyAttr.String(ev.String())))
	defer span.End()

	if consumed, action := e.keyh.Handle(ev); consumed {
		e.dirty = true
		if action != nil {
			e.runAction(action)
		}
		span.SetAttributes(telemetry.ScreenAttr.String("global"))
		return
	}

	cur := e.nav.Current()
	if cur == nil {
		return
	}
	span.SetAttributes(telemetry.ScreenAttr.String(cur.ID()))
	if e.overlay.Active() {
		span.SetAttributes(telemetry.PopupAttr.String(fmt.Sprintf("%T", e.overlay.Popup())))
	}
	handled, err := cur.Core().Handlers().Dispatch(e.nav.Context(), ev)
	if err != nil {
		var herr *ui.HandlerError
		if errors.As(err, &herr) {
			logging.Error(subsystem, err, "handler %q panicked on %s", herr.Handler, herr.Key)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler panic")
		e.dirty = true
		return
	}
	if !handled {
		logging.Debug(subsystem, "unhandled key %s on %s", ev, cur.ID())
	}
}

func (e *Engine) runAction(a ui.Action) {
	defer e.recoverPanic("global binding " + e.keyh.Sequence())
	a(e.nav.Context())
}

// flush redraws when a render was requested or the current screen's state
// changed since the last frame.
func (e *Engine) flush() {
	if e.suspended || e.quit {
		return
	}
	dirty := e.dirty
	if cur := e.nav.Current(); cur != nil && cur.Core().State().TakeDirty() {
		dirty = true
	}
	if !dirty {
		return
	}
	e.dirty = false
	e.render()
}

func (e *Engine) render() {
	_, span := e.tracer.Start(context.Background(), "engine.render")
	defer span.End()

	lines, err := e.compose()
	if err != nil {
		logging.Error(subsystem, err, "render")
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return
	}
	span.SetAttributes(telemetry.RowsAttr.Int(len(lines)))
	frame := strings.Join(lines, "\n")
	if frame == e.lastFrame {
		return
	}
	if err := e.writeFrame(lines); err != nil {
		logging.Error(subsystem, err, "write frame")
		return
	}
	e.lastFrame = frame
}

// compose builds the lines of one frame. A panicking screen or popup
// leaves the previous frame on screen.
func (e *Engine) compose() (lines []string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic while rendering: %v", v)
		}
	}()

	size := e.rctx.Size
	cur := e.nav.Current()
	var nodes []component.Node
	if cur != nil {
		nodes = cur.Components(cur.Core().State())
	}
	nodes = e.decorate(cur, nodes)

	z := e.renderer.Zones(nodes, e.rctx)
	lines = fitRows(pinFooter(z, size.Rows), size.Rows, size.Cols)

	if help := ui.RenderKeybindHelp(e.keyh, e.renderer.Theme(), size.Cols); help != "" {
		box := textutil.Lines(help)
		top := len(lines) - len(box)
		if top < 0 {
			top = 0
		}
		for i := top; i < len(lines); i++ {
			lines[i] = textutil.Truncate(box[i-top], size.Cols)
		}
	}

	if e.overlay.Active() {
		lines = strings.Split(e.overlay.Render(strings.Join(lines, "\n"), size), "\n")
	}
	return lines, nil
}

// decorate adds the engine header and footer when the screen renders none.
func (e *Engine) decorate(cur ui.Screen, nodes []component.Node) []component.Node {
	var hasHeader, hasFooter bool
	for _, n := range component.Flatten(nodes...) {
		switch n.Kind() {
		case component.KindHeader:
			hasHeader = true
		case component.KindFooter:
			hasFooter = true
		}
	}
	out := make([]component.Node, 0, len(nodes)+2)
	if !hasHeader {
		if crumbs := e.nav.Breadcrumbs(); e.title != "" || len(crumbs) > 0 {
			out = append(out, component.Header(e.title, crumbs))
		}
	}
	out = append(out, nodes...)
	if !hasFooter {
		out = append(out, component.Footer(e.hints(cur)...))
	}
	return out
}

// hints lists the current screen's bindings followed by the global ones.
// While a popup owns the chain, the hints of the covered screen are kept.
func (e *Engine) hints(cur ui.Screen) []component.Hint {
	if e.overlay.Active() {
		return e.lastHints
	}
	var hints []component.Hint
	if cur != nil {
		for _, b := range cur.Core().Handlers().Bindings() {
			hints = append(hints, component.Hint{Key: b.Help().Key, Desc: b.Help().Desc})
		}
	}
	for _, b := range ui.Bindings(e.keyh.Registry.Hints()) {
		hints = append(hints, component.Hint{Key: b.Help().Key, Desc: b.Help().Desc})
	}
	e.lastHints = hints
	return hints
}

// pinFooter stacks the zones so the footer sits on the last rows. The body
// is padded or clipped to the rows left between header and footer.
func pinFooter(z render.Zones, rows int) []string {
	bodyRows := rows - len(z.Header) - len(z.Footer)
	if bodyRows < 0 {
		bodyRows = 0
	}
	body := z.Body
	if len(body) > bodyRows {
		body = body[:bodyRows]
	}
	out := make([]string, 0, rows)
	out = append(out, z.Header...)
	out = append(out, body...)
	for i := len(body); i < bodyRows; i++ {
		out = append(out, "")
	}
	return append(out, z.Footer...)
}

// fitRows returns exactly rows lines, none wider than cols.
func fitRows(lines []string, rows, cols int) []string {
	if rows <= 0 {
		return nil
	}
	out := make([]string, rows)
	for i := 0; i < rows && i < len(lines); i++ {
		out[i] = textutil.Truncate(lines[i], cols)
	}
	return out
}

// writeFrame repaints from the top-left corner. Each line clears its tail
// and the screen below the last line is cleared.
func (e *Engine) writeFrame(lines []string) error {
	var b strings.Builder
	b.WriteString("\x1b[H")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(l)
		b.WriteString("\x1b[0m\x1b[K")
	}
	b.WriteString("\x1b[J")
	_, err := e.term.Write([]byte(b.String()))
	return err
}
