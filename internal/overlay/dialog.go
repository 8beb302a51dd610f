package overlay

import (
	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/render"
)

// dialogColumns is the text width of the box: its width less the margins.
var dialogColumns = render.Columns(render.Width - 36)

// DialogView draws a dialog box along the bottom of the playfield. It is the
// registry entry for the box: visibility and Hide delegate to it.
type DialogView struct {
	*dialog.Box

	node    *render.Node
	speaker *render.Node
	text    *render.Node
	more    *render.Node
}

// NewDialogView wraps box with its on-screen representation.
func NewDialogView(box *dialog.Box) *DialogView {
	v := &DialogView{Box: box}
	v.node = render.NewGroup("dialog")
	v.node.SetPosition(10, render.Height-70)
	v.node.Add(render.NewRect("dialog.bg", 0, 0, render.Width-20, 60, render.Panel))
	v.speaker = v.node.Add(render.NewText("dialog.speaker", 8, 4, "", render.Highlight))
	v.text = v.node.Add(render.NewText("dialog.text", 8, 18, "", render.White))
	v.more = v.node.Add(render.NewTriangle("dialog.continue", render.Width-36, 50, 6, render.White))
	v.Sync()
	return v
}

// Update advances the box and refreshes the view.
func (v *DialogView) Update(elapsed float64) {
	v.Box.Update(elapsed)
	v.Sync()
}

// Sync copies the box state into the render nodes.
func (v *DialogView) Sync() {
	v.node.SetVisible(v.Box.Visible())
	v.speaker.SetText(v.Box.Speaker())
	v.text.SetText(v.Box.Text())
	v.more.SetVisible(v.Box.ContinueVisible())
}

// Node returns the view's render node.
func (v *DialogView) Node() *render.Node { return v.node }

// Open starts a session and shows it immediately. Pages are word-wrapped to
// the box before the session starts, so the typewriter reveals wrapped text.
func (v *DialogView) Open(pages []string, speaker string, onDone func(dialog.Outcome)) *dialog.Session {
	wrapped := make([]string, len(pages))
	for i, p := range pages {
		wrapped[i] = render.Wrap(p, dialogColumns)
	}
	s := v.Box.Open(wrapped, speaker, onDone)
	v.Sync()
	return s
}

// Advance forwards the continue input to the box.
func (v *DialogView) Advance() bool {
	ok := v.Box.Advance()
	v.Sync()
	return ok
}

// Dismiss force-closes the box.
func (v *DialogView) Dismiss() bool {
	ok := v.Box.Dismiss()
	v.Sync()
	return ok
}

func (v *DialogView) Hide() { v.Dismiss() }
