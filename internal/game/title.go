package game

import (
	"context"
	"image/color"

	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
)

// blinkInterval is how long the start prompt stays on or off, in frame units.
const blinkInterval = 60

type titleScene struct {
	*scene.Base

	prompt *render.Node
	blink  float64
}

func newTitle(_ context.Context, env *scene.Env, _ scene.Params) (scene.Scene, error) {
	s := &titleScene{Base: scene.NewBase(env, scene.KindTitle)}

	s.Add(render.NewRect("background", 0, 0, render.Width, render.Height, color.RGBA{0x00, 0x00, 0x33, 0xff}))
	s.Add(render.NewText("title", render.Width/2-60, render.Height/3, "PIXEL ADVENTURE", render.White))
	s.prompt = s.Add(render.NewText("prompt", render.Width/2-80, render.Height*2/3, "Press ENTER to start", render.White))

	enter := s.Bind(input.KeyEnter)
	enter.Press = func() {
		s.Request(scene.KindVillage, scene.Params{Interior: true})
	}
	return s, nil
}

func (s *titleScene) Update(elapsed float64) {
	s.blink += elapsed
	if s.blink > blinkInterval {
		s.blink = 0
		s.prompt.SetVisible(!s.prompt.Visible())
	}
	s.Pump()
}
