//go:build cgo

package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RunWindow opens a window showing the controller's frame. It blocks until the window closes.
func RunWindow(c *Controller, scale int) error {
	width, height := c.Size()
	g := &viewerGame{c: c}
	ebiten.SetWindowTitle("Whitted Raytracer")
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type viewerGame struct {
	c     *Controller
	img   *ebiten.Image
	shown *image.RGBA
}

var moveKeys = []struct {
	key   ebiten.Key
	steps core.Vec3
}{
	{ebiten.KeyArrowLeft, core.NewVec3(-1, 0, 0)},
	{ebiten.KeyArrowRight, core.NewVec3(1, 0, 0)},
	{ebiten.KeyArrowUp, core.NewVec3(0, 0, 1)},
	{ebiten.KeyArrowDown, core.NewVec3(0, 0, -1)},
	{ebiten.KeyPageUp, core.NewVec3(0, 1, 0)},
	{ebiten.KeyPageDown, core.NewVec3(0, -1, 0)},
}

func (g *viewerGame) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.c.Click(x, y)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.c.Deselect()
	}

	var steps core.Vec3
	for _, mk := range moveKeys {
		if inpututil.IsKeyJustPressed(mk.key) {
			steps = steps.Add(mk.steps)
		}
	}
	g.c.Move(steps)
	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	frame := g.c.Frame()
	if g.img == nil || g.img.Bounds() != frame.Bounds() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
	}
	if g.shown != frame {
		g.img.WritePixels(frame.Pix)
		g.shown = frame
	}
	screen.DrawImage(g.img, nil)

	status := "click: select  arrows/pgup/pgdn: move camera"
	if id, ok := g.c.Selection(); ok {
		status = fmt.Sprintf("object %d  arrows/pgup/pgdn: move  esc: deselect", id)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.c.Size()
}
