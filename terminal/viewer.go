// Package terminal shows a routed scene in an interactive full-screen view.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"linetrace/canvas"
	"linetrace/render"
)

// Viewer draws a text rendering of a drawing onto a tcell screen and lets
// the user pan around it.
//
// Keys: arrows or hjkl pan, c toggles corner markers, q or Esc quits.
type Viewer struct {
	screen  tcell.Screen
	drawing render.Drawing
	opts    render.ASCIIOptions
	title   string

	matrix  *canvas.Matrix
	offsetX int
	offsetY int
}

// NewViewer prepares a viewer for an initialised screen. The caller owns
// the screen and finalises it.
func NewViewer(screen tcell.Screen, d render.Drawing, opts render.ASCIIOptions, title string) (*Viewer, error) {
	v := &Viewer{screen: screen, drawing: d, opts: opts, title: title}
	if err := v.rerender(); err != nil {
		return nil, err
	}
	return v, nil
}

// Show opens the terminal, runs a viewer until the user quits or ctx ends,
// and restores the terminal.
func Show(ctx context.Context, d render.Drawing, opts render.ASCIIOptions, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	defer screen.Fini()

	v, err := NewViewer(screen, d, opts, title)
	if err != nil {
		return err
	}
	return v.Run(ctx)
}

func (v *Viewer) rerender() error {
	m, err := render.RenderASCII(v.drawing, v.opts)
	if err != nil {
		return err
	}
	v.matrix = m
	return nil
}

// Run draws and handles events until quit. Cancelling ctx ends the loop.
func (v *Viewer) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := v.Handle(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		v.Draw()
	}
}

// Handle applies one event and reports whether the viewer should close.
func (v *Viewer) Handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			v.pan(-1, 0)
		case tcell.KeyRight:
			v.pan(1, 0)
		case tcell.KeyUp:
			v.pan(0, -1)
		case tcell.KeyDown:
			v.pan(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case 'h':
				v.pan(-1, 0)
			case 'l':
				v.pan(1, 0)
			case 'k':
				v.pan(0, -1)
			case 'j':
				v.pan(0, 1)
			case 'c':
				v.opts.DebugCorners = !v.opts.DebugCorners
				if err := v.rerender(); err != nil {
					return false, err
				}
			}
		}
	}
	return false, nil
}

// pan moves the view, keeping it inside the canvas.
func (v *Viewer) pan(dx, dy int) {
	w, h := v.matrix.Size()
	sw, sh := v.screen.Size()
	v.offsetX = clamp(v.offsetX+dx, 0, max(w-sw, 0))
	v.offsetY = clamp(v.offsetY+dy, 0, max(h-(sh-1), 0))
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// Offset returns the top-left canvas cell currently shown.
func (v *Viewer) Offset() (x, y int) {
	return v.offsetX, v.offsetY
}

// Draw paints the visible part of the canvas and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	w, h := v.matrix.Size()

	for sy := 0; sy < sh-1 && sy+v.offsetY < h; sy++ {
		for sx := 0; sx < sw && sx+v.offsetX < w; sx++ {
			c := canvas.Cell{X: sx + v.offsetX, Y: sy + v.offsetY}
			r := v.matrix.Get(c)
			if r == 0 || r == ' ' {
				continue
			}
			style := tcell.StyleDefault
			if hex := v.matrix.Color(c); hex != "" {
				style = style.Foreground(tcell.GetColor(hex))
			}
			v.screen.SetContent(sx, sy, r, nil, style)
		}
	}

	v.drawStatus(sh - 1)
	v.screen.Show()
}

func (v *Viewer) drawStatus(row int) {
	if row < 0 {
		return
	}
	status := fmt.Sprintf("[ %s ] Obstacles: %d | Routes: %d | q quit, c corners",
		v.title, len(v.drawing.Obstacles), len(v.drawing.Routes))
	style := tcell.StyleDefault.Reverse(true)

	x := 0
	sw, _ := v.screen.Size()
	for _, r := range status {
		if x >= sw {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
