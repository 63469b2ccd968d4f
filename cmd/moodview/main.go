// Command moodview is an interactive terminal viewer. It animates the
// current piece live, cycles mood anchors with smooth tweened
// transitions between their vectors, and re-rolls seeds on demand.
//
// Keys: space/n new seed, m/M next/previous mood, p pause, q/ESC quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lixenwraith/moodgrid/emotion"
	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/pipeline"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
)

const (
	frameInterval = time.Second / 20
	tweenSeconds  = 1.5
)

type viewer struct {
	screen tcell.Screen
	moods  []string

	moodIdx int
	seed    int64
	paused  bool

	// vector tweens from the previous mood to the current one
	from, to emotion.Vector
	tween    *gween.Tween

	spec *scene.Spec

	start   time.Time
	pauseAt time.Time
}

func newViewer(mood string, seed int64) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{
		screen: screen,
		moods:  emotion.AnchorNames(),
		seed:   seed,
		start:  time.Now(),
	}
	for i, name := range v.moods {
		if name == mood {
			v.moodIdx = i
		}
	}
	v.from = emotion.FromName(v.moods[v.moodIdx])
	v.to = v.from
	if err := v.rebuild(); err != nil {
		screen.Fini()
		return nil, err
	}
	return v, nil
}

// rebuild regenerates the spec for the current target mood and seed.
// The running frame clock is kept so animation never jumps.
func (v *viewer) rebuild() error {
	spec, _, err := pipeline.BuildSpec(pipeline.Request{
		Vector: &v.to,
		Seed:   v.seed,
	})
	if err != nil {
		return err
	}
	v.spec = spec
	return nil
}

// vector returns the mood vector for this instant, mid-tween when a
// transition is running.
func (v *viewer) vector(dt float32) emotion.Vector {
	if v.tween == nil {
		return v.to
	}
	t, done := v.tween.Update(dt)
	if done {
		v.tween = nil
		return v.to
	}
	return v.from.Slerp(v.to, float64(t))
}

func (v *viewer) switchMood(step int) {
	v.from = v.vector(0)
	v.moodIdx = (v.moodIdx + step + len(v.moods)) % len(v.moods)
	v.to = emotion.FromName(v.moods[v.moodIdx])
	v.tween = gween.New(0, 1, tweenSeconds, ease.InOutQuad)
	if err := v.rebuild(); err != nil {
		log.Printf("rebuild: %v", err)
	}
}

func (v *viewer) reseed() {
	v.seed++
	if err := v.rebuild(); err != nil {
		log.Printf("rebuild: %v", err)
	}
}

func (v *viewer) draw(dt float32) error {
	w, h := v.screen.Size()
	if h > 1 {
		h-- // bottom row is the status line
	}
	if w < 2 || h < 2 {
		return nil
	}

	now := time.Since(v.start).Seconds()
	vec := v.vector(dt)
	vp := vec.VisualParams()

	g, err := pipeline.RenderSpec(v.spec, vp, w, h, now, int(now*20))
	if err != nil {
		return err
	}
	v.blit(g)
	v.status(w, h)
	v.screen.Show()
	return nil
}

func (v *viewer) blit(g *render.Grid) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.At(x, y)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
			if c.BgSet {
				st = st.Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
			}
			v.screen.SetContent(x, y, palette.CharForIndex(c.Index, v.spec.Gradient), nil, st)
		}
	}
}

func (v *viewer) status(w, y int) {
	msg := fmt.Sprintf(" %s  seed %d  %s/%s  [space] reseed  [m] mood  [q] quit",
		v.moods[v.moodIdx], v.seed, v.spec.Effect, v.spec.Composition)
	st := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(msg) {
			r = rune(msg[x])
		}
		v.screen.SetContent(x, y, r, nil, st)
	}
}

func (v *viewer) run() error {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ', ev.Rune() == 'n':
					v.reseed()
				case ev.Rune() == 'm':
					v.switchMood(1)
				case ev.Rune() == 'M':
					v.switchMood(-1)
				case ev.Rune() == 'p':
					v.togglePause()
				}
			}
		case <-ticker.C:
			if v.paused {
				continue
			}
			now := time.Now()
			dt := float32(now.Sub(last).Seconds())
			last = now
			if err := v.draw(dt); err != nil {
				return err
			}
		}
	}
}

// togglePause freezes the frame clock so resuming does not jump ahead.
func (v *viewer) togglePause() {
	if v.paused {
		v.start = v.start.Add(time.Since(v.pauseAt))
	} else {
		v.pauseAt = time.Now()
	}
	v.paused = !v.paused
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	mood := flag.String("mood", "neutral", "starting mood anchor")
	seed := flag.Int64("seed", time.Now().UnixNano()%1_000_000, "starting seed")
	flag.Parse()

	v, err := newViewer(*mood, *seed)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer v.screen.Fini()

	if err := v.run(); err != nil {
		v.screen.Fini()
		fmt.Fprintf(os.Stderr, "moodview: %v\n", err)
		os.Exit(1)
	}
}
