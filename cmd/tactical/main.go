package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/spacehole_tactical/assets"
	"github.com/spacehole-rogue/spacehole_tactical/internal/config"
	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render/screen"
	"github.com/spacehole-rogue/spacehole_tactical/internal/resource"
	"github.com/spacehole-rogue/spacehole_tactical/internal/sound"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Spacehole Tactical"

	// Minicomputer panel on the right edge.
	panelWidth = 240
	panelX     = screenWidth - panelWidth
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in sim.
type Game struct {
	sim     *game.Sim
	player  *game.PlayerShip
	loader  *resource.Loader
	catalog *world.Catalog
	pics    *resource.Pictures
	speaker *sound.Speaker

	font   *render.Font
	atlas  *screen.Atlas
	canvas *screen.Canvas
	input  *input

	intro   []render.Item
	level   int
	load    *game.LoadState
	frames  int64
	showFPS bool
}

// NewGame loads the scenario and starts construction of the first level.
func NewGame(prefs config.Prefs, scenario fs.FS, level int) (*Game, error) {
	bindings, err := prefs.Bindings()
	if err != nil {
		return nil, err
	}
	loader := resource.NewLoader(prefs.Scale, scenario, assets.Factory())
	cat, err := loader.Catalog()
	if err != nil {
		return nil, err
	}

	spk := sound.NewSpeaker()
	if err := spk.Initialize(); err != nil {
		logger.Log.WithError(err).Warn("audio unavailable, continuing silent")
	}
	spk.SetVolume(prefs.Volume)

	sim := game.NewSim(cat, seed())
	sim.Sound = spk
	player := game.NewPlayerShip(sim, bindings)
	player.Mini.Bounds = image.Rect(panelX+8, 40, screenWidth-8, 40+12*player.Mini.LineHeight)

	atlas := screen.NewAtlas()
	g := &Game{
		sim:     sim,
		player:  player,
		loader:  loader,
		catalog: cat,
		pics:    resource.NewPictures(loader, cat),
		speaker: spk,
		font:    render.TacticalFont(),
		atlas:   atlas,
		canvas:  screen.NewCanvas(nil, atlas),
		input:   newInput(player),
	}
	if g.intro, err = loader.Interface("main"); err != nil {
		logger.Log.WithError(err).Warn("no loading screen")
	}
	if err := g.startLevel(level); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) startLevel(n int) error {
	lvl, err := g.loader.Level(n, g.catalog)
	if err != nil {
		return err
	}
	g.level = n
	g.speaker.Forget()
	g.canvas.Forget()
	g.load = g.sim.StartConstructLevel(lvl)
	logger.Log.WithFields(logrus.Fields{
		"level": n,
		"name":  lvl.Name,
		"steps": g.load.Max,
	}).Info("starting level")
	return nil
}

// loadSounds decodes the samples the finished level asked for. A missing
// sample leaves the stand-in tone.
func (g *Game) loadSounds() {
	for _, id := range g.sim.Media.Sounds() {
		data, err := g.loader.Sound(id)
		if err != nil {
			continue
		}
		if err := g.speaker.LoadWAV(id, bytes.NewReader(data)); err != nil {
			logger.Log.WithError(err).WithField("sound", id).Warn("bad sound sample")
		}
	}
}

func (g *Game) Update() error {
	if g.load != nil && !g.load.Done {
		if err := g.sim.ConstructLevel(g.load); err != nil {
			return fmt.Errorf("construct level %d: %w", g.level, err)
		}
		if g.load.Done {
			g.loadSounds()
		}
		return nil
	}

	if g.sim.Finished() {
		next := g.sim.NextLevel
		logger.Log.WithFields(logrus.Fields{
			"victor": g.sim.Victor,
			"text":   g.sim.VictoryText,
			"next":   next,
		}).Info("level over")
		if next < 0 || !g.loader.Exists(fmt.Sprintf("levels/%d.json", next)) {
			return ebiten.Termination
		}
		return g.startLevel(next)
	}

	g.frames++
	g.input.poll()
	if g.input.toggleFPS {
		g.showFPS = !g.showFPS
	}
	if g.frames%game.MajorTick == 0 {
		g.player.Update(false)
		g.sim.MajorTick()
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.canvas.Target = dst

	if g.load != nil && !g.load.Done {
		bar := image.Rect(screenWidth/4, screenHeight/2-10, 3*screenWidth/4, screenHeight/2+10)
		g.canvas.ProgressBar(bar, g.load.Step, g.load.Max, render.TranslateColorShade(render.HueSkyBlue, render.ShadeLight))
		env := render.DrawEnv{Font: g.font, Pictures: g.pics}
		for _, it := range g.intro {
			if render.ItemBounds(it, g.font).Overlaps(bar) {
				continue
			}
			if err := render.DrawItem(g.canvas, it, env); err != nil {
				logger.Log.WithError(err).WithField("item", render.ItemKind(it)).Debug("skipping interface item")
			}
		}
		return
	}

	field := image.Rect(0, 0, panelX, screenHeight)
	view := g.sim.ViewFor(field)
	g.player.View = view
	g.sim.DrawScene(g.canvas, g.font, view)
	g.drawPanel()
	g.drawPage()

	if g.showFPS {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, 4)
	}
}

// drawPanel draws the minicomputer menu.
func (g *Game) drawPanel() {
	frame := render.TranslateColorShade(render.HueIndigo, render.ShadeDark)
	g.canvas.FillRect(image.Rect(panelX, 0, panelX+1, screenHeight), frame)

	m := g.player.Mini
	at := image.Pt(m.Bounds.Min.X, m.Bounds.Min.Y)
	for _, line := range m.Lines() {
		fore := render.TranslateColorShade(render.HueIndigo, render.ShadeLight)
		back := render.Black
		if line.Selected {
			fore, back = back, fore
		}
		t := render.Plain(line.Text, render.WrapMetrics{Font: g.font, Width: m.Bounds.Dx()}, fore, back)
		t.Draw(g.canvas, image.Rectangle{Min: at, Max: at.Add(image.Pt(m.Bounds.Dx(), m.LineHeight))})
		at.Y += m.LineHeight
	}
}

// drawPage draws the current message page as retro text along the bottom.
func (g *Game) drawPage() {
	page, ok := g.sim.Messages.Page()
	if !ok {
		return
	}
	bounds := image.Rect(16, screenHeight-120, panelX-16, screenHeight-40)
	t, err := render.Retro(page, render.WrapMetrics{Font: g.font, Width: bounds.Dx(), LineSpacing: 2}, render.White, render.Black)
	if err != nil {
		t = render.Plain(page, render.WrapMetrics{Font: g.font, Width: bounds.Dx()}, render.White, render.Black)
	}
	t.Draw(g.canvas, bounds)
	g.input.copyText = t.Text()
}

func seed() int64 { return time.Now().UnixNano() }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	logger.Init()

	level := flag.Int("level", -1, "level to start (default from prefs)")
	scenarioDir := flag.String("scenarios", "", "directory of installed scenarios")
	scenario := flag.String("scenario", "", "scenario identifier (default from prefs)")
	flag.Parse()

	userPath, err := config.UserPath()
	if err != nil {
		logger.Log.WithError(err).Warn("no user config dir")
	}
	prefs, err := config.Load(assets.Prefs, userPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load prefs")
	}
	if *scenarioDir != "" {
		prefs.ScenarioDir = *scenarioDir
	}
	if *scenario != "" {
		prefs.Scenario = *scenario
	}
	if *level >= 0 {
		prefs.Level = *level
	}

	scenarioFS, err := openScenario(prefs)
	if err != nil {
		logger.Log.WithError(err).Fatal("open scenario")
	}

	g, err := NewGame(prefs, scenarioFS, prefs.Level)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	defer g.speaker.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.WithError(err).Fatal("run game")
	}
}

// openScenario returns the installed scenario's files, or nil for the
// factory scenario.
func openScenario(p config.Prefs) (fs.FS, error) {
	if p.Scenario == "" || p.Scenario == world.FactoryScenario {
		return nil, nil
	}
	if p.ScenarioDir == "" {
		return nil, fmt.Errorf("scenario %q needs a scenario directory", p.Scenario)
	}
	root := os.DirFS(p.ScenarioDir)
	entries, err := world.ListScenarios(world.ScenarioEntry{Identifier: world.FactoryScenario}, root)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Identifier == p.Scenario {
			return fs.Sub(root, p.Scenario)
		}
	}
	return nil, fmt.Errorf("scenario %q not installed in %s", p.Scenario, p.ScenarioDir)
}
