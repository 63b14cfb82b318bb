// Weaveview shows the tile weave of an image live, easing toward every
// parameter change.
//
//	1-4 / P   select / cycle pattern
//	S         new scatter seed
//	+ / -     tile size
//	arrows    horizontal and vertical shift
//	[ / ]     scatter intensity
//	, / .     opacity
//	R         restart the transition from the unwoven image
//	E         export the current frame
//	H         toggle the status line
//	Esc       quit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tile-weaver/internal/anim"
	"tile-weaver/internal/config"
	"tile-weaver/internal/imageio"
	"tile-weaver/internal/raster"
	"tile-weaver/internal/weave"
)

const maxWindow = 1280

type game struct {
	cfg    config.Config
	driver *anim.Driver
	src    *raster.Raster

	frame   *ebiten.Image
	pix     []byte
	status  string
	showHUD bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.driver.Load(g.src)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.export()
	}

	target := g.driver.State().Target
	changed := false
	for key, act := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			target = adjust(target, act)
			changed = true
		}
	}
	if changed {
		g.driver.SetTarget(target)
	}

	g.driver.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.driver.View(func(out *raster.Raster) {
		if out.Width == 0 || out.Height == 0 {
			return
		}
		if g.frame == nil || g.frame.Bounds().Dx() != out.Width || g.frame.Bounds().Dy() != out.Height {
			g.frame = ebiten.NewImage(out.Width, out.Height)
			g.pix = make([]byte, len(out.Color))
		}
		premultiply(g.pix, out.Color)
	})
	if g.frame == nil {
		return
	}
	g.frame.WritePixels(g.pix)

	cur := g.driver.State().Current
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(cur.Opacity / 100))
	screen.DrawImage(g.frame, op)

	if g.showHUD {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"%s tile=%d shift=(%.0f,%.0f) scatter=%.0f%% seed=%d opacity=%.0f%%  FPS %.0f\n%s",
			cur.Pattern, cur.EffectiveTileSize(), cur.HorizontalShift, cur.VerticalShift,
			cur.ScatterIntensity, cur.Seed, cur.Opacity, ebiten.ActualFPS(), g.status))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.src.Width, g.src.Height
}

func (g *game) export() {
	path, err := imageio.Export(g.cfg.OutputDir, g.cfg.Prefix, g.driver.Snapshot(), g.cfg.ExportFormat(), time.Now())
	if err != nil {
		g.status = fmt.Sprintf("export failed: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %s\n", g.status)
		return
	}
	g.status = "wrote " + path
	fmt.Println(g.status)
}

// premultiply converts straight-alpha RGBA into the premultiplied layout
// ebiten expects.
func premultiply(dst, src []uint8) {
	for i := 0; i+3 < len(src); i += 4 {
		a := uint16(src[i+3])
		if a == 255 {
			copy(dst[i:i+4], src[i:i+4])
			continue
		}
		dst[i] = uint8((uint16(src[i])*a + 127) / 255)
		dst[i+1] = uint8((uint16(src[i+1])*a + 127) / 255)
		dst[i+2] = uint8((uint16(src[i+2])*a + 127) / 255)
		dst[i+3] = uint8(a)
	}
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Source image to weave")
	outputDir := flag.String("output", "", "Export directory (default: weave-output)")
	format := flag.String("format", "", "Export format: png or webp (default: png)")
	maxDim := flag.Int("max-dim", 0, "Scale the input down so neither side exceeds this")
	flag.Parse()

	cfg := config.Config{Weave: weave.DefaultConfig()}
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatal(err)
		}
	}
	cfg.Resolve(config.Flags{
		Input:     *input,
		OutputDir: *outputDir,
		Format:    *format,
		MaxDim:    *maxDim,
	})
	if cfg.Input == "" {
		log.Fatal("no input image; use -input")
	}

	src, err := imageio.Load(cfg.Input, cfg.MaxDim)
	if err != nil {
		log.Fatal(err)
	}

	driver := anim.NewDriver(cfg.DriverConfig(), cfg.Weave)
	driver.Load(src)

	g := &game{cfg: cfg, driver: driver, src: src, showHUD: true}

	ww, wh := imageio.FitSize(src.Width, src.Height, maxWindow)
	ebiten.SetWindowTitle("weaveview - " + cfg.Input)
	ebiten.SetWindowSize(ww, wh)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
