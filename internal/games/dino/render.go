package dino

import (
	"fmt"

	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

// Visual characters for rendering
const (
	GroundChar  = '═'
	GravelChar  = '·'
	CactusSmall = '▓'
	CactusLarge = '█'
)

var cactusTops = []rune{'╻', '┃', '╋'}

var cloudSprite = []string{
	" .--. ",
	"(____)",
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.driver.State()
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	groundRow := toCellRounded(s.GroundY, ch)

	// Clouds sit behind everything else
	dst.SetColor(core.ColorCloud)
	for _, c := range s.Clouds {
		dst.DrawSprite(toCell(c.X, cw), toCell(c.Y, ch), cloudSprite)
	}

	// Draw ground
	dst.SetColor(core.ColorGround)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar)
	g.drawGravel(dst, s, groundRow+1)

	// Draw obstacles
	dst.SetColor(core.ColorCactus)
	for _, o := range s.Obstacles {
		g.drawCactus(dst, o, groundRow)
	}

	// Draw player
	skin := SkinFor(s.Runner.Character)
	dst.SetColor(skin.Color)
	frame := skin.Frame(s.Runner)
	bottom := toCellRounded(s.Runner.Y+s.Runner.Height, ch)
	dst.DrawSprite(toCell(s.Runner.X, cw), bottom-len(frame), frame)

	g.drawHUD(dst, s, skin)

	switch s.Status {
	case engine.StatusReady:
		g.drawCenteredMessage(dst, "DINO RUN", "Space to start  |  ←/→ change dino")
	case engine.StatusPaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P or Esc to resume")
	case engine.StatusOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %05d  |  Space to retry", s.DisplayScore()))
	}
}

// drawGravel scrolls a sparse texture under the ground line with the run.
func (g *Game) drawGravel(dst *core.Screen, s *engine.State, row int) {
	dst.SetColor(core.ColorDim)
	travelled := s.Elapsed() / 1000 * s.ScrollSpeed
	offset := toCell(travelled, g.cfg.Render.CellWidth)
	for x := 0; x < dst.Width(); x++ {
		if (x+offset)%7 == 0 || (x+offset)%11 == 3 {
			dst.Set(x, row, GravelChar)
		}
	}
}

// drawCactus renders a single obstacle standing on the ground row.
func (g *Game) drawCactus(dst *core.Screen, o engine.Obstacle, groundRow int) {
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	x := toCell(o.X, cw)
	w := max(1, toCellRounded(o.Width, cw))
	h := max(1, toCellRounded(o.Height, ch))

	fill := CactusSmall
	if o.Size == engine.SizeLarge {
		fill = CactusLarge
	}
	body := core.NewRect(x, groundRow-h, w, h)
	if !body.Intersects(dst.Bounds()) {
		return
	}
	dst.DrawRect(body, fill)
	dst.Set(x+w/2, groundRow-h-1, cactusTops[o.Variant%len(cactusTops)])
}

// drawHUD renders score, high score, speed and skin.
func (g *Game) drawHUD(dst *core.Screen, s *engine.State, skin Skin) {
	dst.SetColor(core.ColorHUD)
	scoreText := fmt.Sprintf(" HI %05d  %05d ", g.HighScore(), s.DisplayScore())
	dst.DrawText(dst.Width()-len(scoreText)-1, 0, scoreText)

	dst.SetColor(core.ColorDim)
	info := fmt.Sprintf(" %s  SPD %.0f ", skin.Name, s.ScrollSpeed)
	if g.difficulty.IsEnabled() {
		info += fmt.Sprintf(" LV %.1f ", g.Level())
	}
	dst.DrawText(1, 0, info)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.SetColor(core.ColorAlert)
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawTextCentered(boxY+1, title)

	dst.SetColor(core.ColorDefault)
	dst.DrawTextCentered(boxY+3, subtitle)
}
