package dino

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

// Skin is the rune art and color for one character.
type Skin struct {
	Name   string
	Color  core.Color
	Run1   []string
	Run2   []string
	Jump   []string
	Crouch []string
}

// Frame picks the sprite for the runner's current posture.
func (s Skin) Frame(r engine.Runner) []string {
	switch {
	case r.IsJumping:
		return s.Jump
	case r.Crouching:
		return s.Crouch
	case r.RunFrame == 2:
		return s.Run2
	default:
		return s.Run1
	}
}

func newSkin(name string, color core.Color, eye rune) Skin {
	head := "  ▄" + string(eye) + "▀"
	return Skin{
		Name:  name,
		Color: color,
		Run1: []string{
			head,
			"▐███ ",
			" ▌ ▐ ",
		},
		Run2: []string{
			head,
			"▐███ ",
			"  ▌▐ ",
		},
		Jump: []string{
			head,
			"▐███ ",
			" ▀ ▀ ",
		},
		Crouch: []string{
			"▐███▄" + string(eye),
			" ▌ ▐  ",
		},
	}
}

// skins maps every character to its skin in display order.
var skins = func() *orderedmap.OrderedMap[engine.Character, Skin] {
	m := orderedmap.NewOrderedMap[engine.Character, Skin]()
	m.Set(engine.CharacterDoux, newSkin("Doux", core.ColorSkinBlue, '▆'))
	m.Set(engine.CharacterMort, newSkin("Mort", core.ColorSkinRed, '▇'))
	m.Set(engine.CharacterTard, newSkin("Tard", core.ColorSkinYellow, '▆'))
	m.Set(engine.CharacterVita, newSkin("Vita", core.ColorSkinGreen, '█'))
	return m
}()

// SkinFor returns the skin of c, falling back to the first skin.
func SkinFor(c engine.Character) Skin {
	if s, ok := skins.Get(c); ok {
		return s
	}
	return skins.Front().Value
}

// Skins returns every skin in display order.
func Skins() []Skin {
	out := make([]Skin, 0, skins.Len())
	for el := skins.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// CycleCharacter returns the character dir steps away from c, wrapping around.
func CycleCharacter(c engine.Character, dir int) engine.Character {
	keys := skins.Keys()
	idx := 0
	for i, k := range keys {
		if k == c {
			idx = i
			break
		}
	}
	n := len(keys)
	return keys[((idx+dir)%n+n)%n]
}
