package behaviors

import (
	"strconv"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Item is a collectible worth Entity.Score points.
type Item struct {
	entity.BaseBehavior
}

func newItem(kind entity.Kind, score int, size float64) *entity.Entity {
	e := sized(kind, Item{}, size, size)
	e.Score = score
	e.BlockingSpace = false
	e.IgnoreGravity = true
	e.HAlign = entity.AlignCenter
	e.VAlign = entity.AlignCenter
	return e
}

// NewDonut builds a donut worth 50 points.
func NewDonut() *entity.Entity {
	return newItem(KindDonut, 50, 36)
}

// NewCup builds a golden cup worth 700 points.
func NewCup() *entity.Entity {
	return newItem(KindCup, 700, 46)
}

func (Item) OnPlayerCollision(e *entity.Entity) {
	w := e.World()
	if w == nil || !e.IsAlive() {
		return
	}
	e.Kill()
	w.AddScore(e.Score)
	w.AddPopup(strconv.Itoa(e.Score), e.Bounds.CenterX(), e.Bounds.CenterY())
}
