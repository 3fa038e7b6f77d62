// Package behaviors implements the concrete entity kinds: the player,
// creatures, machines and collectible items. Importing the package
// registers every kind with the entity registry.
package behaviors

import (
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// Kind tags used by levels.
const (
	KindPlayer      entity.Kind = "player"
	KindSnail       entity.Kind = "snail"
	KindJumper      entity.Kind = "jumper"
	KindSpringboard entity.Kind = "springboard"
	KindTreadmill   entity.Kind = "treadmill"
	KindCannon      entity.Kind = "cannon"
	KindCannonLeft  entity.Kind = "cannon-left"
	KindCannonUp    entity.Kind = "cannon-up"
	KindCannonDown  entity.Kind = "cannon-down"
	KindCannonBall  entity.Kind = "cannonball"
	KindBox         entity.Kind = "box"
	KindDonut       entity.Kind = "donut"
	KindCup         entity.Kind = "cup"
	KindSpikes      entity.Kind = "spikes"
	KindPlatform    entity.Kind = "platform"
	KindSwitch      entity.Kind = "switch"
	KindTrap        entity.Kind = "trap"
)

func init() {
	entity.Register(KindPlayer, NewPlayer)
	entity.Register(KindSnail, NewSnail)
	entity.Register(KindJumper, NewJumper)
	entity.Register(KindSpringboard, NewSpringboard)
	entity.Register(KindTreadmill, NewTreadmill)
	entity.Register(KindCannon, NewCannon)
	entity.Register(KindCannonLeft, NewCannonLeft)
	entity.Register(KindCannonUp, NewCannonUp)
	entity.Register(KindCannonDown, NewCannonDown)
	entity.Register(KindCannonBall, func() *entity.Entity { return NewCannonBall(HeadingEast) })
	entity.Register(KindBox, NewBox)
	entity.Register(KindDonut, NewDonut)
	entity.Register(KindCup, NewCup)
	entity.Register(KindSpikes, NewSpikes)
	entity.Register(KindPlatform, NewPlatform)
	entity.Register(KindSwitch, NewSwitch)
	entity.Register(KindTrap, NewTrap)
}

// killPlayer kills the world's player, if any.
func killPlayer(e *entity.Entity) {
	if w := e.World(); w != nil {
		if p := w.Player(); p != nil {
			p.Kill()
		}
	}
}

// powered marks e as power supported and switched on.
func powered(e *entity.Entity) *entity.Entity {
	e.PowerSupported = true
	e.PowerOn = true
	return e
}

// sized builds an entity of the given size.
func sized(kind entity.Kind, b entity.Behavior, w, h float64) *entity.Entity {
	e := entity.New(kind, b)
	e.SetSize(w, h)
	return e
}
