package entities

import "fmt"

// Actor is a tagged reference to either the player or an enemy. Exactly one
// of Player or Enemy is set, matching Kind.
type Actor struct {
	Kind   Kind
	Player *Player
	Enemy  *Enemy
}

// PlayerActor wraps p
func PlayerActor(p *Player) Actor {
	return Actor{Kind: KindPlayer, Player: p}
}

// EnemyActor wraps e
func EnemyActor(e *Enemy) Actor {
	return Actor{Kind: KindEnemy, Enemy: e}
}

// Combatant returns the shared combat state behind the reference
func (a Actor) Combatant() *Combatant {
	switch a.Kind {
	case KindPlayer:
		return &a.Player.Combatant
	case KindEnemy:
		return &a.Enemy.Combatant
	default:
		panic(fmt.Sprintf("entities: unknown actor kind %q", a.Kind))
	}
}

// GetID implements core.Entity
func (a Actor) GetID() string {
	switch a.Kind {
	case KindPlayer:
		return a.Player.GetID()
	case KindEnemy:
		return a.Enemy.GetID()
	default:
		return ""
	}
}

// GetType implements core.Entity
func (a Actor) GetType() string {
	return string(a.Kind)
}

// Name returns the display name
func (a Actor) Name() string {
	return a.Combatant().Name
}
