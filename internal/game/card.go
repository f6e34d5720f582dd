package game

import (
	"fmt"
	"strings"
)

// --- Card definition (static, from the catalog) ---

// Card is an immutable card definition. Instances on the table wrap a Card
// in a CardInstance; the definition itself is never mutated after load.
type Card struct {
	Name        string
	Type        CardType
	Subtype     string
	Cost        int
	MemoryUnits int
	Strength    int
	Description string
	Ability     *Ability // nil for vanilla cards
}

func (c *Card) String() string {
	return c.Name
}

// --- Ability descriptors ---

// AbilityKind discriminates the Ability variant. Exactly one kind applies
// per descriptor; the ability engine switches exhaustively over it.
type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityBreakIce
	AbilityPermanent
	AbilityTrigger
	AbilityOneTime
	AbilityResource
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityBreakIce:
		return "break_ice"
	case AbilityPermanent:
		return "permanent"
	case AbilityTrigger:
		return "trigger"
	case AbilityOneTime:
		return "one_time"
	case AbilityResource:
		return "resource"
	default:
		return "none"
	}
}

// EffectKind identifies a single resolvable effect.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectGainCredits
	EffectDrawCards
	EffectIncreaseMemory
	EffectIncreaseHandSize
	EffectBypassIce
	EffectPreventDamage
	EffectJackOutAssist
)

func (e EffectKind) String() string {
	switch e {
	case EffectGainCredits:
		return "gain_credits"
	case EffectDrawCards:
		return "draw_cards"
	case EffectIncreaseMemory:
		return "increase_memory"
	case EffectIncreaseHandSize:
		return "increase_hand_size"
	case EffectBypassIce:
		return "bypass_ice"
	case EffectPreventDamage:
		return "prevent_damage"
	case EffectJackOutAssist:
		return "jack_out_assist"
	default:
		return "none"
	}
}

// ParseEffectKind maps an effect name to an EffectKind.
func ParseEffectKind(s string) (EffectKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gain_credits":
		return EffectGainCredits, true
	case "draw_cards", "draw":
		return EffectDrawCards, true
	case "increase_memory":
		return EffectIncreaseMemory, true
	case "increase_hand_size":
		return EffectIncreaseHandSize, true
	case "bypass_ice":
		return EffectBypassIce, true
	case "prevent_damage":
		return EffectPreventDamage, true
	case "jack_out_assist":
		return EffectJackOutAssist, true
	default:
		return EffectNone, false
	}
}

// Frequency limits how often a triggered ability may fire.
type Frequency int

const (
	FrequencyAlways Frequency = iota
	FrequencyPerTurn
)

// Effect is one (kind, value) pair inside a descriptor.
type Effect struct {
	Kind  EffectKind
	Value int
}

// Ability is the tagged-variant ability descriptor attached to a Card.
// Only the fields for the active Kind are meaningful.
type Ability struct {
	Kind AbilityKind

	// AbilityBreakIce
	IceClasses     []IceClass // classes this breaker answers; IceClassAll matches any
	MaxStrength    int        // strongest ICE this breaker can handle
	SubroutineCap  int        // 0 = unlimited
	// AbilityPermanent: applied once at install
	// AbilityOneTime: consumed on play
	Effects []Effect

	// AbilityTrigger
	Event     Trigger
	Effect    Effect
	Frequency Frequency

	// AbilityResource
	Counters      int    // counters placed when installed
	ConsumableFor string // action tag the counters pay for
}

// BreaksClass reports whether the descriptor's eligible set covers the class.
func (a *Ability) BreaksClass(class IceClass) bool {
	for _, c := range a.IceClasses {
		if c == IceClassAll || c == class {
			return true
		}
	}
	return false
}

// --- CardInstance (runtime card in a zone) ---

// CardInstance is a Card plus instance-only mutable state. A card instance
// is owned by exactly one zone collection at a time; moving a card between
// zones preserves its identity so counters survive the move.
type CardInstance struct {
	Card *Card
	ID   int // unique instance ID within a game

	Zone         Zone
	Counters     int  // remaining resource counters
	UsedThisTurn bool // per-turn trigger flag, reset at turn start
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

// DisplayString returns a hand/rig listing entry for the card.
func (ci *CardInstance) DisplayString() string {
	c := ci.Card
	s := fmt.Sprintf("%s - %s", c.Name, c.Type)
	if c.Cost > 0 || c.MemoryUnits > 0 {
		s += fmt.Sprintf(" - %dc %dmu", c.Cost, c.MemoryUnits)
	}
	if ci.Counters > 0 {
		s += fmt.Sprintf(" [%d counters]", ci.Counters)
	}
	return s
}

// --- ICE ---

// Ice is a defensive obstacle generated for a run.
type Ice struct {
	Name        string
	Class       IceClass
	Cost        int
	Strength    int
	Subroutines int
	Description string
}

func (ice Ice) String() string {
	return fmt.Sprintf("%s (%s, strength %d)", ice.Name, ice.Class, ice.Strength)
}
