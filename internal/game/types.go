package game

import "strings"

// --- Enums ---

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseStartTurn
	PhaseAction
	PhaseDiscard
	PhaseEndTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseStartTurn:
		return "Start Turn"
	case PhaseAction:
		return "Action"
	case PhaseDiscard:
		return "Discard"
	case PhaseEndTurn:
		return "End Turn"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// Side identifies one of the two players.
type Side int

const (
	SideNone Side = iota
	SideRunner
	SideCorp
)

func (s Side) String() string {
	switch s {
	case SideRunner:
		return "runner"
	case SideCorp:
		return "corp"
	default:
		return "none"
	}
}

type CardType int

const (
	CardTypeProgram CardType = iota
	CardTypeIcebreaker
	CardTypeHardware
	CardTypeResource
	CardTypeEvent
	CardTypeVirus
	CardTypeIce
	CardTypeAgenda
	CardTypeAsset
	CardTypeUpgrade
	CardTypeOperation
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeProgram:
		return "Program"
	case CardTypeIcebreaker:
		return "Icebreaker"
	case CardTypeHardware:
		return "Hardware"
	case CardTypeResource:
		return "Resource"
	case CardTypeEvent:
		return "Event"
	case CardTypeVirus:
		return "Virus"
	case CardTypeIce:
		return "Ice"
	case CardTypeAgenda:
		return "Agenda"
	case CardTypeAsset:
		return "Asset"
	case CardTypeUpgrade:
		return "Upgrade"
	case CardTypeOperation:
		return "Operation"
	default:
		return "Unknown"
	}
}

// ParseCardType maps a type name (case-insensitive) to a CardType.
func ParseCardType(s string) (CardType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "program":
		return CardTypeProgram, true
	case "icebreaker":
		return CardTypeIcebreaker, true
	case "hardware":
		return CardTypeHardware, true
	case "resource":
		return CardTypeResource, true
	case "event":
		return CardTypeEvent, true
	case "virus":
		return CardTypeVirus, true
	case "ice":
		return CardTypeIce, true
	case "agenda":
		return CardTypeAgenda, true
	case "asset":
		return CardTypeAsset, true
	case "upgrade":
		return CardTypeUpgrade, true
	case "operation":
		return CardTypeOperation, true
	default:
		return CardTypeProgram, false
	}
}

// consumesMemory reports whether installing this card type occupies memory units.
func (ct CardType) consumesMemory() bool {
	switch ct {
	case CardTypeProgram, CardTypeIcebreaker, CardTypeVirus:
		return true
	default:
		return false
	}
}

// IceClass is the defensive class of a piece of ICE.
type IceClass int

const (
	IceClassNone IceClass = iota
	IceClassBarrier
	IceClassCodeGate
	IceClassSentry
	IceClassAll // breaker-side wildcard: matches any class
)

func (c IceClass) String() string {
	switch c {
	case IceClassBarrier:
		return "Barrier"
	case IceClassCodeGate:
		return "Code Gate"
	case IceClassSentry:
		return "Sentry"
	case IceClassAll:
		return "all"
	default:
		return "none"
	}
}

// ParseIceClass maps a class name (case-insensitive) to an IceClass.
func ParseIceClass(s string) (IceClass, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "barrier":
		return IceClassBarrier, true
	case "code gate", "code_gate", "codegate":
		return IceClassCodeGate, true
	case "sentry":
		return IceClassSentry, true
	case "all":
		return IceClassAll, true
	default:
		return IceClassNone, false
	}
}

// Approach is the posture the runner takes on a run.
type Approach int

const (
	ApproachStandard Approach = iota
	ApproachStealth
	ApproachAggressive
	ApproachCareful
)

func (a Approach) String() string {
	switch a {
	case ApproachStealth:
		return "stealth"
	case ApproachAggressive:
		return "aggressive"
	case ApproachCareful:
		return "careful"
	default:
		return "standard"
	}
}

// Zone is the location of a card instance.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZoneInstalled
	ZoneHeap
)

func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneInstalled:
		return "Installed"
	case ZoneHeap:
		return "Heap"
	default:
		return "Unknown"
	}
}

// Trigger identifies the event that causes the ability engine to run.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerInstall
	TriggerPlay
	TriggerTurnStart
	TriggerSuccessfulRun
	TriggerEncounterIce
	TriggerDamage
	TriggerJackOut
	TriggerUse
)

func (t Trigger) String() string {
	switch t {
	case TriggerInstall:
		return "install"
	case TriggerPlay:
		return "play"
	case TriggerTurnStart:
		return "turn_start"
	case TriggerSuccessfulRun:
		return "successful_run"
	case TriggerEncounterIce:
		return "encounter_ice"
	case TriggerDamage:
		return "damage"
	case TriggerJackOut:
		return "jack_out"
	case TriggerUse:
		return "use"
	default:
		return "none"
	}
}

// ParseTrigger maps a trigger name to a Trigger.
func ParseTrigger(s string) (Trigger, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "install":
		return TriggerInstall, true
	case "play":
		return TriggerPlay, true
	case "turn_start":
		return TriggerTurnStart, true
	case "successful_run":
		return TriggerSuccessfulRun, true
	case "encounter_ice":
		return TriggerEncounterIce, true
	case "damage":
		return TriggerDamage, true
	case "jack_out":
		return TriggerJackOut, true
	case "use":
		return TriggerUse, true
	default:
		return TriggerNone, false
	}
}
