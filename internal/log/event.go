package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventTurnStart EventType = iota
	EventPhaseChange
	EventDraw
	EventInstall
	EventPlay
	EventDiscard
	EventAbility
	EventRunBegin
	EventIceApproach
	EventIceBypass
	EventIceBreak
	EventIceDamage
	EventJackOut
	EventAccess
	EventAgendaScore
	EventCreditChange
	EventDamage
	EventCorpAction
	EventCorpScore
	EventWin
	EventShuffle
)

func (e EventType) String() string {
	switch e {
	case EventTurnStart:
		return "TurnStart"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventInstall:
		return "Install"
	case EventPlay:
		return "Play"
	case EventDiscard:
		return "Discard"
	case EventAbility:
		return "Ability"
	case EventRunBegin:
		return "RunBegin"
	case EventIceApproach:
		return "IceApproach"
	case EventIceBypass:
		return "IceBypass"
	case EventIceBreak:
		return "IceBreak"
	case EventIceDamage:
		return "IceDamage"
	case EventJackOut:
		return "JackOut"
	case EventAccess:
		return "Access"
	case EventAgendaScore:
		return "AgendaScore"
	case EventCreditChange:
		return "CreditChange"
	case EventDamage:
		return "Damage"
	case EventCorpAction:
		return "CorpAction"
	case EventCorpScore:
		return "CorpScore"
	case EventWin:
		return "Win"
	case EventShuffle:
		return "Shuffle"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number, assigned by the logger
	Turn    int       // turn the event occurred on
	Phase   string    // phase name at the time of the event
	Side    string    // "runner" or "corp" (empty for neutral events)
	Type    EventType // event kind
	Card    string    // card name, if the event concerns a card
	Server  string    // server name, for run-related events
	Value   int       // credits gained/lost, damage dealt, points scored
	Details string    // human-readable description
}
