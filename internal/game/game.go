// Package game implements the duel state machine: the runner's turn loop,
// the command dispatcher, the run resolver and the ability engine.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/ai"
	"github.com/peterkuimelis/neondominance/internal/log"
)

const (
	startingCredits = 5
	baseMemory      = 4
	baseHandLimit   = 5
	clicksPerTurn   = 4
	pointsToWin     = 7
	openingHand     = 5
)

// Config carries everything needed to set up a duel.
type Config struct {
	// Catalog is the runner's card pool. The deck is built from it in
	// catalog order before the optional shuffle.
	Catalog []*Card

	// Renderer receives player-facing output. Defaults to NopRenderer.
	Renderer Renderer

	// Logger receives the event stream. Defaults to a MemoryLogger.
	Logger log.EventLogger

	// Seed fixes all randomness: deck shuffle, opponent strategy and
	// opponent action selection.
	Seed int64

	// NoShuffle keeps the deck in catalog order. Tests use this to set up
	// exact draw sequences.
	NoShuffle bool
}

type commandHandler func(g *Game, args []string) error

type command struct {
	name    string
	summary string
	handler commandHandler
}

// Game is a single duel between the human runner and the automated
// Corporation. It is not safe for concurrent use; callers serialize access.
type Game struct {
	renderer Renderer
	logger   log.EventLogger
	rng      *rand.Rand

	turn  int
	phase Phase

	clicks    int
	maxClicks int
	credits   int

	deck      []*CardInstance
	hand      []*CardInstance
	installed []*CardInstance
	heap      []*CardInstance

	runnerPoints int

	run           *Run
	pendingBypass int // bypass tokens staged for the next run
	corp          *ai.Opponent

	over       bool
	winner     Side
	winMessage string

	commands map[string]*command
	nextID   int
}

// New builds a duel from the config. It returns an error when the catalog is
// empty; everything else has a default.
func New(cfg Config) (*Game, error) {
	if len(cfg.Catalog) == 0 {
		return nil, errors.New("game: catalog is empty")
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NopRenderer{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	g := &Game{
		renderer:  renderer,
		logger:    logger,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		phase:     PhaseSetup,
		maxClicks: clicksPerTurn,
		credits:   startingCredits,
		corp:      ai.New(cfg.Seed + 1),
	}
	g.commands = commandTable()

	for _, c := range cfg.Catalog {
		g.nextID++
		g.deck = append(g.deck, &CardInstance{
			Card:     c,
			ID:       g.nextID,
			Zone:     ZoneDeck,
			Counters: abilityCounters(c),
		})
	}
	if !cfg.NoShuffle {
		g.rng.Shuffle(len(g.deck), func(i, j int) {
			g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
		})
		g.record(log.GameEvent{Type: log.EventShuffle, Value: len(g.deck), Details: "deck shuffled"})
	}

	return g, nil
}

func abilityCounters(c *Card) int {
	if c.Ability != nil && c.Ability.Kind == AbilityResource {
		return c.Ability.Counters
	}
	return 0
}

// Start deals the opening hand and begins the first runner turn.
func (g *Game) Start() {
	g.renderer.Emit("Welcome to the grid. Type 'help' for commands, 'man <command>' for details.")
	g.drawCards(openingHand)
	g.startTurn()
}

// startTurn advances the turn counter and hands control to whichever side
// owns the new turn. Runner turns are odd, Corporation turns even; the
// Corporation's turn resolves immediately and play falls through back to the
// runner.
func (g *Game) startTurn() {
	if g.over {
		return
	}
	g.turn++
	g.phase = PhaseStartTurn

	if g.turn%2 == 0 {
		g.corpTurn()
		return
	}

	g.clicks = g.maxClicks
	for _, ci := range g.installed {
		ci.UsedThisTurn = false
	}
	g.record(log.GameEvent{
		Type:    log.EventTurnStart,
		Side:    SideRunner.String(),
		Details: fmt.Sprintf("runner turn %d begins", g.turn),
	})
	g.renderer.Emit(fmt.Sprintf("--- Turn %d (you) ---", g.turn))

	// Start-of-turn triggers fire in install order.
	for _, ci := range g.installed {
		if msg, ok := g.resolveAbility(ci, TriggerTurnStart, nil); ok {
			g.renderer.Emit(msg)
		}
	}

	g.setPhase(PhaseAction)
	g.renderer.UpdateStatus(g.statusLine())
}

// corpTurn runs the automated opponent's whole turn, then returns control to
// the runner.
func (g *Game) corpTurn() {
	g.record(log.GameEvent{
		Type:    log.EventTurnStart,
		Side:    SideCorp.String(),
		Details: fmt.Sprintf("corporation turn %d begins", g.turn),
	})
	g.renderer.Emit(fmt.Sprintf("--- Turn %d (Corporation) ---", g.turn))

	before := g.corp.AgendaPoints()
	view := ai.TurnView{
		Turn:           g.turn,
		RunnerCredits:  g.credits,
		RunnerPoints:   g.runnerPoints,
		RunnerPrograms: len(g.installed),
		RunnerHandSize: len(g.hand),
	}
	for _, line := range g.corp.TakeTurn(view) {
		g.renderer.Emit("  " + line)
		g.record(log.GameEvent{Type: log.EventCorpAction, Side: SideCorp.String(), Details: line})
	}
	if gained := g.corp.AgendaPoints() - before; gained > 0 {
		g.record(log.GameEvent{
			Type:  log.EventCorpScore,
			Side:  SideCorp.String(),
			Value: gained,
		})
	}

	if g.checkWinConditions() {
		return
	}
	g.startTurn()
}

// Execute parses and runs one command line. It returns ErrGameOver once the
// game has been decided, *InvalidCommandError for unknown verbs, and
// *PreconditionError when a known command cannot legally run. Failed
// commands leave the game state untouched.
func (g *Game) Execute(line string) error {
	if g.over {
		err := ErrGameOver
		g.renderer.EmitError(g.winMessage)
		return err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb := strings.ToLower(fields[0])

	var err error
	cmd, ok := g.commands[verb]
	if !ok {
		err = &InvalidCommandError{Name: verb}
	} else {
		err = g.checkCommandPhase(verb)
	}
	if err == nil {
		err = cmd.handler(g, fields[1:])
	}
	if err != nil {
		g.renderer.EmitError(err.Error())
	}

	g.checkWinConditions()
	if !g.over {
		g.renderer.UpdateStatus(g.statusLine())
	}
	return err
}

// checkCommandPhase enforces the phase and run-state constraints that apply
// before a command's own preconditions.
func (g *Game) checkCommandPhase(verb string) error {
	if g.phase == PhaseDiscard {
		switch verb {
		case "discard", "hand", "help", "man", "info", "system", "credits", "memory", "installed":
			return nil
		}
		return preconditionf("you are over your hand limit; discard down to %d first", g.handLimit())
	}

	if g.run != nil {
		switch verb {
		case "run", "jack_out", "hand", "installed", "help", "man", "info", "system", "credits", "memory":
			return nil
		}
		return preconditionf("cannot do that during a run; continue with 'run' or 'jack_out'")
	}
	return nil
}

// checkWinConditions evaluates every end condition in priority order and
// finishes the game on the first that holds. It reports whether the game
// ended.
func (g *Game) checkWinConditions() bool {
	if g.over {
		return true
	}
	switch {
	case g.runnerPoints >= pointsToWin:
		g.finishGame(SideRunner, fmt.Sprintf("You reached %d agenda points. The grid is yours.", g.runnerPoints))
	case g.corp.AgendaPoints() >= pointsToWin:
		g.finishGame(SideCorp, fmt.Sprintf("The Corporation scored %d agenda points. You are locked out.", g.corp.AgendaPoints()))
	case len(g.deck) == 0 && len(g.hand) == 0:
		g.finishGame(SideCorp, "You are out of cards. The Corporation outlasts you.")
	case g.corp.CardsRemaining() <= 0:
		g.finishGame(SideRunner, "The Corporation's servers are bled dry. You win.")
	default:
		return false
	}
	return true
}

func (g *Game) finishGame(winner Side, message string) {
	g.over = true
	g.winner = winner
	g.winMessage = message
	g.phase = PhaseGameOver
	g.run = nil
	g.record(log.GameEvent{Type: log.EventWin, Side: winner.String(), Details: message})
	g.renderer.EmitSuccess("=== GAME OVER ===")
	g.renderer.Emit(message)
}

func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	g.phase = p
	g.record(log.GameEvent{Type: log.EventPhaseChange, Details: p.String()})
}

// drawCards moves up to n cards from the top of the deck into hand.
func (g *Game) drawCards(n int) int {
	drawn := 0
	for i := 0; i < n && len(g.deck) > 0; i++ {
		ci := g.deck[0]
		g.deck = g.deck[1:]
		ci.Zone = ZoneHand
		g.hand = append(g.hand, ci)
		drawn++
		g.record(log.GameEvent{
			Type: log.EventDraw,
			Side: SideRunner.String(),
			Card: ci.Card.Name,
		})
	}
	return drawn
}

// takeDamage deals n net damage: installed damage-prevention triggers absorb
// first, then cards are discarded from the end of hand. Running out of cards
// to discard does not itself end the game; decking is checked afterwards.
func (g *Game) takeDamage(n int, source string) {
	for _, ci := range g.installed {
		if n == 0 {
			break
		}
		a := ci.Card.Ability
		if a == nil || a.Kind != AbilityTrigger || a.Event != TriggerDamage || a.Effect.Kind != EffectPreventDamage {
			continue
		}
		if a.Frequency == FrequencyPerTurn && ci.UsedThisTurn {
			continue
		}
		prevented := a.Effect.Value
		if prevented > n {
			prevented = n
		}
		n -= prevented
		ci.UsedThisTurn = true
		g.record(log.GameEvent{
			Type:    log.EventAbility,
			Side:    SideRunner.String(),
			Card:    ci.Card.Name,
			Value:   prevented,
			Details: fmt.Sprintf("%s prevents %d damage", ci.Card.Name, prevented),
		})
		g.renderer.Emit(fmt.Sprintf("%s absorbs %d damage.", ci.Card.Name, prevented))
	}

	if n <= 0 {
		return
	}

	lost := 0
	for i := 0; i < n && len(g.hand) > 0; i++ {
		ci := g.hand[len(g.hand)-1]
		g.hand = g.hand[:len(g.hand)-1]
		g.moveToHeap(ci)
		lost++
		g.renderer.Emit(fmt.Sprintf("Damage: %s is trashed from your hand.", ci.Card.Name))
	}
	g.record(log.GameEvent{
		Type:    log.EventDamage,
		Side:    SideRunner.String(),
		Value:   n,
		Details: fmt.Sprintf("%d damage from %s (%d cards lost)", n, source, lost),
	})
}

func (g *Game) moveToHeap(ci *CardInstance) {
	ci.Zone = ZoneHeap
	g.heap = append(g.heap, ci)
}

// memoryLimit is base memory plus every installed permanent memory bonus.
func (g *Game) memoryLimit() int {
	limit := baseMemory
	for _, ci := range g.installed {
		limit += permanentEffect(ci.Card, EffectIncreaseMemory)
	}
	return limit
}

// memoryUsed sums the memory cost of installed programs.
func (g *Game) memoryUsed() int {
	used := 0
	for _, ci := range g.installed {
		if ci.Card.Type.consumesMemory() {
			used += ci.Card.MemoryUnits
		}
	}
	return used
}

// handLimit is the base hand cap plus every installed permanent bonus.
func (g *Game) handLimit() int {
	limit := baseHandLimit
	for _, ci := range g.installed {
		limit += permanentEffect(ci.Card, EffectIncreaseHandSize)
	}
	return limit
}

func permanentEffect(c *Card, kind EffectKind) int {
	if c.Ability == nil || c.Ability.Kind != AbilityPermanent {
		return 0
	}
	total := 0
	for _, e := range c.Ability.Effects {
		if e.Kind == kind {
			total += e.Value
		}
	}
	return total
}

func (g *Game) statusLine() string {
	return fmt.Sprintf("Turn %d | %s | Credits: %d | Memory: %d/%d | Clicks: %d/%d | Agenda: you %d - corp %d (first to %d)",
		g.turn, g.phase, g.credits, g.memoryUsed(), g.memoryLimit(),
		g.clicks, g.maxClicks, g.runnerPoints, g.corp.AgendaPoints(), pointsToWin)
}

// record fills in turn and phase context and forwards the event.
func (g *Game) record(e log.GameEvent) {
	e.Turn = g.turn
	e.Phase = g.phase.String()
	g.logger.Log(e)
}

// Accessors used by frontends and tests.

func (g *Game) Turn() int              { return g.turn }
func (g *Game) Phase() Phase           { return g.phase }
func (g *Game) Credits() int           { return g.credits }
func (g *Game) Clicks() int            { return g.clicks }
func (g *Game) RunnerPoints() int      { return g.runnerPoints }
func (g *Game) CorpPoints() int        { return g.corp.AgendaPoints() }
func (g *Game) Over() bool             { return g.over }
func (g *Game) Winner() Side           { return g.winner }
func (g *Game) MemoryLimit() int       { return g.memoryLimit() }
func (g *Game) MemoryUsed() int        { return g.memoryUsed() }
func (g *Game) HandLimit() int         { return g.handLimit() }
func (g *Game) DeckSize() int          { return len(g.deck) }
func (g *Game) ActiveRun() *Run        { return g.run }
func (g *Game) Opponent() *ai.Opponent { return g.corp }

// Hand returns the hand in draw order. The slice is a copy; the instances
// are shared.
func (g *Game) Hand() []*CardInstance {
	out := make([]*CardInstance, len(g.hand))
	copy(out, g.hand)
	return out
}

// Installed returns installed cards in install order.
func (g *Game) Installed() []*CardInstance {
	out := make([]*CardInstance, len(g.installed))
	copy(out, g.installed)
	return out
}

// Heap returns discarded cards, oldest first.
func (g *Game) Heap() []*CardInstance {
	out := make([]*CardInstance, len(g.heap))
	copy(out, g.heap)
	return out
}

// StatusLine exposes the one-line summary shown after every command.
func (g *Game) StatusLine() string { return g.statusLine() }
