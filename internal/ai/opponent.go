// Package ai implements the Corporation opponent: a weighted-random action
// selector that spends a fixed click budget every turn against its own
// resource pools.
package ai

import (
	"fmt"
	"math/rand"
)

const (
	// ClicksPerTurn is the Corporation's action budget each turn.
	ClicksPerTurn = 3

	// MaxHandSize is the cap the Corporation trims to at end of turn.
	MaxHandSize = 5

	// StartingCredits is the Corporation's opening credit pool.
	StartingCredits = 5

	// DeckSize is the Corporation's card pool; when it is exhausted the
	// runner wins on decking.
	DeckSize = 30
)

// Strategy is the per-game profile chosen once at construction. It skews the
// action weights for the whole game.
type Strategy int

const (
	StrategyBalanced Strategy = iota
	StrategyAggressive
	StrategyDefensive
	StrategyEconomic
)

func (s Strategy) String() string {
	switch s {
	case StrategyAggressive:
		return "Aggressive"
	case StrategyDefensive:
		return "Defensive"
	case StrategyEconomic:
		return "Economic"
	default:
		return "Balanced"
	}
}

// Action is one entry in the Corporation's action menu.
type Action int

const (
	ActionDraw Action = iota
	ActionGainCredit
	ActionInstallIce
	ActionInstallAgenda
	ActionInstallAsset
	ActionAdvance
)

// TurnView is the slice of runner-side state the Corporation is allowed to
// see when weighing its actions.
type TurnView struct {
	Turn           int
	RunnerCredits  int
	RunnerPoints   int
	RunnerPrograms int
	RunnerHandSize int
}

type corpCard struct {
	kind string // ice, agenda, asset, operation, upgrade
	name string
}

type remoteServer struct {
	name        string
	kind        string // agenda or asset
	advancement int
	requirement int
}

// Opponent is the automated Corporation player. All randomness is drawn from
// its own stream so a fixed seed reproduces an identical turn sequence.
type Opponent struct {
	strategy Strategy
	rng      *rand.Rand

	credits       int
	clicks        int
	hand          []corpCard
	centralIce    []string // servers gaining ICE, in install order
	remotes       []*remoteServer
	scored        []int
	deckRemaining int
}

// New creates a Corporation opponent. The strategy profile is drawn once
// from the seeded stream and fixed for the whole game.
func New(seed int64) *Opponent {
	rng := rand.New(rand.NewSource(seed))
	return &Opponent{
		strategy:      Strategy(rng.Intn(4)),
		rng:           rng,
		credits:       StartingCredits,
		deckRemaining: DeckSize,
	}
}

// Strategy returns the fixed per-game profile.
func (o *Opponent) Strategy() Strategy {
	return o.strategy
}

// AgendaPoints returns the total points scored this game.
func (o *Opponent) AgendaPoints() int {
	total := 0
	for _, p := range o.scored {
		total += p
	}
	return total
}

// CardsRemaining returns the size of the Corporation's remaining card pool.
func (o *Opponent) CardsRemaining() int {
	return o.deckRemaining
}

// Credits returns the Corporation's credit pool.
func (o *Opponent) Credits() int {
	return o.credits
}

// HandSize returns the Corporation's current hand size.
func (o *Opponent) HandSize() int {
	return len(o.hand)
}

// InstalledIce returns how many pieces of ICE the Corporation has installed
// over its central servers.
func (o *Opponent) InstalledIce() int {
	return len(o.centralIce)
}

// StealAgenda removes one installed agenda from the Corporation's remotes
// and returns its point value, or 0 when none is exposed.
func (o *Opponent) StealAgenda() int {
	for _, r := range o.remotes {
		if r.kind == "agenda" {
			o.removeRemote(r)
			return o.rng.Intn(3) + 1
		}
	}
	return 0
}

// TrashAsset removes one installed asset from the Corporation's remotes, if
// any. It reports whether an asset was there to trash.
func (o *Opponent) TrashAsset() bool {
	for _, r := range o.remotes {
		if r.kind == "asset" {
			o.removeRemote(r)
			return true
		}
	}
	return false
}

// TakeTurn runs the Corporation's whole turn: reset the click budget, draw
// for turn, spend every click on a weighted action, then trim the hand. It
// returns the action log for display.
func (o *Opponent) TakeTurn(view TurnView) []string {
	o.clicks = ClicksPerTurn

	log := []string{fmt.Sprintf("Corporation starts turn with %d credits and %d cards in hand.", o.credits, len(o.hand))}
	if o.deckRemaining > 0 {
		log = append(log, o.drawCard())
	}

	for o.clicks > 0 {
		action := o.nextAction(view)
		log = append(log, o.perform(action))
	}

	if line := o.trimHand(); line != "" {
		log = append(log, line)
	}
	log = append(log, "Corporation ends turn.")
	return log
}

type weightedAction struct {
	action Action
	weight int
}

// nextAction computes the weighted action menu and draws one action
// proportionally to weight. The menu order is fixed so that identical seeds
// choose identically.
func (o *Opponent) nextAction(view TurnView) Action {
	// Always refill an empty hand first.
	if len(o.hand) == 0 && o.deckRemaining > 0 {
		return ActionDraw
	}

	menu := []weightedAction{
		{ActionDraw, 10},
		{ActionGainCredit, 10},
		{ActionInstallIce, 0},
		{ActionInstallAgenda, 0},
		{ActionInstallAsset, 0},
		{ActionAdvance, 0},
	}
	adjust := func(a Action, delta int) {
		for i := range menu {
			if menu[i].action == a {
				menu[i].weight += delta
				return
			}
		}
	}

	// Per-game strategy profile.
	switch o.strategy {
	case StrategyEconomic:
		adjust(ActionGainCredit, 20)
		adjust(ActionInstallAsset, 15)
	case StrategyAggressive:
		adjust(ActionInstallAgenda, 20)
		adjust(ActionAdvance, 25)
	case StrategyDefensive:
		adjust(ActionInstallIce, 20)
	}

	// React to the runner's position: defend harder against a rich or
	// nearly-winning runner, race when behind on points.
	if view.RunnerCredits >= 8 || view.RunnerPrograms >= 3 {
		adjust(ActionInstallIce, 10)
	}
	if view.RunnerPoints >= 5 {
		adjust(ActionInstallAgenda, 10)
		adjust(ActionAdvance, 10)
	}

	// Low-resource heuristics.
	if o.credits < 3 {
		adjust(ActionGainCredit, 15)
		adjust(ActionInstallIce, -5)
		adjust(ActionInstallAgenda, -5)
	}
	if len(o.hand) < 3 {
		adjust(ActionDraw, 15)
	}

	// Structural eligibility.
	if o.handHas("agenda") {
		adjust(ActionInstallAgenda, 10)
	}
	if o.advanceable() != nil {
		adjust(ActionAdvance, 15)
	}

	// Hard constraints: actions the Corporation cannot pay for, or has no
	// card for, get no weight.
	if o.deckRemaining == 0 {
		o.setWeight(menu, ActionDraw, 0)
	}
	if o.credits < 1 {
		o.setWeight(menu, ActionInstallIce, 0)
		o.setWeight(menu, ActionAdvance, 0)
	}
	if !o.handHas("agenda") {
		o.setWeight(menu, ActionInstallAgenda, 0)
	}
	if !o.handHas("asset") {
		o.setWeight(menu, ActionInstallAsset, 0)
	}
	if o.advanceable() == nil {
		o.setWeight(menu, ActionAdvance, 0)
	}

	total := 0
	for _, wa := range menu {
		if wa.weight > 0 {
			total += wa.weight
		}
	}
	if total == 0 {
		return ActionGainCredit
	}

	pick := o.rng.Intn(total)
	for _, wa := range menu {
		if wa.weight <= 0 {
			continue
		}
		if pick < wa.weight {
			return wa.action
		}
		pick -= wa.weight
	}
	return ActionGainCredit
}

func (o *Opponent) setWeight(menu []weightedAction, a Action, w int) {
	for i := range menu {
		if menu[i].action == a {
			menu[i].weight = w
			return
		}
	}
}

func (o *Opponent) handHas(kind string) bool {
	for _, c := range o.hand {
		if c.kind == kind {
			return true
		}
	}
	return false
}

// advanceable returns a remote holding that can still be advanced, or nil.
func (o *Opponent) advanceable() *remoteServer {
	for _, r := range o.remotes {
		if r.kind == "agenda" {
			return r
		}
	}
	return nil
}

// perform executes the chosen action, spending exactly one click.
func (o *Opponent) perform(action Action) string {
	o.clicks--

	switch action {
	case ActionDraw:
		if o.deckRemaining > 0 {
			return o.drawCard()
		}

	case ActionGainCredit:
		o.credits++
		return "Corporation gains 1 credit."

	case ActionInstallIce:
		if o.credits >= 1 {
			o.credits--
			servers := []string{"HQ", "R&D", "Archives"}
			server := servers[o.rng.Intn(len(servers))]
			o.centralIce = append(o.centralIce, server)
			return fmt.Sprintf("Corporation installs ICE protecting %s.", server)
		}

	case ActionInstallAgenda:
		if o.takeFromHand("agenda") {
			r := &remoteServer{
				name:        fmt.Sprintf("Remote Server %d", len(o.remotes)+1),
				kind:        "agenda",
				requirement: o.rng.Intn(4) + 2,
			}
			o.remotes = append(o.remotes, r)
			return "Corporation installs a card in a new remote server."
		}

	case ActionInstallAsset:
		if o.takeFromHand("asset") {
			r := &remoteServer{
				name: fmt.Sprintf("Remote Server %d", len(o.remotes)+1),
				kind: "asset",
			}
			o.remotes = append(o.remotes, r)
			return "Corporation installs a card in a new remote server."
		}

	case ActionAdvance:
		target := o.advanceable()
		if target != nil && o.credits >= 1 {
			o.credits--
			target.advancement++
			if target.advancement >= target.requirement {
				points := o.rng.Intn(3) + 1
				o.scored = append(o.scored, points)
				o.removeRemote(target)
				return fmt.Sprintf("Corporation advances and scores an agenda worth %d points!", points)
			}
			return fmt.Sprintf("Corporation advances a card in %s.", target.name)
		}
	}

	return "Corporation takes a basic action."
}

// drawCard takes one card from the pool into hand.
func (o *Opponent) drawCard() string {
	kinds := []string{"ice", "agenda", "asset", "operation", "upgrade"}
	card := corpCard{
		kind: kinds[o.rng.Intn(len(kinds))],
		name: fmt.Sprintf("Card-%04d", o.rng.Intn(9000)+1000),
	}
	o.hand = append(o.hand, card)
	o.deckRemaining--
	return fmt.Sprintf("Corporation draws a card. (%d cards in hand)", len(o.hand))
}

// takeFromHand removes the first card of the given kind and reports whether
// one was there to take.
func (o *Opponent) takeFromHand(kind string) bool {
	for i, c := range o.hand {
		if c.kind == kind {
			o.hand = append(o.hand[:i], o.hand[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Opponent) removeRemote(target *remoteServer) {
	for i, r := range o.remotes {
		if r == target {
			o.remotes = append(o.remotes[:i], o.remotes[i+1:]...)
			return
		}
	}
}

// trimHand discards from the end of hand down to the cap.
func (o *Opponent) trimHand() string {
	if len(o.hand) <= MaxHandSize {
		return ""
	}
	n := len(o.hand) - MaxHandSize
	o.hand = o.hand[:MaxHandSize]
	return fmt.Sprintf("Corporation discards %d cards.", n)
}
