package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/log"
)

func commandTable() map[string]*command {
	cmds := []*command{
		{"help", "list available commands", (*Game).cmdHelp},
		{"man", "show the manual page for a command", (*Game).cmdMan},
		{"draw", "spend a click to draw a card", (*Game).cmdDraw},
		{"hand", "show the cards in your hand", (*Game).cmdHand},
		{"install", "install or play a card from your hand", (*Game).cmdInstall},
		{"installed", "show your installed cards", (*Game).cmdInstalled},
		{"run", "run a Corporation server, or continue the active run", (*Game).cmdRun},
		{"jack_out", "attempt to withdraw from the active run", (*Game).cmdJackOut},
		{"end", "end your turn", (*Game).cmdEnd},
		{"info", "show details for a card", (*Game).cmdInfo},
		{"discard", "discard a card from your hand", (*Game).cmdDiscard},
		{"system", "show the full system status", (*Game).cmdSystem},
		{"credits", "show your credit pool", (*Game).cmdCredits},
		{"memory", "show your memory units", (*Game).cmdMemory},
	}
	table := make(map[string]*command, len(cmds))
	for _, c := range cmds {
		table[c.name] = c
	}
	return table
}

func (g *Game) cmdHelp(args []string) error {
	names := make([]string, 0, len(g.commands))
	for name := range g.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	g.renderer.Emit("Available commands:")
	for _, name := range names {
		g.renderer.Emit(fmt.Sprintf("  %-10s %s", name, g.commands[name].summary))
	}
	g.renderer.Emit("Use 'man <command>' for details.")
	return nil
}

func (g *Game) cmdMan(args []string) error {
	if len(args) == 0 {
		return preconditionf("usage: man <command>")
	}
	name := strings.ToLower(args[0])
	page, ok := manPages[name]
	if !ok {
		return preconditionf("no manual entry for %q", name)
	}
	for _, line := range strings.Split(strings.TrimRight(page, "\n"), "\n") {
		g.renderer.Emit(line)
	}
	return nil
}

func (g *Game) cmdDraw(args []string) error {
	if g.clicks < 1 {
		return preconditionf("no clicks remaining")
	}
	if len(g.deck) == 0 {
		return preconditionf("your stack is empty")
	}
	g.clicks--
	g.drawCards(1)
	drawn := g.hand[len(g.hand)-1]
	g.renderer.EmitSuccess(fmt.Sprintf("You draw %s. (%d cards in hand)", drawn.Card.Name, len(g.hand)))
	return nil
}

func (g *Game) cmdHand(args []string) error {
	if len(g.hand) == 0 {
		g.renderer.Emit("Your hand is empty.")
		return nil
	}
	g.renderer.Emit(fmt.Sprintf("Hand (%d/%d):", len(g.hand), g.handLimit()))
	for i, ci := range g.hand {
		g.renderer.Emit(fmt.Sprintf("  %d. %s", i+1, ci.DisplayString()))
	}
	return nil
}

func (g *Game) cmdInstall(args []string) error {
	if len(args) == 0 {
		return preconditionf("usage: install <card name>")
	}
	name := strings.Join(args, " ")

	ci, idx := g.findInHand(name)
	if ci == nil {
		return preconditionf("no card named %q in hand", name)
	}
	if g.clicks < 1 {
		return preconditionf("no clicks remaining")
	}

	if ci.Card.Type == CardTypeEvent {
		return g.playEvent(ci, idx)
	}

	cost := ci.Card.Cost
	fromCounters := g.availableCounters("install")
	if g.credits+fromCounters < cost {
		return preconditionf("cannot afford %s: costs %d credits, you have %d", ci.Card.Name, cost, g.credits)
	}
	if ci.Card.Type.consumesMemory() && g.memoryUsed()+ci.Card.MemoryUnits > g.memoryLimit() {
		return preconditionf("not enough memory for %s: needs %d MU, %d/%d in use",
			ci.Card.Name, ci.Card.MemoryUnits, g.memoryUsed(), g.memoryLimit())
	}

	// All preconditions hold; mutate.
	g.clicks--
	remaining := g.spendCounters("install", cost)
	g.credits -= remaining

	g.hand = append(g.hand[:idx], g.hand[idx+1:]...)
	ci.Zone = ZoneInstalled
	g.installed = append(g.installed, ci)

	g.record(log.GameEvent{
		Type:  log.EventInstall,
		Side:  SideRunner.String(),
		Card:  ci.Card.Name,
		Value: cost,
	})
	g.renderer.EmitSuccess(fmt.Sprintf("Installed %s for %d credits.", ci.Card.Name, cost))

	if msg, ok := g.resolveAbility(ci, TriggerInstall, nil); ok {
		g.renderer.Emit(msg)
	}
	return nil
}

// playEvent resolves an event card: pay its cost, fire its effects, then
// trash it.
func (g *Game) playEvent(ci *CardInstance, idx int) error {
	cost := ci.Card.Cost
	if g.credits < cost {
		return preconditionf("cannot afford %s: costs %d credits, you have %d", ci.Card.Name, cost, g.credits)
	}

	g.clicks--
	g.credits -= cost
	g.hand = append(g.hand[:idx], g.hand[idx+1:]...)

	g.record(log.GameEvent{
		Type:  log.EventPlay,
		Side:  SideRunner.String(),
		Card:  ci.Card.Name,
		Value: cost,
	})
	g.renderer.EmitSuccess(fmt.Sprintf("You play %s.", ci.Card.Name))

	if msg, ok := g.resolveAbility(ci, TriggerPlay, nil); ok {
		g.renderer.Emit(msg)
	}
	g.moveToHeap(ci)
	return nil
}

func (g *Game) cmdInstalled(args []string) error {
	if len(g.installed) == 0 {
		g.renderer.Emit("Nothing installed.")
		return nil
	}
	g.renderer.Emit(fmt.Sprintf("Installed (%d/%d MU in use):", g.memoryUsed(), g.memoryLimit()))
	for i, ci := range g.installed {
		g.renderer.Emit(fmt.Sprintf("  %d. %s", i+1, ci.DisplayString()))
	}
	return nil
}

func (g *Game) cmdRun(args []string) error {
	if g.run != nil {
		if len(args) > 0 {
			return preconditionf("a run on %s is already in progress; 'run' continues it", g.run.Server)
		}
		g.advanceRun()
		return nil
	}

	if len(args) == 0 {
		return preconditionf("usage: run <server> [--stealth|--aggressive|--careful]")
	}
	if g.clicks < 1 {
		return preconditionf("no clicks remaining")
	}

	approach := ApproachStandard
	var serverArgs []string
	for _, a := range args {
		switch strings.ToLower(a) {
		case "--stealth":
			approach = ApproachStealth
		case "--aggressive":
			approach = ApproachAggressive
		case "--careful":
			approach = ApproachCareful
		default:
			serverArgs = append(serverArgs, a)
		}
	}
	server, err := parseServer(strings.Join(serverArgs, " "))
	if err != nil {
		return err
	}
	if approach == ApproachStealth && g.credits < 1 {
		return preconditionf("a stealth approach costs 1 credit")
	}

	g.clicks--
	return g.beginRun(server, approach)
}

func (g *Game) cmdJackOut(args []string) error {
	if g.run == nil {
		return preconditionf("no run in progress")
	}
	return g.jackOut()
}

func (g *Game) cmdEnd(args []string) error {
	if g.run != nil {
		return preconditionf("finish or jack out of the run first")
	}
	if over := len(g.hand) - g.handLimit(); over > 0 {
		g.setPhase(PhaseDiscard)
		return preconditionf("discard %d cards before ending your turn (hand limit %d)", over, g.handLimit())
	}

	g.setPhase(PhaseEndTurn)
	g.record(log.GameEvent{
		Type:    log.EventPhaseChange,
		Side:    SideRunner.String(),
		Details: fmt.Sprintf("runner ends turn %d", g.turn),
	})
	g.startTurn()
	return nil
}

func (g *Game) cmdInfo(args []string) error {
	if len(args) == 0 {
		return preconditionf("usage: info <card name>")
	}
	name := strings.Join(args, " ")
	ci := g.findAnywhere(name)
	if ci == nil {
		return preconditionf("no card named %q in hand, installed or heap", name)
	}

	c := ci.Card
	g.renderer.Emit(fmt.Sprintf("%s  [%s]", c.Name, c.Type))
	if c.Subtype != "" {
		g.renderer.Emit(fmt.Sprintf("  Subtype:  %s", c.Subtype))
	}
	g.renderer.Emit(fmt.Sprintf("  Cost:     %d credits", c.Cost))
	if c.Type.consumesMemory() {
		g.renderer.Emit(fmt.Sprintf("  Memory:   %d MU", c.MemoryUnits))
	}
	if c.Type == CardTypeIcebreaker {
		g.renderer.Emit(fmt.Sprintf("  Strength: %d", c.Strength))
	}
	g.renderer.Emit(fmt.Sprintf("  Zone:     %s", ci.Zone))
	if ci.Counters > 0 {
		g.renderer.Emit(fmt.Sprintf("  Counters: %d", ci.Counters))
	}
	if c.Description != "" {
		g.renderer.Emit("  " + c.Description)
	}
	return nil
}

// cmdDiscard costs a click during the action phase. Discarding down to the
// hand limit in the forced discard phase is free.
func (g *Game) cmdDiscard(args []string) error {
	if len(args) == 0 {
		return preconditionf("usage: discard <card name>")
	}
	if g.phase == PhaseAction && g.clicks < 1 {
		return preconditionf("no clicks remaining")
	}
	name := strings.Join(args, " ")
	ci, idx := g.findInHand(name)
	if ci == nil {
		return preconditionf("no card named %q in hand", name)
	}

	if g.phase == PhaseAction {
		g.clicks--
	}
	g.hand = append(g.hand[:idx], g.hand[idx+1:]...)
	g.moveToHeap(ci)
	g.record(log.GameEvent{
		Type: log.EventDiscard,
		Side: SideRunner.String(),
		Card: ci.Card.Name,
	})
	g.renderer.Emit(fmt.Sprintf("Discarded %s. (%d cards in hand)", ci.Card.Name, len(g.hand)))

	if g.phase == PhaseDiscard && len(g.hand) <= g.handLimit() {
		g.setPhase(PhaseAction)
		g.renderer.Emit("You are back under your hand limit; 'end' to finish the turn.")
	}
	return nil
}

func (g *Game) cmdSystem(args []string) error {
	g.renderer.Emit("=== System Status ===")
	g.renderer.Emit(fmt.Sprintf("Turn:     %d (%s phase)", g.turn, g.phase))
	g.renderer.Emit(fmt.Sprintf("Credits:  %d", g.credits))
	g.renderer.Emit(fmt.Sprintf("Memory:   %d/%d MU", g.memoryUsed(), g.memoryLimit()))
	g.renderer.Emit(fmt.Sprintf("Clicks:   %d/%d", g.clicks, g.maxClicks))
	g.renderer.Emit(fmt.Sprintf("Stack:    %d cards", len(g.deck)))
	g.renderer.Emit(fmt.Sprintf("Hand:     %d/%d cards", len(g.hand), g.handLimit()))
	g.renderer.Emit(fmt.Sprintf("Heap:     %d cards", len(g.heap)))
	g.renderer.Emit(fmt.Sprintf("Agenda:   you %d - corp %d (first to %d wins)", g.runnerPoints, g.corp.AgendaPoints(), pointsToWin))
	g.renderer.Emit(fmt.Sprintf("Opponent: %s posture, %d credits, %d cards left, %d ICE installed", g.corp.Strategy(), g.corp.Credits(), g.corp.CardsRemaining(), g.corp.InstalledIce()))
	if g.run != nil {
		g.renderer.Emit(fmt.Sprintf("Run:      %s on %s (%s)", g.run.PhaseName(), g.run.Server, g.run.Approach))
	}
	return nil
}

func (g *Game) cmdCredits(args []string) error {
	g.renderer.Emit(fmt.Sprintf("Credits: %d", g.credits))
	return nil
}

func (g *Game) cmdMemory(args []string) error {
	g.renderer.Emit(fmt.Sprintf("Memory: %d/%d MU in use", g.memoryUsed(), g.memoryLimit()))
	return nil
}

// findInHand matches by exact name first, then unique prefix, both
// case-insensitive.
func (g *Game) findInHand(name string) (*CardInstance, int) {
	return findCard(g.hand, name)
}

func (g *Game) findAnywhere(name string) *CardInstance {
	for _, zone := range [][]*CardInstance{g.hand, g.installed, g.heap} {
		if ci, _ := findCard(zone, name); ci != nil {
			return ci
		}
	}
	return nil
}

func findCard(cards []*CardInstance, name string) (*CardInstance, int) {
	lower := strings.ToLower(name)
	for i, ci := range cards {
		if strings.ToLower(ci.Card.Name) == lower {
			return ci, i
		}
	}
	var match *CardInstance
	matchIdx := -1
	for i, ci := range cards {
		if strings.HasPrefix(strings.ToLower(ci.Card.Name), lower) {
			if match != nil {
				return nil, -1 // ambiguous prefix
			}
			match = ci
			matchIdx = i
		}
	}
	return match, matchIdx
}

// availableCounters sums counters on installed resources consumable for the
// given action.
func (g *Game) availableCounters(action string) int {
	total := 0
	for _, ci := range g.installed {
		a := ci.Card.Ability
		if a != nil && a.Kind == AbilityResource && a.ConsumableFor == action {
			total += ci.Counters
		}
	}
	return total
}

// spendCounters consumes counters toward a cost in install order and returns
// the credits still owed.
func (g *Game) spendCounters(action string, cost int) int {
	for _, ci := range g.installed {
		if cost == 0 {
			break
		}
		a := ci.Card.Ability
		if a == nil || a.Kind != AbilityResource || a.ConsumableFor != action || ci.Counters == 0 {
			continue
		}
		spent := ci.Counters
		if spent > cost {
			spent = cost
		}
		ci.Counters -= spent
		cost -= spent
		g.record(log.GameEvent{
			Type:    log.EventAbility,
			Side:    SideRunner.String(),
			Card:    ci.Card.Name,
			Value:   spent,
			Details: fmt.Sprintf("%s pays %d toward %s", ci.Card.Name, spent, action),
		})
	}
	return cost
}

// parseServer accepts the three central servers by name and remote servers
// by index, 1 through 3.
func parseServer(s string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "hq":
		return "HQ", nil
	case "rd", "r&d", "rnd":
		return "R&D", nil
	case "archives":
		return "Archives", nil
	case "":
		return "", preconditionf("usage: run <server> [--stealth|--aggressive|--careful]")
	}
	t = strings.TrimSpace(strings.TrimPrefix(t, "remote"))
	if n, err := strconv.Atoi(t); err == nil {
		if n < 1 || n > 3 {
			return "", preconditionf("remote server %d out of range: remotes are numbered 1 to 3", n)
		}
		return fmt.Sprintf("Remote %d", n), nil
	}
	return "", preconditionf("unknown server %q: try HQ, R&D, Archives, or a remote 1-3", s)
}

var manPages = map[string]string{
	"help": `HELP(1)

NAME
    help - list available commands

SYNOPSIS
    help

DESCRIPTION
    Prints every command with a one-line summary.`,

	"man": `MAN(1)

NAME
    man - show the manual page for a command

SYNOPSIS
    man <command>

DESCRIPTION
    Prints the full manual page for the named command.`,

	"draw": `DRAW(1)

NAME
    draw - draw a card from your stack

SYNOPSIS
    draw

DESCRIPTION
    Spends one click to draw the top card of your stack into your hand.
    Fails when you have no clicks left or your stack is empty.`,

	"hand": `HAND(1)

NAME
    hand - show the cards in your hand

SYNOPSIS
    hand

DESCRIPTION
    Lists your hand in draw order with type, cost and memory use.
    Costs nothing.`,

	"install": `INSTALL(1)

NAME
    install - install or play a card from your hand

SYNOPSIS
    install <card name>

DESCRIPTION
    Spends one click and the card's credit cost. Programs and other
    memory-resident cards also need free memory units. Event cards are
    played instead: their effect resolves immediately and the card goes
    to your heap. Installed resources with spendable counters can pay
    part of an install cost. Card names match case-insensitively, by
    full name or unique prefix.`,

	"installed": `INSTALLED(1)

NAME
    installed - show your installed cards

SYNOPSIS
    installed

DESCRIPTION
    Lists every installed card in install order, with remaining
    counters where relevant. Costs nothing.`,

	"run": `RUN(1)

NAME
    run - run a Corporation server

SYNOPSIS
    run <server> [--stealth|--aggressive|--careful]
    run

DESCRIPTION
    Spends one click to begin a run on HQ, R&D, Archives or a numbered
    remote server (1 to 3). The run pauses at each piece of ICE you
    encounter; a bare 'run' continues past the current position,
    'jack_out' attempts to withdraw.

    An engaged piece of ICE that none of your icebreakers can break
    fires for its strength in net damage, and the run pushes on to the
    next position.

    Approaches change how the run resolves:
      --stealth     pay 1 credit; may earn bypass tokens that skip ICE
      --aggressive  icebreakers gain 1 strength; unbroken ICE fires
                    for 1 less damage (minimum 1)
      --careful     unbroken encounters end in a safe jack-out; the
                    jack-out attempt itself is much more likely to work

    Reaching a central server accesses it: you may steal agenda points,
    trash a Corporation asset or siphon credits. Reaching a remote
    steals an agenda or trashes an asset the Corporation installed
    there.`,

	"jack_out": `JACK_OUT(1)

NAME
    jack_out - attempt to withdraw from the active run

SYNOPSIS
    jack_out

DESCRIPTION
    Rolls against the current ICE to disconnect safely. Sentries make
    withdrawal harder, code gates slightly harder, barriers slightly
    easier. Installed jack-out assistance and a careful approach
    improve the odds. A failed attempt leaves the run where it stands,
    still facing the same ICE; you may try again or push on.`,

	"end": `END(1)

NAME
    end - end your turn

SYNOPSIS
    end

DESCRIPTION
    Ends your turn and runs the Corporation's turn. If you hold more
    cards than your hand limit, the game enters a discard phase
    instead: discard down to the limit, then 'end' again.`,

	"info": `INFO(1)

NAME
    info - show details for a card

SYNOPSIS
    info <card name>

DESCRIPTION
    Prints the full card: type, cost, memory, strength, counters and
    rules text. Searches your hand, installed cards and heap.`,

	"discard": `DISCARD(1)

NAME
    discard - discard a card from your hand

SYNOPSIS
    discard <card name>

DESCRIPTION
    Moves the named card from your hand to your heap. Costs one click
    during the action phase. During a forced discard phase it is free,
    and the only way back under your hand limit.`,

	"system": `SYSTEM(1)

NAME
    system - show the full system status

SYNOPSIS
    system

DESCRIPTION
    Prints turn, phase, credits, memory, clicks, zone sizes, the agenda
    race and what is known about the Corporation.`,

	"credits": `CREDITS(1)

NAME
    credits - show your credit pool

SYNOPSIS
    credits`,

	"memory": `MEMORY(1)

NAME
    memory - show your memory units

SYNOPSIS
    memory`,
}
