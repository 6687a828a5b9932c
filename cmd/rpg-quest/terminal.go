package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/adventure"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
)

const helpText = `Commands:
  look                  show the current scene
  continue              move on to the next scene
  choose <n|id>         pick a branch in a choice scene
  go <scene>            jump to a scene by id
  attack [n|id]         basic attack, defaults to the first living enemy
  skill <id> [n|id]     cast a learned skill
  item <id>             use a consumable
  flee                  try to escape a normal encounter
  again                 fight the current scene's enemies again
  rest                  recover fully outside combat
  auto on|off           let the game act for you in combat
  stats                 show the player
  save [slot]           save the game
  load [slot]           load a saved game
  quit                  leave the game
`

// terminal drives one game through text commands and prints every log
// entry published on the bus
type terminal struct {
	app *app
	out io.Writer

	mu   sync.Mutex
	subs []string
}

func newTerminal(a *app, out io.Writer) *terminal {
	t := &terminal{app: a, out: out}
	for _, kind := range []string{combat.EventLog, adventure.EventLog} {
		t.subs = append(t.subs, a.bus.SubscribeFunc(kind, 0, t.onLog))
	}
	return t
}

// Close drops the log subscriptions
func (t *terminal) Close() error {
	for _, id := range t.subs {
		if err := t.app.bus.Unsubscribe(id); err != nil {
			return errors.Wrap(err, "failed to unsubscribe terminal")
		}
	}
	t.subs = nil
	return nil
}

func (t *terminal) onLog(_ context.Context, event events.Event) error {
	entry, ok := combat.LogFromEvent(event)
	if !ok {
		return nil
	}
	t.printEntry(entry)
	return nil
}

func (t *terminal) printEntry(entry entities.LogEntry) {
	switch {
	case entry.Speaker != "":
		t.printf("%s: %s\n", entry.Speaker, entry.Message)
	case entry.Type == entities.LogError:
		t.printf("! %s\n", entry.Message)
	case entry.Type == entities.LogLocation:
		t.printf("== %s ==\n", entry.Message)
	default:
		t.printf("%s\n", entry.Message)
	}
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, format, args...)
}

type beginOptions struct {
	New  bool
	Name string
}

// begin resumes the configured slot unless a new game is requested or there
// is nothing usable to resume
func (t *terminal) begin(ctx context.Context, opts beginOptions) error {
	if !opts.New {
		_, err := t.app.adventure.Load(ctx, &adventure.LoadInput{Script: t.app.script})
		switch {
		case err == nil:
			return nil
		case errors.IsNotFound(err):
		case errors.IsDataLoss(err):
			t.printf("Your saved game could not be read and was discarded.\n")
		case errors.GetReason(err) == errors.ReasonScriptMismatch:
			t.printf("Your saved game belongs to a different script. Starting over.\n")
		default:
			return err
		}
	}

	name := opts.Name
	if name == "" {
		name = t.app.cfg.PlayerName
	}
	_, err := t.app.adventure.NewGame(ctx, &adventure.NewGameInput{
		Script:     t.app.script,
		PlayerName: name,
	})
	return err
}

// run reads commands until quit, end of input or cancellation
func (t *terminal) run(ctx context.Context, lines <-chan string) error {
	t.look()
	for {
		t.printf("> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if t.handle(ctx, line) {
				return nil
			}
		}
	}
}

// handle executes one command line and reports whether the player quit.
// Game errors are printed, never returned.
func (t *terminal) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		t.printf("%s", helpText)
	case "look", "l":
		t.look()
	case "stats":
		t.stats()
	case "continue", "c", "next":
		_, err = t.app.adventure.Continue(ctx, &adventure.ContinueInput{})
	case "choose":
		err = t.choose(ctx, args)
	case "go":
		if len(args) == 0 {
			t.printf("go needs a scene id\n")
			return false
		}
		_, err = t.app.adventure.Advance(ctx, &adventure.AdvanceInput{SceneID: args[0]})
	case "again":
		_, err = t.app.adventure.FightAgain(ctx, &adventure.FightAgainInput{})
	case "rest":
		_, err = t.app.adventure.Rest(ctx, &adventure.RestInput{})
	case "attack", "a":
		_, err = t.app.combat.Attack(ctx, &combat.AttackInput{TargetID: t.target(args)})
	case "skill":
		if len(args) == 0 {
			t.printf("skill needs a skill id\n")
			return false
		}
		_, err = t.app.combat.UseSkill(ctx, &combat.UseSkillInput{
			SkillID:  args[0],
			TargetID: t.target(args[1:]),
		})
	case "item":
		if len(args) == 0 {
			t.printf("item needs an item id\n")
			return false
		}
		_, err = t.app.combat.UseItem(ctx, &combat.UseItemInput{ItemID: args[0]})
	case "flee":
		_, err = t.app.combat.Flee(ctx, &combat.FleeInput{})
	case "auto":
		t.auto(ctx, args)
	case "save":
		err = t.save(ctx, args)
	case "load":
		err = t.load(ctx, args)
	default:
		t.printf("Unknown command %q. Type help for a list.\n", cmd)
	}

	if err != nil {
		slog.Debug("Command rejected", "command", cmd, "error", err)
		t.printf("%s\n", errors.GetMessage(err))
	}
	return false
}

func (t *terminal) choose(ctx context.Context, args []string) error {
	if len(args) == 0 {
		t.printf("choose needs a choice\n")
		return nil
	}
	choiceID := args[0]
	if scene := t.app.adventure.View().Scene; scene != nil {
		if n, err := strconv.Atoi(choiceID); err == nil && n >= 1 && n <= len(scene.Choices) {
			choiceID = scene.Choices[n-1].ID
		}
	}
	_, err := t.app.adventure.Choose(ctx, &adventure.ChooseInput{ChoiceID: choiceID})
	return err
}

// target resolves a 1-based index into the living enemies or passes an id
// through. An empty target means the first living enemy.
func (t *terminal) target(args []string) string {
	status := t.app.combat.Status()
	if status == nil {
		return ""
	}
	living := status.LivingEnemies()
	if len(args) == 0 {
		if len(living) > 0 {
			return living[0].CombatID
		}
		return ""
	}
	if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 && n <= len(living) {
		return living[n-1].CombatID
	}
	return args[0]
}

func (t *terminal) auto(ctx context.Context, args []string) {
	if len(args) == 0 {
		state := "off"
		if t.app.delegation.Enabled() {
			state = "on"
		}
		t.printf("Auto battle is %s.\n", state)
		return
	}
	switch strings.ToLower(args[0]) {
	case "on":
		t.app.delegation.Enable(ctx)
		t.printf("Auto battle on.\n")
	case "off":
		t.app.delegation.Disable(ctx)
		t.printf("Auto battle off.\n")
	default:
		t.printf("auto takes on or off\n")
	}
}

func (t *terminal) save(ctx context.Context, args []string) error {
	input := &adventure.SaveInput{}
	if len(args) > 0 {
		input.Slot = args[0]
	}
	out, err := t.app.adventure.Save(ctx, input)
	if err != nil {
		return err
	}
	t.printf("Saved to slot %s.\n", out.Slot)
	return nil
}

func (t *terminal) load(ctx context.Context, args []string) error {
	input := &adventure.LoadInput{Script: t.app.script}
	if len(args) > 0 {
		input.Slot = args[0]
	}
	if _, err := t.app.adventure.Load(ctx, input); err != nil {
		return err
	}
	t.look()
	return nil
}

func (t *terminal) look() {
	view := t.app.adventure.View()
	if view.Scene == nil {
		t.printf("No game in progress.\n")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", view.Title, view.Scene.Title)
	for i, choice := range view.Scene.Choices {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, choice.Text)
	}
	if status := view.Combat; status != nil && status.Active {
		for i, enemy := range status.LivingEnemies() {
			fmt.Fprintf(&b, "  %d) %s %d/%d HP\n", i+1, enemy.Name, enemy.HP, enemy.MaxHP())
		}
	}
	if p := view.Player; p != nil {
		fmt.Fprintf(&b, "%s Lv%d  HP %d/%d  MP %d/%d  Gold %d\n",
			p.Name, p.Level, p.HP, p.MaxHP(), p.MP, p.MaxMP(), p.Gold)
	}
	switch {
	case view.GameOver:
		b.WriteString("The adventure is over. load or quit.\n")
	case view.Complete:
		b.WriteString("The adventure is complete. quit to leave.\n")
	case view.AwaitingPostVictoryChoice:
		b.WriteString("Victory. continue or again?\n")
	case view.Cleared:
		b.WriteString("The way is clear. continue or again.\n")
	}
	t.printf("%s", b.String())
}

func (t *terminal) stats() {
	p := t.app.adventure.View().Player
	if p == nil {
		t.printf("No game in progress.\n")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  Level %d  EXP %d/%d  Gold %d\n", p.Name, p.Level, p.Exp, p.ExpToNextLevel, p.Gold)
	fmt.Fprintf(&b, "HP %d/%d  MP %d/%d  ATK %d  DEF %d  SPD %d  LUK %d\n",
		p.HP, p.MaxHP(), p.MP, p.MaxMP(), p.Stats.Attack, p.Stats.Defense, p.Stats.Speed, p.Stats.Luck)
	for _, effect := range p.ActiveEffects {
		fmt.Fprintf(&b, "  %s (%d turns)\n", effect.Name, effect.RemainingDuration)
	}
	for _, skillID := range p.LearnedSkillIDs {
		if skill, ok := t.app.catalog.Skill(skillID); ok {
			fmt.Fprintf(&b, "  skill %s: %s (%d MP)\n", skill.ID, skill.Name, skill.MPCost)
		}
	}
	for _, item := range p.Inventory {
		fmt.Fprintf(&b, "  item %s: %s x%d\n", item.ID, item.Name, item.Quantity)
	}
	t.printf("%s", b.String())
}

// scanLines feeds input lines into a channel that closes at end of input
func scanLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
