package combat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
	"github.com/striderquest/StriderQuest_Go/internal/utils"
)

// Progression is the slice of the progression service combat needs to pay
// out victory rewards.
type Progression interface {
	AddExperience(ctx context.Context, player *domain.Player, amount int, reason string) int
	GrantGold(ctx context.Context, player *domain.Player, amount int, reason string)
}

// Inventory is the slice of the inventory service combat needs for in-combat
// item use and defeat revival.
type Inventory interface {
	UseItem(ctx context.Context, player *domain.Player, itemID string) error
	FindItem(player *domain.Player, itemID string) (*domain.InventoryItem, bool)
	FindRevivalItem(player *domain.Player) (*domain.InventoryItem, bool)
	RemoveItem(ctx context.Context, player *domain.Player, itemID string, quantity int) error
}

// TurnRunner executes a deferred combat mutation against the player's live
// record. The session coordinator supplies one that reloads the record under
// the per-player lock and writes it back afterwards, so the timer goroutine
// never mutates or rewards a copy the sessions have already replaced.
type TurnRunner func(ctx context.Context, playerID string, fn func(player *domain.Player))

// Service runs turn-based encounters. Each player has at most one live
// encounter; it is held in memory only and dropped on resolution.
type Service interface {
	StartCombat(ctx context.Context, player *domain.Player, enemy domain.Enemy) (*domain.Encounter, error)
	PerformAction(ctx context.Context, player *domain.Player, action domain.CombatAction, itemID string) (*domain.Encounter, error)
	ActiveEncounter(playerID string) (*domain.Encounter, bool)
	Abandon(ctx context.Context, playerID string)
	Shutdown()
}

type encounterState struct {
	enc    *domain.Encounter
	player *domain.Player
	timer  *time.Timer
}

type service struct {
	progression Progression
	inventory   Inventory
	notifier    notify.Notifier
	bus         event.Bus
	rnd         func() float64
	turnDelay   time.Duration
	runTurn     TurnRunner

	mu         sync.Mutex
	encounters map[string]*encounterState // playerID -> live encounter
}

// NewService creates a combat service. A zero turnDelay resolves enemy turns
// synchronously inside PerformAction; runTurn may be nil when no session
// coordinator backs the encounter, in which case deferred turns mutate the
// bound record directly without persistence.
func NewService(progression Progression, inventory Inventory, notifier notify.Notifier, bus event.Bus, turnDelay time.Duration, runTurn TurnRunner) Service {
	return &service{
		progression: progression,
		inventory:   inventory,
		notifier:    notifier,
		bus:         bus,
		rnd:         utils.RandomFloat,
		turnDelay:   turnDelay,
		runTurn:     runTurn,
		encounters:  make(map[string]*encounterState),
	}
}

// NewServiceWithRand creates a combat service with an injected random source
// for deterministic tests
func NewServiceWithRand(progression Progression, inventory Inventory, notifier notify.Notifier, bus event.Bus, turnDelay time.Duration, runTurn TurnRunner, rnd func() float64) Service {
	svc := NewService(progression, inventory, notifier, bus, turnDelay, runTurn).(*service)
	svc.rnd = rnd
	return svc
}

func (s *service) StartCombat(ctx context.Context, player *domain.Player, enemy domain.Enemy) (*domain.Encounter, error) {
	log := logger.FromContext(ctx)

	if player.IsDead {
		return nil, domain.ErrPlayerDead
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.encounters[player.ID]; exists {
		return nil, domain.ErrCombatActive
	}

	if enemy.CurrentHealth <= 0 {
		enemy.CurrentHealth = enemy.MaxHealth
	}

	enc := &domain.Encounter{
		ID:        uuid.New(),
		PlayerID:  player.ID,
		Enemy:     enemy,
		State:     domain.CombatStatePlayerTurn,
		StartedAt: time.Now().UTC(),
	}
	appendLog(enc, "system", fmt.Sprintf("%s appears (level %d)", enemy.Name, enemy.Level), 0)

	s.encounters[player.ID] = &encounterState{enc: enc, player: player}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewCombatStartedEvent(player.ID, enemy.Name, enemy.Level)); err != nil {
			log.Warn("failed to publish combat started event", "error", err)
		}
	}

	log.Info("combat started", "playerID", player.ID, "enemy", enemy.Name, "enemyLevel", enemy.Level)
	return enc, nil
}

func (s *service) ActiveEncounter(playerID string) (*domain.Encounter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.encounters[playerID]
	if !ok {
		return nil, false
	}
	return st.enc, true
}

// Abandon drops a player's live encounter and cancels any pending enemy turn
func (s *service) Abandon(ctx context.Context, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.encounters[playerID]
	if !ok {
		return
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	delete(s.encounters, playerID)

	logger.FromContext(ctx).Info("combat abandoned", "playerID", playerID)
}

// Shutdown cancels every pending enemy turn timer
func (s *service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.encounters {
		if st.timer != nil {
			st.timer.Stop()
		}
	}
}

func (s *service) PerformAction(ctx context.Context, player *domain.Player, action domain.CombatAction, itemID string) (*domain.Encounter, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.encounters[player.ID]
	if !ok {
		return nil, domain.ErrNoActiveCombat
	}
	// the session layer may have reloaded the record since the last action,
	// so always operate on the caller's copy
	st.player = player
	enc := st.enc

	if enc.State.Resolved() {
		return enc, domain.ErrCombatResolved
	}
	if enc.State != domain.CombatStatePlayerTurn {
		return enc, domain.ErrNotPlayerTurn
	}

	switch action {
	case domain.ActionAttack:
		damage, critical := s.playerDamage(player, &enc.Enemy)
		enc.Enemy.CurrentHealth -= damage
		if enc.Enemy.CurrentHealth < 0 {
			enc.Enemy.CurrentHealth = 0
		}
		msg := fmt.Sprintf("%s hits %s for %d damage", player.Username, enc.Enemy.Name, damage)
		if critical {
			msg += " (critical)"
		}
		appendLog(enc, "player", msg, damage)
		log.Info("player attack", "playerID", player.ID, "damage", damage, "critical", critical, "enemyHealth", enc.Enemy.CurrentHealth)

		if enc.Enemy.CurrentHealth == 0 {
			s.resolveVictory(ctx, st)
			return enc, nil
		}
		s.scheduleEnemyTurn(ctx, st)

	case domain.ActionDefend:
		enc.Defending = true
		appendLog(enc, "player", fmt.Sprintf("%s braces for the next blow", player.Username), 0)
		s.scheduleEnemyTurn(ctx, st)

	case domain.ActionUseItem:
		if err := s.inventory.UseItem(ctx, player, itemID); err != nil {
			return enc, err
		}
		appendLog(enc, "player", fmt.Sprintf("%s uses an item", player.Username), 0)
		s.scheduleEnemyTurn(ctx, st)

	case domain.ActionFlee:
		chance := fleeChance(player, &enc.Enemy)
		if s.rnd() < chance {
			appendLog(enc, "player", fmt.Sprintf("%s escapes from %s", player.Username, enc.Enemy.Name), 0)
			s.resolve(ctx, st, domain.CombatStateFled)
			return enc, nil
		}
		appendLog(enc, "player", fmt.Sprintf("%s fails to escape", player.Username), 0)
		s.enemyStrike(ctx, st, false)
		if enc.State.Resolved() {
			return enc, nil
		}
		// failed flee costs the turn but the free strike already happened,
		// so control stays with the player
		enc.State = domain.CombatStatePlayerTurn

	default:
		return enc, fmt.Errorf("%s: %q", domain.ErrMsgInvalidInput, action)
	}

	return enc, nil
}

// scheduleEnemyTurn moves the encounter to the enemy turn and arms the
// counter-attack timer. Callers hold s.mu.
func (s *service) scheduleEnemyTurn(ctx context.Context, st *encounterState) {
	st.enc.State = domain.CombatStateEnemyTurn

	if s.turnDelay <= 0 {
		s.runEnemyTurn(ctx, st)
		return
	}

	playerID := st.player.ID
	st.timer = time.AfterFunc(s.turnDelay, func() {
		bg := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		if s.runTurn == nil {
			s.mu.Lock()
			defer s.mu.Unlock()
			if current, ok := s.encounters[playerID]; ok && current == st && current.enc.State == domain.CombatStateEnemyTurn {
				s.runEnemyTurn(bg, current)
			}
			return
		}

		// the session lock is taken before s.mu, same order as the request
		// path, and the strike lands on the record the coordinator loaded
		s.runTurn(bg, playerID, func(player *domain.Player) {
			s.mu.Lock()
			defer s.mu.Unlock()

			current, ok := s.encounters[playerID]
			if !ok || current != st || current.enc.State != domain.CombatStateEnemyTurn {
				return
			}
			current.player = player
			s.runEnemyTurn(bg, current)
		})
	})
}

// runEnemyTurn applies the enemy counter-attack and hands the turn back.
// Callers hold s.mu.
func (s *service) runEnemyTurn(ctx context.Context, st *encounterState) {
	s.enemyStrike(ctx, st, st.enc.Defending)
	if st.enc.State.Resolved() {
		return
	}
	st.enc.Defending = false
	st.enc.State = domain.CombatStatePlayerTurn
}

// enemyStrike applies one enemy attack against the player and resolves the
// encounter on a kill. Callers hold s.mu.
func (s *service) enemyStrike(ctx context.Context, st *encounterState, defending bool) {
	enc := st.enc
	player := st.player

	damage, critical := s.enemyDamage(&enc.Enemy, player, defending)
	player.Health.Current -= damage
	if player.Health.Current < 0 {
		player.Health.Current = 0
	}

	msg := fmt.Sprintf("%s hits %s for %d damage", enc.Enemy.Name, player.Username, damage)
	if critical {
		msg += " (critical)"
	}
	if defending {
		msg += " (defended)"
	}
	appendLog(enc, "enemy", msg, damage)
	logger.FromContext(ctx).Info("enemy attack", "playerID", player.ID, "damage", damage, "critical", critical, "playerHealth", player.Health.Current)

	if player.Health.Current == 0 {
		s.resolveDefeat(ctx, st)
	}
}

// resolveVictory pays out the enemy rewards and closes the encounter.
// Callers hold s.mu.
func (s *service) resolveVictory(ctx context.Context, st *encounterState) {
	enc := st.enc
	player := st.player

	appendLog(enc, "system", fmt.Sprintf("%s is defeated", enc.Enemy.Name), 0)

	s.progression.AddExperience(ctx, player, enc.Enemy.XPReward, "combat victory")
	if enc.Enemy.GoldReward > 0 {
		s.progression.GrantGold(ctx, player, enc.Enemy.GoldReward, "combat victory")
	}

	s.notifier.Notify(ctx, notify.KindSuccess, "Victory",
		fmt.Sprintf("Defeated %s: +%d XP, +%d gold", enc.Enemy.Name, enc.Enemy.XPReward, enc.Enemy.GoldReward))

	s.resolve(ctx, st, domain.CombatStateVictory)
}

// resolveDefeat consumes a revival item when one is carried, otherwise marks
// the player dead. Callers hold s.mu.
func (s *service) resolveDefeat(ctx context.Context, st *encounterState) {
	log := logger.FromContext(ctx)
	enc := st.enc
	player := st.player

	appendLog(enc, "system", fmt.Sprintf("%s falls in battle", player.Username), 0)

	if item, ok := s.inventory.FindRevivalItem(player); ok {
		fraction := item.UseEffect.Value
		if fraction <= 0 || fraction >= 1 {
			fraction = config.DefaultReviveFraction
		}
		player.Health.Current = int(float64(player.Health.Max) * fraction)
		player.Mana.Current = int(float64(player.Mana.Max) * fraction)
		player.Stamina.Current = int(float64(player.Stamina.Max) * fraction)

		itemName := item.Name
		if err := s.inventory.RemoveItem(ctx, player, item.ID, 1); err != nil {
			log.Error("failed to consume revival item", "playerID", player.ID, "itemID", item.ID, "error", err)
		}

		appendLog(enc, "system", fmt.Sprintf("%s is revived by %s", player.Username, itemName), 0)
		s.notifier.Notify(ctx, notify.KindWarning, "Defeated",
			fmt.Sprintf("%s consumed, restoring part of your resources", itemName))
	} else {
		player.IsDead = true
		s.notifier.Notify(ctx, notify.KindError, "Defeated",
			fmt.Sprintf("%s was slain by %s", player.Username, enc.Enemy.Name))
	}

	s.resolve(ctx, st, domain.CombatStateDefeat)
}

// resolve closes the encounter in a terminal state and publishes the
// resolution event. Callers hold s.mu.
func (s *service) resolve(ctx context.Context, st *encounterState, outcome domain.CombatState) {
	enc := st.enc
	enc.State = outcome

	if st.timer != nil {
		st.timer.Stop()
	}
	delete(s.encounters, enc.PlayerID)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewCombatResolvedEvent(enc.PlayerID, enc.Enemy.Name, string(outcome), len(enc.Log))); err != nil {
			logger.FromContext(ctx).Warn("failed to publish combat resolved event", "error", err)
		}
	}

	logger.FromContext(ctx).Info("combat resolved", "playerID", enc.PlayerID, "enemy", enc.Enemy.Name, "outcome", outcome)
}

func appendLog(enc *domain.Encounter, actor, message string, damage int) {
	enc.Log = append(enc.Log, domain.CombatLogEntry{
		Actor:   actor,
		Message: message,
		Damage:  damage,
		At:      time.Now().UTC(),
	})
}
