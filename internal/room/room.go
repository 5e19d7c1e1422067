package room

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/fikadu-bingo/bingo-server/internal/game"

	"github.com/gin-gonic/gin"
)

// State is a room's position in the round lifecycle.
type State string

const (
	StateWaiting   State = "waiting"
	StateCountdown State = "countdown"
	StateStarted   State = "started"
	StateEnded     State = "ended"
)

var (
	ErrRoundNotActive = errors.New("no active round")
	ErrNotMember      = errors.New("not a member of this room")
	ErrTicketMismatch = errors.New("ticket does not match the one on record")
	ErrNotWinning     = errors.New("ticket has no completed line")
)

// SettleRequest describes one round's payout.
type SettleRequest struct {
	Stake    int
	WinnerID string
	LoserIDs []string
	Prize    int
}

// Settler executes the atomic balance transfer after a validated win.
type Settler interface {
	Settle(ctx context.Context, req SettleRequest) error
}

// Options are the per-room timing and payout knobs.
type Options struct {
	CountdownSeconds  int
	CallInterval      time.Duration
	WinResetDelay     time.Duration
	ExhaustResetDelay time.Duration
	HouseCutPercent   int

	// MaxDrawAttempts bounds rejection sampling in the number caller; when
	// exceeded the pool is treated as exhausted.
	MaxDrawAttempts int
}

type player struct {
	username string
	conns    map[string]struct{}
}

// Room is the game instance for one stake tier. It lives for the whole
// process and is reused across rounds; every mutable field below mu is
// cleared on reset. All state access is serialized through mu; timer
// goroutines re-check the round generation under the lock so a tick that
// outlives its round is a no-op.
type Room struct {
	Stake int

	mu            sync.Mutex
	state         State
	gen           uint64
	players       map[string]*player
	tickets       map[string]game.Ticket
	selections    map[string]map[int]struct{}
	numbersCalled []int
	called        map[int]struct{}
	countdown     int
	countdownStop chan struct{}
	callerStop    chan struct{}
	rng           *rand.Rand

	opts    Options
	bc      Broadcaster
	settler Settler
}

func New(stake int, opts Options, settler Settler) *Room {
	if opts.MaxDrawAttempts <= 0 {
		opts.MaxDrawAttempts = 10 * game.PoolSize
	}
	r := &Room{
		Stake:   stake,
		state:   StateWaiting,
		opts:    opts,
		settler: settler,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano() + int64(stake))),
	}
	r.clearRoundLocked()
	return r
}

// SetBroadcaster wires the transport after construction; the hub and the
// registry reference each other.
func (r *Room) SetBroadcaster(bc Broadcaster) {
	r.mu.Lock()
	r.bc = bc
	r.mu.Unlock()
}

// clearRoundLocked resets every per-round field. Caller holds mu.
func (r *Room) clearRoundLocked() {
	r.players = map[string]*player{}
	r.tickets = map[string]game.Ticket{}
	r.selections = map[string]map[int]struct{}{}
	r.numbersCalled = nil
	r.called = map[int]struct{}{}
	r.countdown = r.opts.CountdownSeconds
}

// JoinReply is the synchronous answer to a join, carrying everything a
// reconnecting client needs to resynchronize.
type JoinReply struct {
	Stake         int         `json:"stake"`
	Ticket        game.Ticket `json:"ticket"`
	State         State       `json:"state"`
	Countdown     int         `json:"countdown"`
	NumbersCalled []int       `json:"numbersCalled"`
}

// Join adds a connection for userID, generating a ticket if the user is new
// to the room. Re-joining reuses the recorded ticket, so the reply is
// idempotent for a reconnecting client.
func (r *Room) Join(userID, username, connID string) JoinReply {
	r.mu.Lock()
	p, ok := r.players[userID]
	if !ok {
		p = &player{username: username, conns: map[string]struct{}{}}
		r.players[userID] = p
	}
	p.username = username
	p.conns[connID] = struct{}{}
	if _, ok := r.tickets[userID]; !ok {
		r.tickets[userID] = game.NewTicket(r.rng)
	}

	reply := JoinReply{
		Stake:         r.Stake,
		Ticket:        r.tickets[userID],
		State:         r.state,
		Countdown:     r.countdown,
		NumbersCalled: append([]int(nil), r.numbersCalled...),
	}

	roster, pool := r.rosterLocked()
	started := false
	if r.state == StateWaiting && r.connectedPlayersLocked() >= 2 && r.countdownStop == nil {
		r.state = StateCountdown
		r.countdown = r.opts.CountdownSeconds
		stop := make(chan struct{})
		r.countdownStop = stop
		go r.runCountdown(r.gen, stop)
		started = true
	}
	r.mu.Unlock()

	r.bc.ToRoom(r.Stake, "rosterUpdated", roster)
	r.bc.ToRoom(r.Stake, "prizePoolUpdated", pool)
	if started {
		log.Printf("room %d: countdown started", r.Stake)
	}
	return reply
}

// Leave drops one connection. When the user's last connection goes and no
// round is running, the user, ticket, and selections go with it; during a
// started round the roster entry survives so a reconnect resumes the same
// card and the stake stays committed to the pot.
func (r *Room) Leave(userID, connID string) {
	r.mu.Lock()
	p, ok := r.players[userID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(p.conns, connID)
	if len(p.conns) == 0 && r.state != StateStarted {
		delete(r.players, userID)
		delete(r.tickets, userID)
		delete(r.selections, userID)
	}

	aborted := false
	if r.state == StateCountdown && r.connectedPlayersLocked() < 2 {
		r.stopCountdownLocked()
		r.state = StateWaiting
		r.countdown = r.opts.CountdownSeconds
		aborted = true
	}
	roster, pool := r.rosterLocked()
	r.mu.Unlock()

	if aborted {
		r.bc.ToRoom(r.Stake, "countdownAborted", gin.H{"reason": "not enough players"})
		log.Printf("room %d: countdown aborted, below 2 players", r.Stake)
	}
	r.bc.ToRoom(r.Stake, "rosterUpdated", roster)
	r.bc.ToRoom(r.Stake, "prizePoolUpdated", pool)
}

// Mark records a number the client marked locally. Advisory only: win
// validation re-derives coverage from the call history, never from here.
func (r *Room) Mark(userID string, number int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[userID]; !ok {
		return
	}
	if number < 1 || number > game.PoolSize {
		return
	}
	sel, ok := r.selections[userID]
	if !ok {
		sel = map[int]struct{}{}
		r.selections[userID] = sel
	}
	sel[number] = struct{}{}
}

// Claim validates a win assertion. A rejected claim leaves the room
// untouched; an accepted claim is the single authoritative win for the
// round: it ends the round, triggers settlement, and schedules the reset.
func (r *Room) Claim(userID string, claimed game.Ticket) error {
	r.mu.Lock()
	if r.state != StateStarted {
		r.mu.Unlock()
		return ErrRoundNotActive
	}
	p, ok := r.players[userID]
	if !ok {
		r.mu.Unlock()
		return ErrNotMember
	}
	recorded, ok := r.tickets[userID]
	if !ok || recorded != claimed {
		r.mu.Unlock()
		return ErrTicketMismatch
	}
	if !game.HasWin(recorded, r.called) {
		r.mu.Unlock()
		return ErrNotWinning
	}

	r.state = StateEnded
	r.stopCallerLocked()
	r.stopCountdownLocked()

	count := len(r.players)
	total := r.Stake * count
	prize := total * (100 - r.opts.HouseCutPercent) / 100
	losers := make([]string, 0, count-1)
	for id := range r.players {
		if id != userID {
			losers = append(losers, id)
		}
	}
	revealed := game.Reveal(recorded, r.called)
	username := p.username
	r.scheduleResetLocked(r.opts.WinResetDelay)
	r.mu.Unlock()

	r.bc.ToRoom(r.Stake, "roundWon", gin.H{
		"userId":   userID,
		"username": username,
		"prize":    prize,
		"ticket":   revealed,
	})
	log.Printf("room %d: won by %s, prize %d of pot %d", r.Stake, userID, prize, total)

	// The lock is released before touching the ledger; the room is already
	// ended, so no gameplay action can race the payout.
	go func() {
		req := SettleRequest{Stake: r.Stake, WinnerID: userID, LoserIDs: losers, Prize: prize}
		if err := r.settler.Settle(context.Background(), req); err != nil {
			log.Printf("room %d: settlement failed, manual reconciliation required: %v", r.Stake, err)
		}
	}()
	return nil
}

func (r *Room) runCountdown(gen uint64, stop chan struct{}) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if r.countdownTick(gen) {
				return
			}
		}
	}
}

// countdownTick advances the countdown by one second. Returns true when the
// countdown goroutine should exit.
func (r *Room) countdownTick(gen uint64) bool {
	r.mu.Lock()
	if r.gen != gen || r.state != StateCountdown {
		r.mu.Unlock()
		return true
	}
	if r.connectedPlayersLocked() < 2 {
		r.countdownStop = nil
		r.state = StateWaiting
		r.countdown = r.opts.CountdownSeconds
		r.mu.Unlock()
		r.bc.ToRoom(r.Stake, "countdownAborted", gin.H{"reason": "not enough players"})
		return true
	}
	r.countdown--
	if r.countdown <= 0 {
		r.countdownStop = nil
		r.state = StateStarted
		stop := make(chan struct{})
		r.callerStop = stop
		r.mu.Unlock()
		r.bc.ToRoom(r.Stake, "roundStarted", gin.H{"stake": r.Stake})
		log.Printf("room %d: round started", r.Stake)
		go r.runCaller(gen, stop)
		return true
	}
	left := r.countdown
	r.mu.Unlock()
	r.bc.ToRoom(r.Stake, "countdownTick", gin.H{"secondsRemaining": left})
	return false
}

func (r *Room) runCaller(gen uint64, stop chan struct{}) {
	t := time.NewTicker(r.opts.CallInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if r.callTick(gen) {
				return
			}
		}
	}
}

// callTick draws and broadcasts one number, or ends the round on pool
// exhaustion. Returns true when the caller goroutine should exit.
func (r *Room) callTick(gen uint64) bool {
	r.mu.Lock()
	if r.gen != gen || r.state != StateStarted {
		r.mu.Unlock()
		return true
	}
	n, ok := r.drawLocked()
	if !ok {
		r.callerStop = nil
		r.state = StateEnded
		r.scheduleResetLocked(r.opts.ExhaustResetDelay)
		r.mu.Unlock()
		r.bc.ToRoom(r.Stake, "roundExhausted", gin.H{"stake": r.Stake})
		log.Printf("room %d: pool exhausted, no winner", r.Stake)
		return true
	}
	r.numbersCalled = append(r.numbersCalled, n)
	r.called[n] = struct{}{}
	r.mu.Unlock()
	r.bc.ToRoom(r.Stake, "numberCalled", gin.H{"value": n})
	return false
}

// drawLocked picks an uncalled number by bounded rejection sampling.
// Caller holds mu.
func (r *Room) drawLocked() (int, bool) {
	if len(r.numbersCalled) >= game.PoolSize {
		return 0, false
	}
	for i := 0; i < r.opts.MaxDrawAttempts; i++ {
		n := r.rng.Intn(game.PoolSize) + 1
		if _, dup := r.called[n]; !dup {
			return n, true
		}
	}
	return 0, false
}

// scheduleResetLocked arms the post-round reset for the current generation.
// Caller holds mu.
func (r *Room) scheduleResetLocked(delay time.Duration) {
	gen := r.gen
	time.AfterFunc(delay, func() { r.reset(gen) })
}

// reset returns the room to waiting, discarding all per-round state. A reset
// armed by an earlier round is discarded by the generation check.
func (r *Room) reset(gen uint64) {
	r.mu.Lock()
	if r.gen != gen || r.state != StateEnded {
		r.mu.Unlock()
		return
	}
	r.gen++
	r.stopCountdownLocked()
	r.stopCallerLocked()
	r.state = StateWaiting
	r.clearRoundLocked()
	roster, pool := r.rosterLocked()
	r.mu.Unlock()

	r.bc.ToRoom(r.Stake, "rosterUpdated", roster)
	r.bc.ToRoom(r.Stake, "prizePoolUpdated", pool)
	log.Printf("room %d: reset to waiting", r.Stake)
}

func (r *Room) stopCountdownLocked() {
	if r.countdownStop != nil {
		close(r.countdownStop)
		r.countdownStop = nil
	}
}

func (r *Room) stopCallerLocked() {
	if r.callerStop != nil {
		close(r.callerStop)
		r.callerStop = nil
	}
}

// connectedPlayersLocked counts members holding at least one live
// connection. Caller holds mu.
func (r *Room) connectedPlayersLocked() int {
	n := 0
	for _, p := range r.players {
		if len(p.conns) > 0 {
			n++
		}
	}
	return n
}

type rosterEntry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// rosterLocked builds the roster and prize-pool payloads. Caller holds mu.
func (r *Room) rosterLocked() ([]rosterEntry, gin.H) {
	roster := make([]rosterEntry, 0, len(r.players))
	for id, p := range r.players {
		roster = append(roster, rosterEntry{UserID: id, Username: p.username})
	}
	total := r.Stake * len(r.players)
	prize := total * (100 - r.opts.HouseCutPercent) / 100
	return roster, gin.H{"players": len(r.players), "total": total, "prize": prize}
}

// Snapshot is a read-only view of the room for the HTTP surface.
type Snapshot struct {
	Stake         int   `json:"stake"`
	State         State `json:"state"`
	Players       int   `json:"players"`
	Countdown     int   `json:"countdown"`
	NumbersCalled []int `json:"numbersCalled"`
	Prize         int   `json:"prize"`
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := r.Stake * len(r.players)
	return Snapshot{
		Stake:         r.Stake,
		State:         r.state,
		Players:       len(r.players),
		Countdown:     r.countdown,
		NumbersCalled: append([]int(nil), r.numbersCalled...),
		Prize:         total * (100 - r.opts.HouseCutPercent) / 100,
	}
}
