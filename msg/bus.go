// Package msg implements the MSG subsystem: an in-process analogue of
// a pub/sub plus contract-net layer providing messaging, proposals,
// and consensus between agents.
package msg

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// Callback is invoked synchronously from sendMessage's calling thread
// after a message of the registered kind is enqueued. Implementations
// must be non-blocking and must not re-enter a MSG mutation for the
// same message kind (spec §5).
type Callback func(Message)

// Bus is the MSG subsystem's public surface.
type Bus struct {
	cfg     Config
	logger  *log.Logger
	running atomic.Bool

	queueMu sync.Mutex
	queue   []Message

	callbackMu sync.RWMutex
	callbacks  map[Kind]Callback

	// proposals are stored in a TTL cache keyed by proposal ID; the
	// cache's own janitor doubles as the "background sweeper" spec
	// §4.2 calls for, and SweepExpiredProposals gives ORCH's tick an
	// explicit hook to force an immediate purge.
	proposals *cache.Cache

	consensusMu sync.Mutex
	consensus   map[string]*ConsensusRound

	peerMu sync.Mutex
	peers  map[string]PeerInfo
}

// NewBus creates a Bus from cfg. logger may be nil.
func NewBus(cfg Config, logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		cfg:       cfg,
		logger:    logger,
		callbacks: make(map[Kind]Callback),
		proposals: cache.New(cache.NoExpiration, 30*time.Second),
		consensus: make(map[string]*ConsensusRound),
		peers:     make(map[string]PeerInfo),
	}
}

// Start transitions the bus into the running state.
func (b *Bus) Start() bool {
	b.running.Store(true)
	b.logger.Printf("component=msg action=start agent_id=%s", b.cfg.AgentID)
	return true
}

// Stop transitions running to false.
func (b *Bus) Stop() {
	b.running.Store(false)
	b.logger.Printf("component=msg action=stop agent_id=%s", b.cfg.AgentID)
}

// Running reports whether the bus currently accepts mutations.
func (b *Bus) Running() bool { return b.running.Load() }

// Reset stops the bus and drops all state.
func (b *Bus) Reset() {
	b.Stop()

	b.queueMu.Lock()
	b.queue = nil
	b.queueMu.Unlock()

	b.callbackMu.Lock()
	b.callbacks = make(map[Kind]Callback)
	b.callbackMu.Unlock()

	b.proposals.Flush()

	b.consensusMu.Lock()
	b.consensus = make(map[string]*ConsensusRound)
	b.consensusMu.Unlock()

	b.peerMu.Lock()
	b.peers = make(map[string]PeerInfo)
	b.peerMu.Unlock()
}

// RegisterCallback installs the callback invoked for messages of kind.
// Registering again for the same kind overwrites the prior callback.
func (b *Bus) RegisterCallback(kind Kind, cb Callback) {
	b.callbackMu.Lock()
	b.callbacks[kind] = cb
	b.callbackMu.Unlock()
}

// SendMessage appends m to the queue, evicting the oldest message if
// the buffer is full, then synchronously invokes any callback
// registered for m.Kind.
func (b *Bus) SendMessage(m Message) bool {
	if err := b.sendMessage(m); err != nil {
		b.logger.Printf("component=msg action=send_message sender=%s error=%q", m.Sender, err)
		return false
	}
	return true
}

func (b *Bus) sendMessage(m Message) error {
	if !b.running.Load() {
		return ErrNotRunning
	}
	if m.Sender == "" || m.TimestampMS <= 0 {
		return ErrInvalidMessage
	}

	limit := b.cfg.MessageBufferSize
	if limit <= 0 {
		limit = 1
	}

	b.queueMu.Lock()
	b.queue = append(b.queue, m)
	if len(b.queue) > limit {
		b.queue = b.queue[len(b.queue)-limit:]
	}
	b.queueMu.Unlock()

	b.callbackMu.RLock()
	cb := b.callbacks[m.Kind]
	b.callbackMu.RUnlock()
	if cb != nil {
		cb(m)
	}
	return nil
}

// SendBroadcast clears Receiver, sets Kind to Broadcast, and forwards
// to SendMessage.
func (b *Bus) SendBroadcast(m Message) bool {
	m.Receiver = ""
	m.Kind = KindBroadcast
	return b.SendMessage(m)
}

// ReceiveMessages drains and returns the full queue in order.
func (b *Bus) ReceiveMessages() []Message {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	out := b.queue
	b.queue = nil
	return out
}

// ReceiveMessage pops the head of the queue if sender is empty,
// otherwise removes and returns the first message from that sender.
func (b *Bus) ReceiveMessage(sender string) (Message, bool) {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()

	if len(b.queue) == 0 {
		return Message{}, false
	}
	if sender == "" {
		m := b.queue[0]
		b.queue = b.queue[1:]
		return m, true
	}
	for i, m := range b.queue {
		if m.Sender == sender {
			b.queue = append(b.queue[:i:i], b.queue[i+1:]...)
			return m, true
		}
	}
	return Message{}, false
}

// ProposeTask assigns p.ID if blank, records the proposal with a TTL
// derived from ExpiryMS, and broadcasts a Proposal message carrying
// data["proposal_id"].
func (b *Bus) ProposeTask(p Proposal, nowMS int64) (string, bool) {
	if err := b.checkRunning(); err != nil {
		b.logger.Printf("component=msg action=propose_task error=%q", err)
		return "", false
	}
	if p.ID == "" {
		p.ID = swarmid.Generate("prop")
	}
	if p.AcceptedAgents == nil {
		p.AcceptedAgents = make(map[string]bool)
	}

	ttl := time.Duration(p.ExpiryMS-nowMS) * time.Millisecond
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	pCopy := p
	b.proposals.Set(p.ID, &pCopy, ttl)

	b.SendBroadcast(Message{
		Sender:      p.Proposer,
		Kind:        KindProposal,
		Content:     p.Description,
		Data:        map[string]any{"proposal_id": p.ID},
		TimestampMS: nowMS,
	})
	b.logger.Printf("component=msg action=propose_task proposal_id=%s proposer=%s", p.ID, p.Proposer)
	return p.ID, true
}

func (b *Bus) getProposal(id string) (*Proposal, error) {
	v, ok := b.proposals.Get(id)
	if !ok {
		return nil, ErrUnknownProposal
	}
	return v.(*Proposal), nil
}

// checkRunning returns ErrNotRunning when the bus is stopped; it backs
// every mutating operation's running check.
func (b *Bus) checkRunning() error {
	if !b.running.Load() {
		return ErrNotRunning
	}
	return nil
}

// AcceptProposal idempotently appends agent to the proposal's accepted
// set and sends an Accept message to the proposer.
func (b *Bus) AcceptProposal(proposalID, agent string, nowMS int64) bool {
	p, err := b.getProposal(proposalID)
	if err != nil {
		b.logger.Printf("component=msg action=accept_proposal proposal_id=%s error=%q", proposalID, err)
		return false
	}
	if !p.AcceptedAgents[agent] {
		p.AcceptedAgents[agent] = true
	}
	b.SendMessage(Message{
		Sender:      agent,
		Receiver:    p.Proposer,
		Kind:        KindAccept,
		Data:        map[string]any{"proposal_id": proposalID},
		TimestampMS: nowMS,
	})
	return true
}

// RejectProposal sends a Reject message but does not mutate vote state.
func (b *Bus) RejectProposal(proposalID, agent, reason string, nowMS int64) bool {
	p, err := b.getProposal(proposalID)
	if err != nil {
		b.logger.Printf("component=msg action=reject_proposal proposal_id=%s error=%q", proposalID, err)
		return false
	}
	b.SendMessage(Message{
		Sender:      agent,
		Receiver:    p.Proposer,
		Kind:        KindReject,
		Content:     reason,
		Data:        map[string]any{"proposal_id": proposalID},
		TimestampMS: nowMS,
	})
	return true
}

// GetActiveProposals returns proposals whose expiry is still in the
// future relative to nowMS.
func (b *Bus) GetActiveProposals(nowMS int64) []Proposal {
	items := b.proposals.Items()
	out := make([]Proposal, 0, len(items))
	for _, item := range items {
		p := item.Object.(*Proposal)
		if p.ExpiryMS > nowMS {
			out = append(out, *p)
		}
	}
	return out
}

// SweepExpiredProposals forces an immediate purge of expired
// proposals, giving ORCH's tick an explicit sweep hook beyond the
// cache's own periodic janitor.
func (b *Bus) SweepExpiredProposals() {
	b.proposals.DeleteExpired()
}

// InitiateConsensus creates a consensus round and broadcasts a Request
// message carrying data["consensus_id"].
func (b *Bus) InitiateConsensus(topic string, requiredVotes int, nowMS int64) string {
	id := swarmid.Generate("cons")
	round := &ConsensusRound{
		ID:            id,
		Topic:         topic,
		RequiredVotes: requiredVotes,
		Votes:         make(map[string]string),
		TimestampMS:   nowMS,
	}
	b.consensusMu.Lock()
	b.consensus[id] = round
	b.consensusMu.Unlock()

	b.SendBroadcast(Message{
		Sender:      "msg-bus",
		Kind:        KindRequest,
		Content:     topic,
		Data:        map[string]any{"consensus_id": id},
		TimestampMS: nowMS,
	})
	return id
}

// Vote writes votes[agent] = ballot, overwriting any prior ballot from
// the same agent, and marks the round achieved once enough distinct
// agents have voted.
func (b *Bus) Vote(roundID, agent, ballot string) bool {
	if err := b.vote(roundID, agent, ballot); err != nil {
		b.logger.Printf("component=msg action=vote round_id=%s agent=%s error=%q", roundID, agent, err)
		return false
	}
	return true
}

func (b *Bus) vote(roundID, agent, ballot string) error {
	b.consensusMu.Lock()
	defer b.consensusMu.Unlock()
	round, ok := b.consensus[roundID]
	if !ok {
		return ErrUnknownRound
	}
	round.Votes[agent] = ballot
	if len(round.Votes) >= round.RequiredVotes {
		round.Achieved = true
	}
	return nil
}

// GetConsensusStatus returns a copy of the round's current state.
func (b *Bus) GetConsensusStatus(roundID string) (ConsensusRound, bool) {
	b.consensusMu.Lock()
	defer b.consensusMu.Unlock()
	round, ok := b.consensus[roundID]
	if !ok {
		return ConsensusRound{}, false
	}
	return cloneRound(round), true
}

// GetActiveConsensus returns every round that has not yet achieved quorum.
func (b *Bus) GetActiveConsensus() []ConsensusRound {
	b.consensusMu.Lock()
	defer b.consensusMu.Unlock()
	out := make([]ConsensusRound, 0, len(b.consensus))
	for _, round := range b.consensus {
		if !round.Achieved {
			out = append(out, cloneRound(round))
		}
	}
	return out
}

func cloneRound(r *ConsensusRound) ConsensusRound {
	votes := make(map[string]string, len(r.Votes))
	for k, v := range r.Votes {
		votes[k] = v
	}
	return ConsensusRound{
		ID:            r.ID,
		Topic:         r.Topic,
		RequiredVotes: r.RequiredVotes,
		Votes:         votes,
		Achieved:      r.Achieved,
		TimestampMS:   r.TimestampMS,
	}
}

// ConnectToPeer records id's liveness timestamp. address/port are
// stored for inspection only; the in-process substrate never dials
// them (spec §9's open question on future transport wiring). A uuid
// session token is logged alongside the connection for correlation,
// mirroring the session-ID convention used elsewhere in the corpus.
func (b *Bus) ConnectToPeer(id, address string, port uint16, nowMS int64) bool {
	if id == "" {
		return false
	}
	b.peerMu.Lock()
	b.peers[id] = PeerInfo{Address: address, Port: port, ConnectedAtMS: nowMS}
	b.peerMu.Unlock()
	b.logger.Printf("component=msg action=connect_peer peer_id=%s session=%s", id, uuid.NewString())
	return true
}

// DisconnectFromPeer removes id from the connected-peer set.
func (b *Bus) DisconnectFromPeer(id string) bool {
	b.peerMu.Lock()
	defer b.peerMu.Unlock()
	if _, ok := b.peers[id]; !ok {
		return false
	}
	delete(b.peers, id)
	return true
}

// IsPeerConnected reports whether id is currently in the connected-peer set.
func (b *Bus) IsPeerConnected(id string) bool {
	b.peerMu.Lock()
	defer b.peerMu.Unlock()
	_, ok := b.peers[id]
	return ok
}

// GetConnectedPeers returns the IDs of every connected peer.
func (b *Bus) GetConnectedPeers() []string {
	b.peerMu.Lock()
	defer b.peerMu.Unlock()
	out := make([]string, 0, len(b.peers))
	for id := range b.peers {
		out = append(out, id)
	}
	return out
}

// InvalidateStalePeers disconnects every peer whose last connection
// timestamp is older than ConnectionTimeoutSec relative to nowMS. ORCH
// invokes this periodically; peer timeouts are otherwise the caller's
// responsibility per spec §4.2.
func (b *Bus) InvalidateStalePeers(nowMS int64) []string {
	timeoutMS := int64(b.cfg.ConnectionTimeoutSec * 1000)
	if timeoutMS <= 0 {
		return nil
	}
	b.peerMu.Lock()
	defer b.peerMu.Unlock()
	var removed []string
	for id, info := range b.peers {
		if nowMS-info.ConnectedAtMS > timeoutMS {
			delete(b.peers, id)
			removed = append(removed, id)
		}
	}
	return removed
}
