package msg

// Kind identifies the purpose of a Message. The substrate's protocol
// messages (Broadcast, Proposal, Accept, Reject, Request) are named
// constants; callers are free to register callbacks against any other
// string kind for their own negotiation protocols.
type Kind string

const (
	KindBroadcast Kind = "Broadcast"
	KindProposal  Kind = "Proposal"
	KindAccept    Kind = "Accept"
	KindReject    Kind = "Reject"
	KindRequest   Kind = "Request"
)

// Message is the unit of agent-to-agent communication. Receiver empty
// means broadcast.
type Message struct {
	ID          string
	Sender      string
	Receiver    string
	Kind        Kind
	Content     string
	Data        map[string]any
	Priority    int
	TimestampMS int64
	TTLSeconds  float64
}

// Proposal is a task offer broadcast by one agent; acceptances are
// collected by agent ID into AcceptedAgents.
type Proposal struct {
	ID                   string
	Proposer             string
	Description          string
	RequiredAgents       []string
	EstimatedDurationSec float64
	Priority             int
	Parameters           map[string]any
	AcceptedAgents       map[string]bool
	ExpiryMS             int64
}

// ConsensusRound is a topic-scoped vote requiring a quorum of agents.
type ConsensusRound struct {
	ID            string
	Topic         string
	RequiredVotes int
	Votes         map[string]string
	Achieved      bool
	TimestampMS   int64
}

// PeerInfo records a connected peer's last-seen liveness timestamp.
// Address/Port are retained only for inspection; the in-process
// substrate never dials out to them (spec §9).
type PeerInfo struct {
	Address       string
	Port          uint16
	ConnectedAtMS int64
}
