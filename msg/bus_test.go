package msg_test

import (
	"testing"

	"github.com/nervosys/autonomysim-swarmcore/msg"
)

func newRunningBus(t *testing.T) *msg.Bus {
	t.Helper()
	b := msg.NewBus(msg.NewDefaultConfig(), nil)
	b.Start()
	return b
}

func TestSendMessage_RejectsInvalid(t *testing.T) {
	b := newRunningBus(t)
	if b.SendMessage(msg.Message{Sender: "", TimestampMS: 1}) {
		t.Fatal("expected rejection of empty sender")
	}
	if b.SendMessage(msg.Message{Sender: "a1", TimestampMS: 0}) {
		t.Fatal("expected rejection of non-positive timestamp")
	}
}

func TestSendMessage_RejectsWhenNotRunning(t *testing.T) {
	b := msg.NewBus(msg.NewDefaultConfig(), nil)
	if b.SendMessage(msg.Message{Sender: "a1", TimestampMS: 1}) {
		t.Fatal("expected rejection before Start")
	}
}

func TestSendMessage_EvictsOldestOnOverflow(t *testing.T) {
	cfg := msg.NewDefaultConfig()
	cfg.MessageBufferSize = 2
	b := msg.NewBus(cfg, nil)
	b.Start()

	b.SendMessage(msg.Message{Sender: "a1", Content: "1", TimestampMS: 1})
	b.SendMessage(msg.Message{Sender: "a1", Content: "2", TimestampMS: 2})
	b.SendMessage(msg.Message{Sender: "a1", Content: "3", TimestampMS: 3})

	all := b.ReceiveMessages()
	if len(all) != 2 || all[0].Content != "2" || all[1].Content != "3" {
		t.Fatalf("expected oldest evicted, got %+v", all)
	}
}

func TestSendMessage_InvokesCallback(t *testing.T) {
	b := newRunningBus(t)
	var got msg.Message
	b.RegisterCallback(msg.KindAccept, func(m msg.Message) { got = m })

	b.SendMessage(msg.Message{Sender: "a1", Kind: msg.KindAccept, TimestampMS: 1})

	if got.Sender != "a1" {
		t.Fatalf("expected callback invoked with message, got %+v", got)
	}
}

func TestReceiveMessage_BySender(t *testing.T) {
	b := newRunningBus(t)
	b.SendMessage(msg.Message{Sender: "a1", TimestampMS: 1})
	b.SendMessage(msg.Message{Sender: "a2", TimestampMS: 2})

	m, ok := b.ReceiveMessage("a2")
	if !ok || m.Sender != "a2" {
		t.Fatalf("expected to find a2's message, got %+v ok=%v", m, ok)
	}
	remaining := b.ReceiveMessages()
	if len(remaining) != 1 || remaining[0].Sender != "a1" {
		t.Fatalf("expected only a1 left, got %+v", remaining)
	}
}

func TestProposalLifecycle_AcceptIsIdempotent(t *testing.T) {
	b := newRunningBus(t)
	id, ok := b.ProposeTask(msg.Proposal{Proposer: "a1", ExpiryMS: 1_000_000}, 1)
	if !ok || id == "" {
		t.Fatal("expected proposal id")
	}

	b.AcceptProposal(id, "a2", 2)
	b.AcceptProposal(id, "a2", 3)

	active := b.GetActiveProposals(1)
	if len(active) != 1 {
		t.Fatalf("expected 1 active proposal, got %d", len(active))
	}
	if len(active[0].AcceptedAgents) != 1 {
		t.Fatalf("expected idempotent accept, got %d accepted agents", len(active[0].AcceptedAgents))
	}
}

func TestGetActiveProposals_ExcludesExpired(t *testing.T) {
	b := newRunningBus(t)
	b.ProposeTask(msg.Proposal{Proposer: "a1", ExpiryMS: 1000}, 500)

	active := b.GetActiveProposals(2000)
	if len(active) != 0 {
		t.Fatalf("expected expired proposal excluded, got %d", len(active))
	}
}

func TestConsensus_AchievesAtQuorum(t *testing.T) {
	b := newRunningBus(t)
	id := b.InitiateConsensus("adopt-formation", 3, 1)

	b.Vote(id, "a1", "yes")
	b.Vote(id, "a2", "yes")
	status, _ := b.GetConsensusStatus(id)
	if status.Achieved {
		t.Fatal("expected round not yet achieved at 2/3 votes")
	}

	b.Vote(id, "a3", "yes")
	status, _ = b.GetConsensusStatus(id)
	if !status.Achieved {
		t.Fatal("expected round achieved at 3/3 votes")
	}

	active := b.GetActiveConsensus()
	for _, r := range active {
		if r.ID == id {
			t.Fatal("expected achieved round to be excluded from active list")
		}
	}
}

func TestConsensus_VoteOverwritesPriorBallot(t *testing.T) {
	b := newRunningBus(t)
	id := b.InitiateConsensus("t", 2, 1)
	b.Vote(id, "a1", "no")
	b.Vote(id, "a1", "yes")

	status, _ := b.GetConsensusStatus(id)
	if status.Votes["a1"] != "yes" {
		t.Fatalf("expected overwritten ballot 'yes', got %q", status.Votes["a1"])
	}
}

func TestPeerLifecycle(t *testing.T) {
	b := newRunningBus(t)
	b.ConnectToPeer("p1", "10.0.0.1", 9000, 1)
	if !b.IsPeerConnected("p1") {
		t.Fatal("expected p1 connected")
	}
	b.DisconnectFromPeer("p1")
	if b.IsPeerConnected("p1") {
		t.Fatal("expected p1 disconnected")
	}
}

func TestInvalidateStalePeers(t *testing.T) {
	cfg := msg.NewDefaultConfig()
	cfg.ConnectionTimeoutSec = 5
	b := msg.NewBus(cfg, nil)
	b.Start()

	b.ConnectToPeer("p1", "", 0, 1000)
	removed := b.InvalidateStalePeers(10_000)
	if len(removed) != 1 || removed[0] != "p1" {
		t.Fatalf("expected p1 invalidated, got %+v", removed)
	}
	if b.IsPeerConnected("p1") {
		t.Fatal("expected p1 no longer connected")
	}
}

func TestReset_DropsAllState(t *testing.T) {
	b := newRunningBus(t)
	b.SendMessage(msg.Message{Sender: "a1", TimestampMS: 1})
	b.ConnectToPeer("p1", "", 0, 1)
	id := b.InitiateConsensus("t", 1, 1)

	b.Reset()

	if b.Running() {
		t.Fatal("expected Reset to stop the bus")
	}
	if len(b.ReceiveMessages()) != 0 {
		t.Fatal("expected queue cleared")
	}
	if b.IsPeerConnected("p1") {
		t.Fatal("expected peers cleared")
	}
	if _, ok := b.GetConsensusStatus(id); ok {
		t.Fatal("expected consensus rounds cleared")
	}
}
