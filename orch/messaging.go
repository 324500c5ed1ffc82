package orch

import (
	"github.com/nervosys/autonomysim-swarmcore/ctx"
	"github.com/nervosys/autonomysim-swarmcore/msg"
)

// BroadcastMessage forwards m to MSG's SendBroadcast.
func (o *Orchestrator) BroadcastMessage(m msg.Message) bool {
	return o.msg.SendBroadcast(m)
}

// SendAgentMessage forwards m to MSG's SendMessage.
func (o *Orchestrator) SendAgentMessage(m msg.Message) bool {
	return o.msg.SendMessage(m)
}

// GetMessages drains and returns MSG's full queue.
func (o *Orchestrator) GetMessages() []msg.Message {
	return o.msg.ReceiveMessages()
}

// PublishContext forwards entry to CTX's PublishContext.
func (o *Orchestrator) PublishContext(entry ctx.ContextEntry) bool {
	return o.ctx.PublishContext(entry)
}

// QuerySwarmContext forwards agentID to CTX's QueryContext.
func (o *Orchestrator) QuerySwarmContext(agentID string) ctx.ContextQuery {
	return o.ctx.QueryContext(agentID)
}
