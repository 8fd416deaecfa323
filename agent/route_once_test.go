package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/telcoagents/agent/instructions"
	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/model"
)

func TestRouteOnceAgent_LatchesFirstDecision(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("mms_issue", 0.002)
	mock.EnqueueText("Let's check your MMS settings.", 0.01)
	mock.EnqueueText("Glad it works now.", 0.01)

	a := NewRouteOnceAgent(mock, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "i cannot send picture messages"})
	assert.NoError(t, err)

	assert.Equal(t, "route_once", msg.Metadata["generated_by"])
	assert.Equal(t, "mms_issue", msg.Metadata["generated_by_agent"])
	assert.Equal(t, 0.002, msg.Metadata["router_cost"])
	assert.True(t, conv.Routed)

	// Later user messages never re-route, even when the topic changes.
	msg, err = a.Respond(context.Background(), conv, &core.UserMessage{Content: "now my calls drop too"})
	assert.NoError(t, err)

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "mms_issue", msg.Metadata["generated_by_agent"])
	assert.NotContains(t, msg.Metadata, "router_cost")
}

func TestRouteOnceAgent_ClassifiesFromFirstMessageOnly(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("mobile_data_issue", 0.002)
	mock.EnqueueText("Checking your data settings.", 0.01)

	a := NewRouteOnceAgent(mock, testTools())
	conv := newConversation(t)

	_, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "my internet is very slow"})
	assert.NoError(t, err)

	// The classifier sees the opening user message, not a transcript.
	routerReq := mock.Requests()[0]
	assert.Empty(t, routerReq.Tools)
	assert.Contains(t, routerReq.Messages[1].(*core.UserMessage).Content, "my internet is very slow")

	// The compact specialist preamble carries the brief base policy and the
	// lane policy.
	preamble := conv.SystemMessages[0].Content
	assert.Contains(t, preamble, instructions.BriefBasePolicy)
	assert.Contains(t, preamble, instructions.MobileDataIssuePolicy)
	assert.Contains(t, preamble, instructions.UserDeviceCapabilities)
}

func TestRouteOnceAgent_ServiceLane(t *testing.T) {
	mock := model.NewMockModel()
	mock.EnqueueText("service_issue", 0.002)
	mock.EnqueueText("Let me look at your line.", 0.01)

	a := NewRouteOnceAgent(mock, testTools())
	conv := newConversation(t)

	msg, err := a.Respond(context.Background(), conv, &core.UserMessage{Content: "my phone has no signal"})
	assert.NoError(t, err)

	assert.Equal(t, "service_issue", msg.Metadata["generated_by_agent"])
	assert.Contains(t, conv.SystemMessages[0].Content, instructions.ServiceIssuePolicy)
}
