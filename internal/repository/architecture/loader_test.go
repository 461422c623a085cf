package architecture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/domain"
)

const sampleYAML = `
nodes:
  - node_name: /talker
    callbacks:
      - callback_name: timer_callback_0
        callback_type: timer_callback
        symbol: Talker::on_timer
        period_ns: 100000000
    callback_groups:
      - callback_group_name: group_0
        callback_names: [timer_callback_0]
    publishes:
      - topic_name: /chatter
  - node_name: /listener
    callbacks:
      - callback_name: subscription_callback_0
        callback_type: subscription_callback
        symbol: Listener::on_message
        subscribe_topic_name: /chatter
    callback_groups:
      - callback_group_name: group_0
        callback_names: [subscription_callback_0]
    subscribes:
      - topic_name: /chatter
named_paths:
  - path_name: chatter_path
    communications:
      - topic_name: /chatter
        publish_node_name: /talker
        subscribe_node_name: /listener
`

func TestParse(t *testing.T) {
	app, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, app.Nodes, 2)

	talker := app.FindNode("/talker")
	require.NotNil(t, talker)
	require.Len(t, talker.CallbackGroups, 1)
	require.Len(t, talker.CallbackGroups[0].Callbacks, 1)

	cb := talker.CallbackGroups[0].Callbacks[0]
	assert.Equal(t, "/talker/timer_callback_0", cb.UniqueName())
	assert.Equal(t, domain.CallbackTypeTimer, cb.CallbackType)
	assert.Equal(t, int64(100_000_000), cb.PeriodNs)

	require.Len(t, talker.Publishers, 1)
	assert.Equal(t, "/chatter", talker.Publishers[0].TopicName)

	listener := app.FindNode("/listener")
	require.NotNil(t, listener)
	sub := listener.CallbackGroups[0].Callbacks[0]
	assert.Equal(t, domain.CallbackTypeSubscription, sub.CallbackType)
	assert.Equal(t, "/chatter", sub.SubscribeTopicName)
}

func TestParseResolvesPathNodes(t *testing.T) {
	app, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, app.Paths, 1)

	path := app.FindPath("chatter_path")
	require.NotNil(t, path)
	require.Len(t, path.Communications, 1)

	comm := path.Communications[0]
	// Path hops share node pointers with the application graph.
	assert.Same(t, app.FindNode("/talker"), comm.PublishNode)
	assert.Same(t, app.FindNode("/listener"), comm.SubscribeNode)
}

func TestParseUnknownCallbackReference(t *testing.T) {
	bad := `
nodes:
  - node_name: /talker
    callback_groups:
      - callback_group_name: group_0
        callback_names: [missing]
`
	_, err := Parse([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown callback")
}

func TestParseUnknownPathNode(t *testing.T) {
	bad := `
nodes:
  - node_name: /talker
named_paths:
  - path_name: p
    communications:
      - topic_name: /chatter
        publish_node_name: /talker
        subscribe_node_name: /ghost
`
	_, err := Parse([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subscribe node")
}
