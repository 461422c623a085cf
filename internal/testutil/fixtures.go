// Package testutil provides shared fixtures for tests: a small
// talker/listener application graph and record table constructors.
package testutil

import (
	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/record"
)

// Application builds a two-node talker/listener graph with one timer
// callback, one subscription callback and a single-hop named path.
func Application() *domain.Application {
	timerCb := &domain.Callback{
		NodeName:     "/talker",
		CallbackName: "timer_callback_0",
		CallbackType: domain.CallbackTypeTimer,
		Symbol:       "Talker::on_timer",
		PeriodNs:     100_000_000,
	}
	subCb := &domain.Callback{
		NodeName:           "/listener",
		CallbackName:       "subscription_callback_0",
		CallbackType:       domain.CallbackTypeSubscription,
		Symbol:             "Listener::on_message",
		SubscribeTopicName: "/chatter",
	}

	talker := &domain.Node{
		NodeName: "/talker",
		CallbackGroups: []*domain.CallbackGroup{
			{GroupName: "group_0", NodeName: "/talker", Callbacks: []*domain.Callback{timerCb}},
		},
		Publishers: []*domain.Publisher{{NodeName: "/talker", TopicName: "/chatter"}},
	}
	listener := &domain.Node{
		NodeName: "/listener",
		CallbackGroups: []*domain.CallbackGroup{
			{GroupName: "group_0", NodeName: "/listener", Callbacks: []*domain.Callback{subCb}},
		},
		Subscriptions: []*domain.Subscription{{NodeName: "/listener", TopicName: "/chatter"}},
	}

	return &domain.Application{
		Nodes: []*domain.Node{talker, listener},
		Paths: []*domain.Path{
			{
				PathName: "chatter_path",
				Communications: []*domain.Communication{
					{TopicName: "/chatter", PublishNode: talker, SubscribeNode: listener},
				},
			},
		},
	}
}

// SpanTable builds a callback execution span table from start/end pairs
func SpanTable(rows ...[2]int64) *record.RecordTable {
	table := record.NewRecordTable("callback_start", "callback_end")
	for _, r := range rows {
		table.Append(record.Row{"callback_start": r[0], "callback_end": r[1]})
	}
	return table
}

// MetricTable builds a metric sample table with one-second spacing
func MetricTable(metric record.Metric, base int64, values ...int64) *record.RecordTable {
	table := record.NewRecordTable("timestamp", string(metric))
	for i, v := range values {
		table.Append(record.Row{
			"timestamp":    base + int64(i)*1_000_000_000,
			string(metric): v,
		})
	}
	return table
}
