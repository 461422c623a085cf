package architecture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rostrace/rostrace/internal/domain"
)

// fileFormat mirrors the architecture YAML layout. Callback group
// membership is declared by callback name; topic endpoints and named
// paths reference nodes by name and are resolved after parsing.
type fileFormat struct {
	Nodes []struct {
		NodeName  string `yaml:"node_name"`
		Callbacks []struct {
			CallbackName       string `yaml:"callback_name"`
			CallbackType       string `yaml:"callback_type"`
			Symbol             string `yaml:"symbol"`
			PeriodNs           int64  `yaml:"period_ns"`
			SubscribeTopicName string `yaml:"subscribe_topic_name"`
		} `yaml:"callbacks"`
		CallbackGroups []struct {
			CallbackGroupName string   `yaml:"callback_group_name"`
			CallbackNames     []string `yaml:"callback_names"`
		} `yaml:"callback_groups"`
		Publishes []struct {
			TopicName string `yaml:"topic_name"`
		} `yaml:"publishes"`
		Subscribes []struct {
			TopicName string `yaml:"topic_name"`
		} `yaml:"subscribes"`
	} `yaml:"nodes"`
	NamedPaths []struct {
		PathName       string `yaml:"path_name"`
		Communications []struct {
			TopicName         string `yaml:"topic_name"`
			PublishNodeName   string `yaml:"publish_node_name"`
			SubscribeNodeName string `yaml:"subscribe_node_name"`
		} `yaml:"communications"`
	} `yaml:"named_paths"`
}

// LoadFile reads an architecture description from a YAML file.
func LoadFile(path string) (*domain.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read architecture file: %w", err)
	}
	return Parse(data)
}

// Parse builds the application graph from YAML bytes. Every pointer in
// the result is shared: a node referenced by a path is the same *Node
// that appears in Application.Nodes.
func Parse(data []byte) (*domain.Application, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse architecture yaml: %w", err)
	}

	app := &domain.Application{}
	nodesByName := make(map[string]*domain.Node, len(file.Nodes))

	for _, fn := range file.Nodes {
		node := &domain.Node{NodeName: fn.NodeName}

		callbacksByName := make(map[string]*domain.Callback, len(fn.Callbacks))
		for _, fc := range fn.Callbacks {
			cb := &domain.Callback{
				NodeName:           fn.NodeName,
				CallbackName:       fc.CallbackName,
				CallbackType:       domain.CallbackType(fc.CallbackType),
				Symbol:             fc.Symbol,
				PeriodNs:           fc.PeriodNs,
				SubscribeTopicName: fc.SubscribeTopicName,
			}
			callbacksByName[fc.CallbackName] = cb
		}

		for _, fg := range fn.CallbackGroups {
			group := &domain.CallbackGroup{
				GroupName: fg.CallbackGroupName,
				NodeName:  fn.NodeName,
			}
			for _, name := range fg.CallbackNames {
				cb, ok := callbacksByName[name]
				if !ok {
					return nil, fmt.Errorf("callback group %q references unknown callback %q on node %q",
						fg.CallbackGroupName, name, fn.NodeName)
				}
				group.Callbacks = append(group.Callbacks, cb)
			}
			node.CallbackGroups = append(node.CallbackGroups, group)
		}

		for _, fp := range fn.Publishes {
			node.Publishers = append(node.Publishers, &domain.Publisher{
				NodeName:  fn.NodeName,
				TopicName: fp.TopicName,
			})
		}
		for _, fs := range fn.Subscribes {
			node.Subscriptions = append(node.Subscriptions, &domain.Subscription{
				NodeName:  fn.NodeName,
				TopicName: fs.TopicName,
			})
		}

		app.Nodes = append(app.Nodes, node)
		nodesByName[fn.NodeName] = node
	}

	for _, fp := range file.NamedPaths {
		path := &domain.Path{PathName: fp.PathName}
		for _, fc := range fp.Communications {
			pub, ok := nodesByName[fc.PublishNodeName]
			if !ok {
				return nil, fmt.Errorf("path %q references unknown publish node %q",
					fp.PathName, fc.PublishNodeName)
			}
			sub, ok := nodesByName[fc.SubscribeNodeName]
			if !ok {
				return nil, fmt.Errorf("path %q references unknown subscribe node %q",
					fp.PathName, fc.SubscribeNodeName)
			}
			path.Communications = append(path.Communications, &domain.Communication{
				TopicName:     fc.TopicName,
				PublishNode:   pub,
				SubscribeNode: sub,
			})
		}
		app.Paths = append(app.Paths, path)
	}

	return app, nil
}
