package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/venuekit/core"
)

type stubNode struct {
	name string
	fn   func([]*core.Candidate) ([]*core.Candidate, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return KindFilter }
func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, cs []*core.Candidate) ([]*core.Candidate, error) {
	return n.fn(cs)
}

func TestPipelineRunChainsNodes(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "drop-first", fn: func(cs []*core.Candidate) ([]*core.Candidate, error) {
			return cs[1:], nil
		}},
		&stubNode{name: "drop-last", fn: func(cs []*core.Candidate) ([]*core.Candidate, error) {
			return cs[:len(cs)-1], nil
		}},
	}}

	in := []*core.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out, err := p.Run(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "b" {
		t.Errorf("Run() = %v, want [b]", out)
	}
}

func TestPipelineRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "fail", fn: func([]*core.Candidate) ([]*core.Candidate, error) {
			return nil, boom
		}},
		&stubNode{name: "after", fn: func(cs []*core.Candidate) ([]*core.Candidate, error) {
			called = true
			return cs, nil
		}},
	}}

	if _, err := p.Run(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if called {
		t.Error("nodes after a failure must not run")
	}
}

func TestLoadFromYAMLAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	yaml := `
pipeline:
  name: demo
  nodes:
    - type: noop
      config:
        tag: x
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "demo" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Pipeline.Nodes[0].Config["tag"] != "x" {
		t.Errorf("node config = %v", cfg.Pipeline.Nodes[0].Config)
	}

	factory := NewNodeFactory()
	factory.Register("noop", func(map[string]any) (Node, error) {
		return &stubNode{name: "noop", fn: func(cs []*core.Candidate) ([]*core.Candidate, error) {
			return cs, nil
		}}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0].Name() != "noop" {
		t.Errorf("pipeline nodes = %v", p.Nodes)
	}
}

func TestBuildPipelineUnknownType(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "ghost"}}
	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Error("unknown node type should fail the build")
	}
}
