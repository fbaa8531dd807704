package builders

import (
	"context"
	"testing"

	"github.com/rushteam/venuekit/config"
	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pipeline"
)

func TestInitRegistersBuiltinNodes(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter.geo", "filter.rule", "rank.bandit", "rerank.topn"}
	got := make(map[string]bool, len(supported))
	for _, s := range supported {
		got[s] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("type %q not registered (have %v)", w, supported)
		}
	}
}

func TestBuildPipelineFromConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "venue"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter.geo", Config: map[string]any{}},
		{Type: "rank.bandit", Config: map[string]any{"alpha": 0.5, "top_k": 3}},
		{Type: "rerank.topn", Config: map[string]any{"n": 2}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(p.Nodes))
	}

	rctx := &core.RecommendContext{UserID: "u1", Query: &core.Query{}}
	pool := []*core.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	out, err := p.Run(context.Background(), rctx, pool)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2 after topn", len(out))
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.hot"}}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("unknown type should fail validation")
	}
}

func TestBuildRuleFilterRequiresExpr(t *testing.T) {
	if _, err := BuildRuleFilterNode(map[string]any{}); err == nil {
		t.Error("missing expr should fail")
	}
	node, err := BuildRuleFilterNode(map[string]any{"expr": "candidate.review_count >= 0"})
	if err != nil {
		t.Fatalf("BuildRuleFilterNode() error = %v", err)
	}
	if node.Name() != "filter.node" {
		t.Errorf("node name = %q", node.Name())
	}
}
