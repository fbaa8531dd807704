package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/venuekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("candidate", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("query", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：candidate.rating >= 4.0 / candidate.cf_score > 0.5
//   - 文本：candidate.name.contains("chay") / "bbq" in candidate.cuisines
//   - 查询侧：query.intent == "dinner" / "vegetarian" in query.special_requirements
//   - 标签：label.filtered != null
//
// 示例：
//   - `candidate.review_count >= 10` → 只保留有足够评价量的门店
//   - `!("peanut" in query.allergies) || !candidate.name.contains("peanut")`
type Eval struct {
	candidate *core.Candidate
	rctx      *core.RecommendContext
	env       *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(candidate *core.Candidate, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		candidate: candidate,
		rctx:      rctx,
		env:       env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式恒为 true。表达式必须返回布尔值。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；应使用 label.key != null 判存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	for k, v := range e.candidate.Labels {
		labels[k] = map[string]any{"value": v.Value, "source": v.Source}
		// label.xxx 直接取 value，便于书写
		labelAccessor[k] = v.Value
	}

	candidate := map[string]any{
		"id":           e.candidate.ID,
		"name":         e.candidate.Name,
		"address":      e.candidate.Address,
		"rating":       optFloat(e.candidate.Rating),
		"review_count": e.candidate.ReviewCount,
		"cuisines":     e.candidate.Cuisines,
		"url":          e.candidate.URL,
		"distance_km":  optFloat(e.candidate.DistanceKm),
		"cf_score":     e.candidate.CFScore,
		"labels":       labels,
	}

	query := map[string]any{}
	if e.rctx != nil && e.rctx.Query != nil {
		q := e.rctx.Query
		query = map[string]any{
			"intent":               q.Intent,
			"cuisines":             q.Cuisines,
			"special_requirements": q.SpecialRequirements,
			"allergies":            q.Allergies,
			"raw_input":            q.RawInput,
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"user_id":   e.rctx.UserID,
			"device_id": e.rctx.DeviceID,
			"scene":     e.rctx.Scene,
			"params":    e.rctx.Params,
		}
	}

	return map[string]any{
		"candidate": candidate,
		"label":     labelAccessor,
		"query":     query,
		"rctx":      rctx,
	}
}

// optFloat 将可选字段映射为 CEL 可比较的数值；缺失时为 0.0。
func optFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
