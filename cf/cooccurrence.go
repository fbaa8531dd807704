package cf

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/venuekit/core"
)

// CooccurrenceTrainer 是进程内的轻量训练器：
// 物品隐向量取物品-物品共现矩阵的对应行（L2 归一化），
// 用户隐向量取其正向交互物品向量的奖励加权和（L2 归一化）。
//
// dot(user, item) 即"候选与用户历史口味的共现相似度"，
// 规模小、确定性强，适合做默认实现；更重的 ALS/BPR
// 可通过 Trainer 接口替换而不影响调度与打分。
type CooccurrenceTrainer struct{}

func (t *CooccurrenceTrainer) Name() string { return "cf.cooccurrence" }

// Train 从事件流构建因子矩阵。没有任何正向交互时返回 ErrNoPositives。
func (t *CooccurrenceTrainer) Train(_ context.Context, events []core.InteractionEvent) (*Artifact, error) {
	// user -> item -> 奖励（同键保留最近一次）
	positives := make(map[string]map[string]float64)
	itemSet := make(map[string]struct{})
	for i := range events {
		ev := &events[i]
		if ev.UserID == "" || ev.ItemID == "" {
			continue
		}
		reward := ev.EffectiveReward()
		if reward <= 0 {
			continue
		}
		if positives[ev.UserID] == nil {
			positives[ev.UserID] = make(map[string]float64)
		}
		positives[ev.UserID][ev.ItemID] = reward
		itemSet[ev.ItemID] = struct{}{}
	}
	if len(itemSet) == 0 {
		return nil, ErrNoPositives
	}

	// 索引顺序固定（排序后编号），保证同一批事件训练结果可复现
	items := make([]string, 0, len(itemSet))
	for it := range itemSet {
		items = append(items, it)
	}
	sort.Strings(items)
	itemIndex := make(map[string]int, len(items))
	for i, it := range items {
		itemIndex[it] = i
	}

	users := make([]string, 0, len(positives))
	for u := range positives {
		users = append(users, u)
	}
	sort.Strings(users)
	userIndex := make(map[string]int, len(users))
	for i, u := range users {
		userIndex[u] = i
	}

	dim := len(items)

	// 物品向量：共现行（对角为自身被交互次数）
	itemFactors := make([][]float64, dim)
	for i := range itemFactors {
		itemFactors[i] = make([]float64, dim)
	}
	for _, rated := range positives {
		for a := range rated {
			ai := itemIndex[a]
			for b := range rated {
				itemFactors[ai][itemIndex[b]]++
			}
		}
	}
	for i := range itemFactors {
		normalize(itemFactors[i])
	}

	// 用户向量：历史物品向量的奖励加权和
	userFactors := make([][]float64, len(users))
	for ui, u := range users {
		vec := make([]float64, dim)
		for it, reward := range positives[u] {
			iv := itemFactors[itemIndex[it]]
			for j := range vec {
				vec[j] += reward * iv[j]
			}
		}
		normalize(vec)
		userFactors[ui] = vec
	}

	return &Artifact{
		Factors:     dim,
		UserIndex:   userIndex,
		ItemIndex:   itemIndex,
		UserFactors: userFactors,
		ItemFactors: itemFactors,
	}, nil
}

// normalize 就地 L2 归一化；零向量原样保留。
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	n := math.Sqrt(sum)
	for i := range v {
		v[i] /= n
	}
}
