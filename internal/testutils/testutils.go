package testutils

// ForestOracle 是测试用的参照实现：邻接表 + BFS，怎么慢怎么直白
// link-cut 树的答案全部和它对拍
type ForestOracle struct {
	adj map[int]map[int]bool
}

func NewForestOracle() *ForestOracle {
	return &ForestOracle{adj: make(map[int]map[int]bool)}
}

// AddNode 登记一个孤立节点
func (o *ForestOracle) AddNode(id int) {
	if o.adj[id] == nil {
		o.adj[id] = make(map[int]bool)
	}
}

// Link 加一条无向边（调用方保证不成环，和被测结构同一个契约）
func (o *ForestOracle) Link(a, b int) {
	o.AddNode(a)
	o.AddNode(b)
	o.adj[a][b] = true
	o.adj[b][a] = true
}

// CutEdge 删一条无向边，不存在就什么都不做
func (o *ForestOracle) CutEdge(a, b int) {
	delete(o.adj[a], b)
	delete(o.adj[b], a)
}

// HasEdge 判断两点之间有没有直接边
func (o *ForestOracle) HasEdge(a, b int) bool {
	return o.adj[a][b]
}

// Connected 用 BFS 判连通
func (o *ForestOracle) Connected(a, b int) bool {
	_, ok := o.PathLen(a, b)
	return ok
}

// PathLen 返回 a 到 b 路径上的节点数（含两端），不连通返回 false
// 森林里两点间的简单路径唯一，BFS 的最短路就是它
func (o *ForestOracle) PathLen(a, b int) (int, bool) {
	if _, ok := o.adj[a]; !ok {
		return 0, false
	}
	if a == b {
		return 1, true
	}
	dist := map[int]int{a: 1}
	queue := []int{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nb := range o.adj[cur] {
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = dist[cur] + 1
			if nb == b {
				return dist[nb], true
			}
			queue = append(queue, nb)
		}
	}
	return 0, false
}

// Adjacency 导出邻接表副本，给 graph 包的检查函数用
func (o *ForestOracle) Adjacency() map[int][]int {
	out := make(map[int][]int, len(o.adj))
	for v, nbs := range o.adj {
		list := make([]int, 0, len(nbs))
		for nb := range nbs {
			list = append(list, nb)
		}
		out[v] = list
	}
	return out
}

// Edges 返回当前所有无向边，每条只出现一次（小端点在前）
func (o *ForestOracle) Edges() [][2]int {
	var out [][2]int
	for a, nbs := range o.adj {
		for b := range nbs {
			if a < b {
				out = append(out, [2]int{a, b})
			}
		}
	}
	return out
}
