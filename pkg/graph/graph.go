package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// NodeInfo 是导出 DOT 时的一个森林节点
type NodeInfo struct {
	ID    int
	Label string
}

// EdgeInfo 是一条无向的森林边，Weight 为 0 时不打权重标签
type EdgeInfo struct {
	A, B   int
	Weight int
}

// ForestDOT 把被表示森林导出成 graphviz 的 DOT 文本
// 森林边没有方向，所以用无向图；节点名用 n<ID> 保证合法
func ForestDOT(name string, nodes []NodeInfo, edges []EdgeInfo) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(name); err != nil {
		return "", err
	}
	if err := g.SetDir(false); err != nil {
		return "", err
	}

	for _, n := range nodes {
		attrs := map[string]string{
			"label": fmt.Sprintf("%q", n.Label),
			"shape": "box",
		}
		if err := g.AddNode(name, dotName(n.ID), attrs); err != nil {
			return "", err
		}
	}
	for _, e := range edges {
		var attrs map[string]string
		if e.Weight != 0 {
			attrs = map[string]string{"label": fmt.Sprintf("%q", fmt.Sprint(e.Weight))}
		}
		if err := g.AddEdge(dotName(e.A), dotName(e.B), false, attrs); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func dotName(id int) string {
	return fmt.Sprintf("n%d", id)
}

// HasCycleUndirected 在无向邻接表上做 DFS 找环
// 访问到“不是来路”的已访问邻居说明成环，顺着 DFS 父指针把环
// 摘出来返回（首尾是同一个节点，可直接交给 FormatCycle 打印）
// 这是导入拓扑时并查集校验之外的第二道防线，也方便测试直接用
func HasCycleUndirected(adj map[int][]int) (bool, []int) {
	visited := make(map[int]bool)
	from := make(map[int]int) // DFS 树里的父节点

	var cycle []int
	var dfs func(cur, prev int) bool
	dfs = func(cur, prev int) bool {
		visited[cur] = true
		from[cur] = prev
		for _, nb := range adj[cur] {
			if nb == prev {
				// 无向边的另一半，不算环
				continue
			}
			if visited[nb] {
				// 回溯父指针，摘出 nb ... cur nb 这个环
				cycle = []int{nb}
				for v := cur; v != nb; v = from[v] {
					cycle = append(cycle, v)
				}
				cycle = append(cycle, nb)
				return true
			}
			if dfs(nb, cur) {
				return true
			}
		}
		return false
	}

	// 图不一定连通，每个没访问过的节点都要当一次起点
	starts := make([]int, 0, len(adj))
	for v := range adj {
		starts = append(starts, v)
	}
	sort.Ints(starts)
	for _, v := range starts {
		if !visited[v] && dfs(v, -1) {
			return true, cycle
		}
	}
	return false, nil
}

// Components 数无向邻接表里的连通分量个数
func Components(adj map[int][]int) int {
	visited := make(map[int]bool)
	count := 0

	var dfs func(cur int)
	dfs = func(cur int) {
		visited[cur] = true
		for _, nb := range adj[cur] {
			if !visited[nb] {
				dfs(nb)
			}
		}
	}

	for v := range adj {
		if !visited[v] {
			count++
			dfs(v)
		}
	}
	return count
}

// FormatCycle 把一段环路径格式化成可读字符串，方便日志和测试输出
func FormatCycle(path []int) string {
	parts := make([]string, 0, len(path))
	for _, v := range path {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, " -> ")
}
