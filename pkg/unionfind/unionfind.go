package unionfind

// UnionFind 是并查集，带路径压缩和按秩合并
// 在这个仓库里它干两件事：导入拓扑时先验证边表是不是森林
// （link-cut 核心不做成环检查，必须有人在外面挡），
// 以及在测试里当只连不剪场景的连通性参照
type UnionFind struct {
	parent []int
	rank   []int
	size   []int // 每个集合的元素个数
	sets   int   // 当前集合数
}

// New 初始化并查集，元素范围 [0, n)
func New(n int) *UnionFind {
	parent := make([]int, n)
	rank := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{parent: parent, rank: rank, size: size, sets: n}
}

// Find 返回 x 所在集合的根（迭代版路径压缩，避免深链上的递归）
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

// Union 合并两个集合，已经同集返回 false（调用方靠这个发现成环的边）
func (uf *UnionFind) Union(x, y int) bool {
	rootX := uf.Find(x)
	rootY := uf.Find(y)
	if rootX == rootY {
		return false
	}

	if uf.rank[rootX] < uf.rank[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	if uf.rank[rootX] == uf.rank[rootY] {
		uf.rank[rootX]++
	}
	uf.sets--
	return true
}

// Connected 判断两个元素是否同集
func (uf *UnionFind) Connected(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

// Size 返回 x 所在集合的元素个数
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}

// Sets 返回当前的集合数（导入报告里的“组件数”就是它）
func (uf *UnionFind) Sets() int {
	return uf.sets
}
