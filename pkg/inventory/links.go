package inventory

import "github.com/google/btree"

// Link 是一条带权链路，端点规范化成 A < B，方向没有意义
// （MakeRoot 会翻转整个组件的朝向，父子方向靠不住，
// 所以元数据只认无序点对）
type Link struct {
	A, B   int
	Weight int
}

func normPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// linkIndex 维护链路的旁路元数据：
// 点对 -> 权重的精确查找，B 树按权重有序，加上每台机器的度数
type linkIndex struct {
	byPair   map[[2]int]Link
	byWeight *btree.BTreeG[Link]
	degree   map[int]int
}

func linkLess(a, b Link) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.A != b.A {
		return a.A < b.A
	}
	return a.B < b.B
}

func newLinkIndex() *linkIndex {
	return &linkIndex{
		byPair:   make(map[[2]int]Link),
		byWeight: btree.NewG(2, linkLess),
		degree:   make(map[int]int),
	}
}

func (li *linkIndex) add(a, b, weight int) {
	a, b = normPair(a, b)
	l := Link{A: a, B: b, Weight: weight}
	li.byPair[[2]int{a, b}] = l
	li.byWeight.ReplaceOrInsert(l)
	li.degree[a]++
	li.degree[b]++
}

func (li *linkIndex) remove(a, b int) {
	a, b = normPair(a, b)
	l, ok := li.byPair[[2]int{a, b}]
	if !ok {
		return
	}
	delete(li.byPair, [2]int{a, b})
	li.byWeight.Delete(l)
	li.degree[a]--
	li.degree[b]--
}

func (li *linkIndex) get(a, b int) (Link, bool) {
	a, b = normPair(a, b)
	l, ok := li.byPair[[2]int{a, b}]
	return l, ok
}

func (li *linkIndex) degreeOf(id int) int {
	return li.degree[id]
}

// GetLink 查询一条链路的权重元数据
func (inv *Inventory) GetLink(a, b int) (Link, bool) {
	return inv.links.get(a, b)
}

// Links 按权重从小到大返回全部链路
func (inv *Inventory) Links() []Link {
	out := make([]Link, 0, inv.links.byWeight.Len())
	inv.links.byWeight.Ascend(func(l Link) bool {
		out = append(out, l)
		return true
	})
	return out
}

// HeaviestLink 返回权重最大的链路
func (inv *Inventory) HeaviestLink() (Link, bool) {
	return inv.links.byWeight.Max()
}

// Degree 返回一台服务器上挂着的链路数
func (inv *Inventory) Degree(id int) (int, error) {
	if _, err := inv.lookup(id); err != nil {
		return 0, err
	}
	return inv.links.degreeOf(id), nil
}
