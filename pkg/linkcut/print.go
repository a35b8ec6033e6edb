package linkcut

import (
	"fmt"
	"sort"

	"forest_tool/pkg/treeprinter"
)

// auxRef 是带翻转奇偶的节点引用：flip 为真表示从辅助树根走到
// 这个节点的路上，祖先们累计的 reversed 次数是奇数，
// 左右孩子要按交换后的方向来解释
// 靠它可以只读遍历，不用真的下推懒标记
type auxRef struct {
	id   NodeID
	flip bool
}

func (f *Forest[T]) auxChild(a auxRef, wantLeft bool) (auxRef, bool) {
	nd := f.nodes[a.id]
	p := a.flip != nd.reversed
	c := nd.left
	if wantLeft == p {
		c = nd.right
	}
	if c == none {
		return auxRef{}, false
	}
	return auxRef{id: c, flip: p}, true
}

// PrintAux 渲染 x 所在辅助树（splay 树本身的形状），调试用
// 标签是 值(s=辅助子树大小)，打了懒翻转标记的节点带 *
func (f *Forest[T]) PrintAux(x NodeID, style int) string {
	r := x
	for !f.isRoot(r) {
		r = f.nodes[r].parent
	}
	return treeprinter.PrintBinary(treeprinter.BinaryPrinter[auxRef]{
		Root: auxRef{id: r},
		Left: func(a auxRef) (auxRef, bool) {
			return f.auxChild(a, true)
		},
		Right: func(a auxRef) (auxRef, bool) {
			return f.auxChild(a, false)
		},
		Label: func(a auxRef) string {
			nd := f.nodes[a.id]
			mark := ""
			if nd.reversed {
				mark = "*"
			}
			return fmt.Sprintf("%v(s=%d)%s", nd.value, nd.size, mark)
		},
		Style: style,
	})
}

// repParent 算出 v 在被表示树（当前朝向）里的父节点
// 规则：辅助树中序的前驱就是路径上的父亲；
// v 是本辅助树中序最左时，父亲是辅助树根的 pathParent
// 只读计算，单次 O(辅助树深度)
func (f *Forest[T]) repParent(v NodeID) NodeID {
	// 从 v 上行收集到辅助树根
	path := []NodeID{v}
	for !f.isRoot(path[len(path)-1]) {
		path = append(path, f.nodes[path[len(path)-1]].parent)
	}
	// 自顶向下算“含自身 reversed”的翻转奇偶
	flips := make([]bool, len(path))
	flip := false
	for i := len(path) - 1; i >= 0; i-- {
		flip = flip != f.nodes[path[i]].reversed
		flips[i] = flip
	}

	// 有有效左子树：前驱是左子树里最右的节点
	nd := f.nodes[v]
	effLeft := nd.left
	if flips[0] {
		effLeft = nd.right
	}
	if effLeft != none {
		cur, above := effLeft, flips[0]
		for {
			cnd := f.nodes[cur]
			ori := above != cnd.reversed
			effRight := cnd.right
			if ori {
				effRight = cnd.left
			}
			if effRight == none {
				return cur
			}
			cur, above = effRight, ori
		}
	}

	// 没有左子树：沿上行路径找第一个“v 这侧是它有效右孩子”的祖先
	for i := 0; i+1 < len(path); i++ {
		child, anc := path[i], path[i+1]
		and := f.nodes[anc]
		effRight := and.right
		if flips[i+1] {
			effRight = and.left
		}
		if effRight == child {
			return anc
		}
	}

	// v 是中序最左：跨辅助树回到上一段偏好路径
	return f.nodes[path[len(path)-1]].pathParent
}

// PrintRepresented 渲染 x 所在组件的被表示树（调用方视角的那棵树）
// 从辅助树中序和路径父指针重建父子关系，再用多叉打印器输出
// 兄弟按句柄排序，输出是确定的
func (f *Forest[T]) PrintRepresented(x NodeID, style int) string {
	parents := make(map[NodeID]NodeID)
	children := make(map[NodeID][]NodeID)
	for i := range f.nodes {
		if f.nodes[i].freed {
			continue
		}
		id := NodeID(i)
		p := f.repParent(id)
		parents[id] = p
		if p != none {
			children[p] = append(children[p], id)
		}
	}

	root := x
	for parents[root] != none {
		root = parents[root]
	}
	for _, cs := range children {
		sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	}

	var build func(id NodeID) *treeprinter.MultiNode
	build = func(id NodeID) *treeprinter.MultiNode {
		n := &treeprinter.MultiNode{Data: fmt.Sprintf("%v", f.nodes[id].value)}
		for _, c := range children[id] {
			n.Children = append(n.Children, build(c))
		}
		return n
	}

	return treeprinter.PrintMulti(treeprinter.MultiPrinter{
		Root:  build(root),
		Style: style,
	})
}
