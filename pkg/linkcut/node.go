package linkcut

// NodeID 是森林管理器分配的节点句柄，本质是节点仓库（arena）里的下标
// 句柄在节点销毁之前保持稳定；销毁后的句柄不允许再传入任何操作
type NodeID int32

// none 表示“没有这个节点”，所有结构字段的空值都用它
const none NodeID = -1

// node 是一棵辅助树（splay 树）里的节点
// left/right/parent 是同一棵辅助树内部的结构下标
// pathParent 是跨辅助树的弱引用：只有“辅助树根、且不是所在组件全局根”
// 的节点才会设置（路径父指针的边界不变式）
type node[T any] struct {
	value      T    // 调用方给的不透明标识，创建后不变
	left       NodeID
	right      NodeID
	parent     NodeID
	pathParent NodeID
	reversed   bool  // 懒惰翻转标记：置位时左右孩子在逻辑上是交换的
	size       int32 // 辅助子树节点数：size = 1 + left.size + right.size
	freed      bool  // 槽位已回收，挂在空闲链表上
}

// push 下推懒惰翻转标记：交换左右孩子，并把标记传播一层（不递归）
// 任何要读取 left/right 做结构判断的地方，必须先调用它
func (f *Forest[T]) push(x NodeID) {
	nd := &f.nodes[x]
	if !nd.reversed {
		return
	}
	nd.left, nd.right = nd.right, nd.left
	if nd.left != none {
		f.nodes[nd.left].reversed = !f.nodes[nd.left].reversed
	}
	if nd.right != none {
		f.nodes[nd.right].reversed = !f.nodes[nd.right].reversed
	}
	nd.reversed = false
}

// update 根据当前孩子重算 size，任何结构变化之后自底向上调用
func (f *Forest[T]) update(x NodeID) {
	s := int32(1)
	if l := f.nodes[x].left; l != none {
		s += f.nodes[l].size
	}
	if r := f.nodes[x].right; r != none {
		s += f.nodes[r].size
	}
	f.nodes[x].size = s
}

// isRoot 判断 x 是否是它所在辅助树的根：
// parent 为空，或 parent 的左右孩子都不指回 x
func (f *Forest[T]) isRoot(x NodeID) bool {
	p := f.nodes[x].parent
	return p == none || (f.nodes[p].left != x && f.nodes[p].right != x)
}

// rotate 标准的单次 BST 旋转，把 x 提到它结构父节点 p 的位置上
// 重挂祖父的孩子指针，再按 p、x 的顺序自底向上 update
// 注意：rotate 不碰 pathParent，它的转移由 splay 负责
func (f *Forest[T]) rotate(x NodeID) {
	p := f.nodes[x].parent
	g := f.nodes[p].parent

	if f.nodes[p].left == x {
		f.nodes[p].left = f.nodes[x].right
		if f.nodes[x].right != none {
			f.nodes[f.nodes[x].right].parent = p
		}
		f.nodes[x].right = p
	} else {
		f.nodes[p].right = f.nodes[x].left
		if f.nodes[x].left != none {
			f.nodes[f.nodes[x].left].parent = p
		}
		f.nodes[x].left = p
	}
	f.nodes[p].parent = x
	f.nodes[x].parent = g
	if g != none {
		if f.nodes[g].left == p {
			f.nodes[g].left = x
		} else if f.nodes[g].right == p {
			f.nodes[g].right = x
		}
	}

	f.update(p)
	f.update(x)
}

// splay 把 x 一路旋转到它所在辅助树的根
// zig / zig-zig / zig-zag 三种情况由“祖父-父”和“父-子”的
// 孩子方向是否一致决定；每步旋转前自顶向下（祖父、父、自己）push
// 旋过辅助树原根时把它的 pathParent 转移给 x，维持边界不变式
// 摊还复杂度的全部来源就在这里，平衡是动态维持的，没有显式高度
func (f *Forest[T]) splay(x NodeID) {
	for !f.isRoot(x) {
		p := f.nodes[x].parent
		if f.isRoot(p) {
			// zig：父节点就是辅助树根，转一次到顶
			f.push(p)
			f.push(x)
			f.nodes[x].pathParent, f.nodes[p].pathParent = f.nodes[p].pathParent, none
			f.rotate(x)
			continue
		}

		g := f.nodes[p].parent
		f.push(g)
		f.push(p)
		f.push(x)
		if f.isRoot(g) {
			f.nodes[x].pathParent, f.nodes[g].pathParent = f.nodes[g].pathParent, none
		}
		if (f.nodes[g].left == p) == (f.nodes[p].left == x) {
			// zig-zig：先转父再转自己
			f.rotate(p)
			f.rotate(x)
		} else {
			// zig-zag：自己连转两次
			f.rotate(x)
			f.rotate(x)
		}
	}
	f.push(x)
}
