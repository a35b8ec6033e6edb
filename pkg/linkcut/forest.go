package linkcut

import "fmt"

// Forest 管理一片动态森林（link-cut tree）：
// 若干棵辅助 splay 树用路径父指针串起来，模拟调用方看到的“被表示森林”
// 单次操作摊还 O(log n)
//
// 使用约定（必须由调用方保证）：
//   - 单线程：没有内部锁，连 Connected / FindRoot 这种“看起来只读”的
//     查询也会 splay 重构结构，所以并发访问必须在外部串行化
//   - Link 的两个节点不能已经连通：核心不做这个检查，违反会
//     悄悄破坏结构，之后的查询会给出错误答案而不会报错
//   - 只能传入本管理器分配、且尚未销毁的句柄
type Forest[T any] struct {
	nodes []node[T]
	free  NodeID // 空闲槽位链表头，复用槽位的 parent 字段当 next 指针
	live  int
}

// NewForest 创建一个空森林
func NewForest[T any]() *Forest[T] {
	return &Forest[T]{free: none}
}

// CreateNode 分配一个孤立节点（size 1，无任何连接），返回它的句柄
// 优先复用空闲链表上的槽位，节点的所有权始终归森林管理器
func (f *Forest[T]) CreateNode(value T) NodeID {
	f.live++
	if f.free != none {
		x := f.free
		f.free = f.nodes[x].parent
		f.nodes[x] = node[T]{
			value:      value,
			left:       none,
			right:      none,
			parent:     none,
			pathParent: none,
			size:       1,
		}
		return x
	}
	f.nodes = append(f.nodes, node[T]{
		value:      value,
		left:       none,
		right:      none,
		parent:     none,
		pathParent: none,
		size:       1,
	})
	return NodeID(len(f.nodes) - 1)
}

// DestroyNode 回收一个节点槽位
// 只做廉价的本地检查：节点自己的四个结构字段必须都为空
// “没有别的节点把它当 pathParent 引用”无法便宜地验证，仍然是
// 调用方的责任，违反后果同传入悬空句柄
func (f *Forest[T]) DestroyNode(x NodeID) error {
	if x < 0 || int(x) >= len(f.nodes) || f.nodes[x].freed {
		return fmt.Errorf("linkcut: 句柄 %d 无效或已销毁", x)
	}
	nd := &f.nodes[x]
	if nd.left != none || nd.right != none || nd.parent != none || nd.pathParent != none {
		return fmt.Errorf("linkcut: 节点 %d 还挂在结构里，不能销毁", x)
	}
	var zero T
	nd.value = zero
	nd.freed = true
	nd.parent = f.free // 空闲链表指针
	f.free = x
	f.live--
	return nil
}

// Value 返回节点创建时带的标识
func (f *Forest[T]) Value(x NodeID) T {
	return f.nodes[x].value
}

// Len 返回当前存活的节点数
func (f *Forest[T]) Len() int {
	return f.live
}

// access 把“被表示树根到 x 的路径”变成一棵以 x 为根的辅助树
// 它是唯一的原语，其它所有森林操作都踩在它上面；
// 副作用是全局性的：根到 x 路径上每个节点的辅助树都会被重构
//
// 过程：splay x；把 x 原来的右子树剪成独立偏好路径（pathParent 指回 x）；
// 然后沿 pathParent 逐段上爬，每段 splay 后把上一段接成右孩子；
// 最后再 splay 一次 x，这一步是摊还代价成立的必要条件，不是收尾美化
func (f *Forest[T]) access(x NodeID) {
	f.splay(x)
	if r := f.nodes[x].right; r != none {
		f.nodes[r].pathParent = x
		f.nodes[r].parent = none
		f.nodes[x].right = none
		f.update(x)
	}

	cur := x
	for f.nodes[cur].pathParent != none {
		w := f.nodes[cur].pathParent
		f.splay(w)
		if r := f.nodes[w].right; r != none {
			f.nodes[r].pathParent = w
			f.nodes[r].parent = none
		}
		f.nodes[w].right = cur
		f.nodes[cur].parent = w
		f.nodes[cur].pathParent = none
		f.update(w)
		cur = w
	}
	f.splay(x)
}

// MakeRoot 把 x 变成它所在组件的根
// 这不是纯查询：整个组件的朝向都会翻转，对之后的调用可见
// 实现就是 access 之后在 x 上打一个懒惰翻转标记
func (f *Forest[T]) MakeRoot(x NodeID) {
	f.access(x)
	f.nodes[x].reversed = !f.nodes[x].reversed
}

// FindRoot 返回 x 所在组件当前的根
// access 之后根就是辅助树里的最小元素：一路 push 着往左走到头，
// 再把找到的节点 splay 上来（摊还代价需要）
func (f *Forest[T]) FindRoot(x NodeID) NodeID {
	f.access(x)
	r := x
	f.push(r)
	for f.nodes[r].left != none {
		r = f.nodes[r].left
		f.push(r)
	}
	f.splay(r)
	return r
}

// Link 把 child 所在的整个组件挂到 parent 下面
// 前置条件：child 和 parent 不在同一组件（调用方负责，见类型注释）
func (f *Forest[T]) Link(child, parent NodeID) {
	f.MakeRoot(child)
	f.access(parent)
	f.nodes[child].pathParent = parent
}

// Cut 剪断 x 与它在被表示树里父节点之间的边
// x 没有父边（已经是组件根）时定义为无害的空操作
func (f *Forest[T]) Cut(x NodeID) {
	f.access(x)
	if l := f.nodes[x].left; l != none {
		f.nodes[l].parent = none
		f.nodes[x].left = none
		f.update(x)
	}
}

// Connected 判断两个节点是否在同一组件（根句柄相同）
func (f *Forest[T]) Connected(a, b NodeID) bool {
	return f.FindRoot(a) == f.FindRoot(b)
}

// LCA 返回 a、b 在当前朝向下的最近公共祖先
// 两点不连通时第二个返回值为 false，不跟任何合法句柄混用
func (f *Forest[T]) LCA(a, b NodeID) (NodeID, bool) {
	if !f.Connected(a, b) {
		return none, false
	}
	f.access(a)
	f.access(b)
	f.splay(a)
	if pp := f.nodes[a].pathParent; pp != none {
		return pp, true
	}
	return a, true
}

// PathSize 返回 from 到 to 的路径上的节点数（含两端）
// 不连通时第二个返回值为 false；要边数的调用方自己减一
// 注意内部用了 MakeRoot(from)：组件当前的根会变成 from，
// 这个副作用对之后的调用可见，不要把它当纯查询用
func (f *Forest[T]) PathSize(from, to NodeID) (int, bool) {
	if !f.Connected(from, to) {
		return 0, false
	}
	f.MakeRoot(from)
	f.access(to)
	return int(f.nodes[to].size), true
}
