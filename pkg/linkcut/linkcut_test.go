package linkcut_test

import (
	"fmt"
	"math/rand"
	"testing"

	"forest_tool/internal/testutils"
	"forest_tool/pkg/linkcut"
	"forest_tool/pkg/treeprinter"
)

// buildChain 建一条 1–2–…–n 的链，返回 1 基的句柄表
// 连法和使用方一致：Link(i, i-1)，即把 i 挂到 i-1 下面
func buildChain(n int) (*linkcut.Forest[int], []linkcut.NodeID) {
	f := linkcut.NewForest[int]()
	ids := make([]linkcut.NodeID, n+1)
	for i := 1; i <= n; i++ {
		ids[i] = f.CreateNode(i)
	}
	for i := 2; i <= n; i++ {
		f.Link(ids[i], ids[i-1])
	}
	return f, ids
}

func TestChainPathSize(t *testing.T) {
	f, ids := buildChain(5)

	n, ok := f.PathSize(ids[1], ids[5])
	if !ok {
		t.Fatal("1 和 5 应该连通")
	}
	if n != 5 {
		t.Errorf("PathSize(1,5) = %d, want 5（4 条边）", n)
	}
	if r := f.FindRoot(ids[3]); r != ids[1] {
		t.Errorf("FindRoot(3) = %v, want 节点 1 的句柄", r)
	}

	fmt.Println("* TestChainPathSize:")
	fmt.Print(f.PrintRepresented(ids[3], treeprinter.StyleUnicode))
}

func TestCutSplitsChain(t *testing.T) {
	f, ids := buildChain(5)

	// 剪掉 2–3 这条边：3 的父边就是它
	f.Cut(ids[3])

	if f.Connected(ids[1], ids[4]) {
		t.Error("剪断 2–3 之后 1 和 4 不应连通")
	}
	if !f.Connected(ids[1], ids[2]) {
		t.Error("1 和 2 应该还连着")
	}
	if !f.Connected(ids[3], ids[4]) {
		t.Error("3 和 4 应该还连着")
	}
}

func TestJoinTwoChains(t *testing.T) {
	f := linkcut.NewForest[int]()
	ids := make([]linkcut.NodeID, 7)
	for i := 1; i <= 6; i++ {
		ids[i] = f.CreateNode(i)
	}
	// 两条独立的链 1–2–3 和 4–5–6
	f.Link(ids[2], ids[1])
	f.Link(ids[3], ids[2])
	f.Link(ids[5], ids[4])
	f.Link(ids[6], ids[5])

	// link(1,4) 把两条链接成一棵
	f.Link(ids[1], ids[4])

	if !f.Connected(ids[3], ids[6]) {
		t.Fatal("合并之后 3 和 6 应该连通")
	}
	n, ok := f.PathSize(ids[3], ids[6])
	if !ok {
		t.Fatal("3 和 6 应该有路径")
	}
	// 路径 3-2-1-4-5-6：6 个节点 5 条边
	if n != 6 {
		t.Errorf("PathSize(3,6) = %d, want 6", n)
	}
}

func TestLCAOnChain(t *testing.T) {
	f, ids := buildChain(4)

	l, ok := f.LCA(ids[2], ids[4])
	if !ok {
		t.Fatal("2 和 4 连通，LCA 应该有结果")
	}
	// 根是 1 的简单链，2 是 4 的祖先
	if l != ids[2] {
		t.Errorf("LCA(2,4) = %v, want 节点 2 的句柄", l)
	}
}

func TestLCADisconnected(t *testing.T) {
	f := linkcut.NewForest[int]()
	a := f.CreateNode(1)
	b := f.CreateNode(2)

	if _, ok := f.LCA(a, b); ok {
		t.Error("不连通的两点 LCA 应该返回无结果")
	}
	if _, ok := f.PathSize(a, b); ok {
		t.Error("不连通的两点 PathSize 应该返回无结果")
	}
}

func TestFindRootIdempotent(t *testing.T) {
	f, ids := buildChain(6)

	r1 := f.FindRoot(ids[4])
	r2 := f.FindRoot(ids[4])
	if r1 != r2 {
		t.Errorf("连续两次 FindRoot 结果不同: %v != %v", r1, r2)
	}
	// 同组件每个节点的根都一样
	for i := 1; i <= 6; i++ {
		if r := f.FindRoot(ids[i]); r != r1 {
			t.Errorf("FindRoot(%d) = %v, want %v", i, r, r1)
		}
	}
}

func TestPathSizeSymmetric(t *testing.T) {
	f, ids := buildChain(5)

	ab, okAB := f.PathSize(ids[2], ids[5])
	ba, okBA := f.PathSize(ids[5], ids[2])
	if !okAB || !okBA || ab != ba {
		t.Errorf("PathSize 不对称: (%d,%v) vs (%d,%v)", ab, okAB, ba, okBA)
	}

	if n, ok := f.PathSize(ids[3], ids[3]); !ok || n != 1 {
		t.Errorf("PathSize(a,a) = (%d,%v), want (1,true)", n, ok)
	}
}

func TestMakeRootThenFindRoot(t *testing.T) {
	f, ids := buildChain(5)

	f.MakeRoot(ids[4])
	if r := f.FindRoot(ids[4]); r != ids[4] {
		t.Errorf("MakeRoot 之后 FindRoot(4) = %v, want 自己", r)
	}
	// 重定根对整个组件可见
	if r := f.FindRoot(ids[1]); r != ids[4] {
		t.Errorf("重定根之后 FindRoot(1) = %v, want 节点 4 的句柄", r)
	}
}

func TestCutWithoutParentIsNoop(t *testing.T) {
	f, ids := buildChain(4)

	// 1 是根，没有父边，剪它什么都不该发生
	f.Cut(ids[1])

	for i := 1; i <= 4; i++ {
		for j := i + 1; j <= 4; j++ {
			if !f.Connected(ids[i], ids[j]) {
				t.Errorf("空剪之后 %d 和 %d 的连通性变了", i, j)
			}
		}
	}
}

func TestDestroyNode(t *testing.T) {
	f := linkcut.NewForest[int]()
	a := f.CreateNode(1)
	b := f.CreateNode(2)
	f.Link(b, a)

	if err := f.DestroyNode(b); err == nil {
		t.Error("还挂在结构里的节点不应允许销毁")
	}

	f.Cut(b)
	// Cut 之后 b 是孤立组件，归零辅助树状态后可以回收
	f.PathSize(b, b)
	if err := f.DestroyNode(b); err != nil {
		t.Errorf("孤立节点销毁失败: %v", err)
	}
	if err := f.DestroyNode(b); err == nil {
		t.Error("重复销毁应该报错")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}

	// 槽位复用
	c := f.CreateNode(3)
	if f.Value(c) != 3 {
		t.Errorf("复用槽位的值 = %d, want 3", f.Value(c))
	}
}

func TestPrintRenders(t *testing.T) {
	f, ids := buildChain(4)

	aux := f.PrintAux(ids[2], treeprinter.StyleUnicode)
	rep := f.PrintRepresented(ids[2], treeprinter.StyleUnicode)
	fmt.Println("* TestPrintRenders 辅助树:")
	fmt.Print(aux)
	fmt.Println("* TestPrintRenders 被表示树:")
	fmt.Print(rep)

	if aux == "" || rep == "" {
		t.Error("渲染结果不应为空")
	}
}

// 随机风暴：和邻接表参照实现对拍
// 只通过受保护路径操作（连之前先查连通，剪只剪存在的边），
// 这正是核心文档要求调用方遵守的契约
func TestRandomStormAgainstOracle(t *testing.T) {
	const (
		nodes = 40
		steps = 3000
	)
	rng := rand.New(rand.NewSource(20260826))

	f := linkcut.NewForest[int]()
	oracle := testutils.NewForestOracle()
	ids := make([]linkcut.NodeID, nodes)
	for i := 0; i < nodes; i++ {
		ids[i] = f.CreateNode(i)
		oracle.AddNode(i)
	}

	for step := 0; step < steps; step++ {
		a := rng.Intn(nodes)
		b := rng.Intn(nodes)

		switch rng.Intn(3) {
		case 0: // link
			if a != b && !oracle.Connected(a, b) {
				f.Link(ids[a], ids[b])
				oracle.Link(a, b)
			}
		case 1: // cut 一条真实存在的边
			edges := oracle.Edges()
			if len(edges) > 0 {
				e := edges[rng.Intn(len(edges))]
				f.MakeRoot(ids[e[0]])
				f.Cut(ids[e[1]])
				oracle.CutEdge(e[0], e[1])
			}
		case 2: // 查询对拍
			gotConn := f.Connected(ids[a], ids[b])
			wantConn := oracle.Connected(a, b)
			if gotConn != wantConn {
				t.Fatalf("step %d: Connected(%d,%d) = %v, 参照 = %v",
					step, a, b, gotConn, wantConn)
			}
			gotN, gotOK := f.PathSize(ids[a], ids[b])
			wantN, wantOK := oracle.PathLen(a, b)
			if gotOK != wantOK || (gotOK && gotN != wantN) {
				t.Fatalf("step %d: PathSize(%d,%d) = (%d,%v), 参照 = (%d,%v)",
					step, a, b, gotN, gotOK, wantN, wantOK)
			}
		}
	}
}

// LCA 的路径性质：l 在 a–b 的路径上，
// 所以 PathSize(a,l) + PathSize(l,b) - 1 == PathSize(a,b)
// 这个等式和当前的根无关，适合在随机结构上验证
func TestLCAPathProperty(t *testing.T) {
	const nodes = 30
	rng := rand.New(rand.NewSource(7))

	f := linkcut.NewForest[int]()
	oracle := testutils.NewForestOracle()
	ids := make([]linkcut.NodeID, nodes)
	for i := 0; i < nodes; i++ {
		ids[i] = f.CreateNode(i)
		oracle.AddNode(i)
	}
	// 随机长成一棵树
	for i := 1; i < nodes; i++ {
		p := rng.Intn(i)
		f.Link(ids[i], ids[p])
		oracle.Link(i, p)
	}

	for trial := 0; trial < 200; trial++ {
		a := rng.Intn(nodes)
		b := rng.Intn(nodes)
		l, ok := f.LCA(ids[a], ids[b])
		if !ok {
			t.Fatalf("同一棵树上 LCA(%d,%d) 不应无结果", a, b)
		}
		al, _ := f.PathSize(ids[a], l)
		lb, _ := f.PathSize(l, ids[b])
		ab, _ := f.PathSize(ids[a], ids[b])
		if al+lb-1 != ab {
			t.Fatalf("LCA(%d,%d) 不在路径上: %d + %d - 1 != %d", a, b, al, lb, ab)
		}
	}
}
