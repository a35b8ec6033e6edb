package inventory

import (
	"forest_tool/pkg/errorutil"
	"forest_tool/pkg/linkcut"
	"forest_tool/pkg/logutil"

	radix "github.com/armon/go-radix"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/mohae/deepcopy"
	"golang.org/x/exp/slices"
)

// Status 是服务器的运行状态，纯旁路元数据，核心结构对它一无所知
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusMaint   Status = "maint"
)

// Server 是一台服务器的登记信息
type Server struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

type entry struct {
	meta Server
	node linkcut.NodeID
}

// Inventory 是 link-cut 森林的薄消费层：
// 维护外部编号到节点句柄的映射和旁路元数据（名字、状态、链路权重）
// 核心不检查 Link 成环的前置条件，所以这里每次 Connect 之前
// 都先做 Connected 检查，把非法请求挡在结构外面
// 和核心一样只支持单线程使用
type Inventory struct {
	forest *linkcut.Forest[int]
	byID   *treemap.Map // 编号 -> *entry，按编号有序
	byName *radix.Tree  // 名字 -> 编号，前缀检索用
	links  *linkIndex
}

func New() *Inventory {
	return &Inventory{
		forest: linkcut.NewForest[int](),
		byID:   treemap.NewWith(utils.IntComparator),
		byName: radix.New(),
		links:  newLinkIndex(),
	}
}

func (inv *Inventory) lookup(id int) (*entry, error) {
	v, ok := inv.byID.Get(id)
	if !ok {
		return nil, errorutil.Newf(errorutil.CodeUnknownServer, "服务器 %d 不存在", id)
	}
	return v.(*entry), nil
}

// AddServer 登记一台新服务器，编号和名字都必须唯一
func (inv *Inventory) AddServer(id int, name string, status Status) error {
	if name == "" {
		return errorutil.Newf(errorutil.CodeInvalidUsage, "服务器 %d 的名字不能为空", id)
	}
	if _, ok := inv.byID.Get(id); ok {
		return errorutil.Newf(errorutil.CodeDuplicateServer, "编号 %d 已被占用", id)
	}
	if _, ok := inv.byName.Get(name); ok {
		return errorutil.Newf(errorutil.CodeDuplicateServer, "名字 %q 已被占用", name)
	}

	e := &entry{
		meta: Server{ID: id, Name: name, Status: status},
		node: inv.forest.CreateNode(id),
	}
	inv.byID.Put(id, e)
	inv.byName.Insert(name, id)
	logutil.Debug("登记服务器 %d (%s)", id, name)
	return nil
}

// RemoveServer 注销一台服务器，它名下不能再挂任何链路
func (inv *Inventory) RemoveServer(id int) error {
	e, err := inv.lookup(id)
	if err != nil {
		return err
	}
	if d := inv.links.degreeOf(id); d > 0 {
		return errorutil.Newf(errorutil.CodeNotDetached,
			"服务器 %d 还挂着 %d 条链路，先断开再移除", id, d)
	}
	// 孤立组件做一次自环查询，把辅助树状态归零后才能安全回收
	inv.forest.PathSize(e.node, e.node)
	if err := inv.forest.DestroyNode(e.node); err != nil {
		return errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	inv.byID.Remove(id)
	inv.byName.Delete(e.meta.Name)
	logutil.Debug("注销服务器 %d (%s)", id, e.meta.Name)
	return nil
}

// Rename 改名，新名字同样要求唯一
func (inv *Inventory) Rename(id int, newName string) error {
	e, err := inv.lookup(id)
	if err != nil {
		return err
	}
	if newName == "" {
		return errorutil.Newf(errorutil.CodeInvalidUsage, "新名字不能为空")
	}
	if old, ok := inv.byName.Get(newName); ok {
		if old.(int) == id {
			return nil
		}
		return errorutil.Newf(errorutil.CodeDuplicateServer, "名字 %q 已被占用", newName)
	}
	inv.byName.Delete(e.meta.Name)
	inv.byName.Insert(newName, id)
	e.meta.Name = newName
	return nil
}

// SetStatus 更新运行状态
func (inv *Inventory) SetStatus(id int, status Status) error {
	e, err := inv.lookup(id)
	if err != nil {
		return err
	}
	e.meta.Status = status
	return nil
}

// Connect 在 child 和 parent 之间拉一条链路，child 的整个组件挂过去
// 核心把“不成环”当成调用方要守住的前置条件，这里就是守的地方：
// 先查 Connected，已经连通的一律拒绝，再把请求交给核心
func (inv *Inventory) Connect(childID, parentID, weight int) error {
	if childID == parentID {
		return errorutil.Newf(errorutil.CodeInvalidUsage, "不能把服务器 %d 连到自己", childID)
	}
	child, err := inv.lookup(childID)
	if err != nil {
		return err
	}
	parent, err := inv.lookup(parentID)
	if err != nil {
		return err
	}
	if inv.forest.Connected(child.node, parent.node) {
		return errorutil.Newf(errorutil.CodeAlreadyConnected,
			"服务器 %d 和 %d 已经连通，再连会成环", childID, parentID)
	}

	inv.forest.Link(child.node, parent.node)
	inv.links.add(childID, parentID, weight)
	logutil.Debug("链路 %d - %d (权重 %d)", childID, parentID, weight)
	return nil
}

// Disconnect 断开 a、b 之间的直接链路
// 先用 PathSize 验证两台机器确实相邻（顺带把 b 转成组件根），
// 这时 a 的路径父亲就是 b，Cut(a) 剪掉的正是这条边
func (inv *Inventory) Disconnect(aID, bID int) error {
	a, err := inv.lookup(aID)
	if err != nil {
		return err
	}
	b, err := inv.lookup(bID)
	if err != nil {
		return err
	}
	n, ok := inv.forest.PathSize(b.node, a.node)
	if !ok {
		return errorutil.Newf(errorutil.CodeNotConnected,
			"服务器 %d 和 %d 不在同一组件", aID, bID)
	}
	if n != 2 {
		return errorutil.Newf(errorutil.CodeNotAdjacent,
			"服务器 %d 和 %d 之间没有直接链路", aID, bID)
	}

	inv.forest.Cut(a.node)
	inv.links.remove(aID, bID)
	logutil.Debug("断开链路 %d - %d", aID, bID)
	return nil
}

// Connected 判断两台服务器是否在同一组件
func (inv *Inventory) Connected(aID, bID int) (bool, error) {
	a, err := inv.lookup(aID)
	if err != nil {
		return false, err
	}
	b, err := inv.lookup(bID)
	if err != nil {
		return false, err
	}
	return inv.forest.Connected(a.node, b.node), nil
}

// PathLen 返回两台服务器路径上的节点数（含两端）
// 不连通时第二个返回值为 false；注意它内部会把组件重定根到 a
func (inv *Inventory) PathLen(aID, bID int) (int, bool, error) {
	a, err := inv.lookup(aID)
	if err != nil {
		return 0, false, err
	}
	b, err := inv.lookup(bID)
	if err != nil {
		return 0, false, err
	}
	n, ok := inv.forest.PathSize(a.node, b.node)
	return n, ok, nil
}

// MeetingPoint 返回两台服务器在当前朝向下的最近公共祖先的编号
func (inv *Inventory) MeetingPoint(aID, bID int) (int, bool, error) {
	a, err := inv.lookup(aID)
	if err != nil {
		return 0, false, err
	}
	b, err := inv.lookup(bID)
	if err != nil {
		return 0, false, err
	}
	n, ok := inv.forest.LCA(a.node, b.node)
	if !ok {
		return 0, false, nil
	}
	return inv.forest.Value(n), true, nil
}

// RootOf 返回服务器所在组件当前的根编号
func (inv *Inventory) RootOf(id int) (int, error) {
	e, err := inv.lookup(id)
	if err != nil {
		return 0, err
	}
	return inv.forest.Value(inv.forest.FindRoot(e.node)), nil
}

// Reroot 把组件的根换成指定的服务器（对后续查询可见的副作用）
func (inv *Inventory) Reroot(id int) error {
	e, err := inv.lookup(id)
	if err != nil {
		return err
	}
	inv.forest.MakeRoot(e.node)
	return nil
}

// Get 按编号取登记信息
func (inv *Inventory) Get(id int) (Server, error) {
	e, err := inv.lookup(id)
	if err != nil {
		return Server{}, err
	}
	return e.meta, nil
}

// FindByPrefix 按名字前缀检索，结果按名字排序
func (inv *Inventory) FindByPrefix(prefix string) []Server {
	var out []Server
	inv.byName.WalkPrefix(prefix, func(name string, v any) bool {
		e, err := inv.lookup(v.(int))
		if err == nil {
			out = append(out, e.meta)
		}
		return false
	})
	slices.SortFunc(out, func(a, b Server) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// Servers 按编号顺序返回全部登记信息
func (inv *Inventory) Servers() []Server {
	out := make([]Server, 0, inv.byID.Size())
	inv.byID.Each(func(_ any, v any) {
		out = append(out, v.(*entry).meta)
	})
	return out
}

// Snapshot 深拷贝当前的登记信息，调用方随便改不影响库存
func (inv *Inventory) Snapshot() []Server {
	return deepcopy.Copy(inv.Servers()).([]Server)
}

// Len 返回登记的服务器数
func (inv *Inventory) Len() int {
	return inv.byID.Size()
}

// RenderTree 渲染服务器所在组件的树（节点标签是编号）
func (inv *Inventory) RenderTree(id int, style int) (string, error) {
	e, err := inv.lookup(id)
	if err != nil {
		return "", err
	}
	return inv.forest.PrintRepresented(e.node, style), nil
}
