package inventory

import (
	"forest_tool/pkg/errorutil"
	"forest_tool/pkg/logutil"
	"forest_tool/pkg/unionfind"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// 拓扑文件是上层（被排除在外的 HTTP 层）用的那种随手 JSON：
//
//	{
//	  "servers": [{"id": 1, "name": "web-1", "status": "online"}, ...],
//	  "links":   [{"a": 1, "b": 2, "weight": 10}, ...]
//	}
//
// status 省略时按 online 算，weight 省略按 0 算

// ImportJSON 解析拓扑文件并重建库存
// 边表先整体过一遍并查集：link-cut 核心不做成环检查，
// 任何会成环、重复或者引用未知编号的边都要在碰结构之前拒绝掉
func ImportJSON(data []byte) (*Inventory, error) {
	if !gjson.ValidBytes(data) {
		return nil, errorutil.Newf(errorutil.CodeInvalidData, "拓扑文件不是合法 JSON")
	}
	root := gjson.ParseBytes(data)

	servers := root.Get("servers").Array()
	dense := make(map[int]int, len(servers)) // 编号 -> 并查集下标
	for i, s := range servers {
		id := int(s.Get("id").Int())
		if _, ok := dense[id]; ok {
			return nil, errorutil.Newf(errorutil.CodeConfigError,
				"拓扑文件里编号 %d 出现了两次", id)
		}
		dense[id] = i
	}

	type rawLink struct {
		a, b, weight int
	}
	var rawLinks []rawLink
	uf := unionfind.New(len(servers))
	for _, l := range root.Get("links").Array() {
		a := int(l.Get("a").Int())
		b := int(l.Get("b").Int())
		ia, okA := dense[a]
		ib, okB := dense[b]
		if !okA || !okB {
			return nil, errorutil.Newf(errorutil.CodeConfigError,
				"链路 %d - %d 引用了未登记的服务器", a, b)
		}
		if a == b {
			return nil, errorutil.Newf(errorutil.CodeConfigError,
				"链路 %d - %d 是自环", a, b)
		}
		if !uf.Union(ia, ib) {
			return nil, errorutil.Newf(errorutil.CodeConfigError,
				"链路 %d - %d 会让拓扑成环，拒绝导入", a, b)
		}
		rawLinks = append(rawLinks, rawLink{a: a, b: b, weight: int(l.Get("weight").Int())})
	}

	inv := New()
	for _, s := range servers {
		status := Status(s.Get("status").String())
		if status == "" {
			status = StatusOnline
		}
		err := inv.AddServer(int(s.Get("id").Int()), s.Get("name").String(), status)
		if err != nil {
			return nil, err
		}
	}
	// 并查集已经验证过边表是森林，这里的受保护路径不会再拒绝
	for _, l := range rawLinks {
		if err := inv.Connect(l.a, l.b, l.weight); err != nil {
			return nil, err
		}
	}

	logutil.Info("导入拓扑：%d 台服务器，%d 条链路，%d 个组件",
		len(servers), len(rawLinks), uf.Sets())
	return inv, nil
}

// ExportJSON 把当前库存导出成和导入同构的拓扑 JSON（已美化）
func ExportJSON(inv *Inventory) ([]byte, error) {
	out := []byte(`{"servers":[],"links":[]}`)
	var err error
	for _, s := range inv.Servers() {
		out, err = sjson.SetBytes(out, "servers.-1", map[string]any{
			"id":     s.ID,
			"name":   s.Name,
			"status": string(s.Status),
		})
		if err != nil {
			return nil, errorutil.NewExitError(errorutil.CodeInternalErr, err)
		}
	}
	for _, l := range inv.Links() {
		out, err = sjson.SetBytes(out, "links.-1", map[string]any{
			"a":      l.A,
			"b":      l.B,
			"weight": l.Weight,
		})
		if err != nil {
			return nil, errorutil.NewExitError(errorutil.CodeInternalErr, err)
		}
	}
	return pretty.Pretty(out), nil
}
