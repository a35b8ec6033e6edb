package inventory

import (
	"fmt"
	"os"
	"strconv"

	"forest_tool/pkg/errorutil"
	"forest_tool/pkg/graph"
	"forest_tool/pkg/treeprinter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// TopoCmd 返回 topo 子命令：对拓扑 JSON 文件做检查、渲染和连通性查询
// 每个子命令都独立加载文件重建库存，导入路径本身就是受保护路径
func TopoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topo",
		Short: "拓扑文件的检查、渲染与连通性查询",
	}
	cmd.AddCommand(
		topoCheckCmd(),
		topoDotCmd(),
		topoTreeCmd(),
		topoPathCmd(),
		topoRootCmd(),
		topoLcaCmd(),
		topoConnectedCmd(),
	)
	return cmd
}

func loadTopo(file string) (*Inventory, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeIOError, fmt.Sprintf("读取拓扑文件 %s 失败", file), err)
	}
	return ImportJSON(data)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errorutil.Newf(errorutil.CodeInvalidUsage, "服务器编号 %q 不是整数", arg)
	}
	return id, nil
}

func topoCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <topo.json>",
		Short: "导入拓扑并输出统计（非法拓扑会在这一步被拒绝）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadTopo(args[0])
			if err != nil {
				return err
			}
			// 森林里组件数 = 节点数 - 边数
			comps := inv.Len() - len(inv.Links())
			fmt.Printf("服务器: %s\n", humanize.Comma(int64(inv.Len())))
			fmt.Printf("链路:   %s\n", humanize.Comma(int64(len(inv.Links()))))
			fmt.Printf("组件:   %s\n", humanize.Comma(int64(comps)))
			if l, ok := inv.HeaviestLink(); ok {
				fmt.Printf("最重链路: %d - %d (权重 %d)\n", l.A, l.B, l.Weight)
			}
			return nil
		},
	}
}

func topoDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <topo.json>",
		Short: "导出 graphviz DOT 文本",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadTopo(args[0])
			if err != nil {
				return err
			}
			var nodes []graph.NodeInfo
			for _, s := range inv.Servers() {
				nodes = append(nodes, graph.NodeInfo{
					ID:    s.ID,
					Label: fmt.Sprintf("%s [%s]", s.Name, s.Status),
				})
			}
			var edges []graph.EdgeInfo
			for _, l := range inv.Links() {
				edges = append(edges, graph.EdgeInfo{A: l.A, B: l.B, Weight: l.Weight})
			}
			dot, err := graph.ForestDOT("topology", nodes, edges)
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
			fmt.Print(dot)
			return nil
		},
	}
}

func topoTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <topo.json> <id>",
		Short: "渲染指定服务器所在组件的树",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadTopo(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			out, err := inv.RenderTree(id, treeprinter.StyleUnicode)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func topoPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <topo.json> <a> <b>",
		Short: "查询两台服务器之间的路径长度",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, a, b, err := loadTopoPair(args)
			if err != nil {
				return err
			}
			n, ok, err := inv.PathLen(a, b)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("%d 和 %d 不连通\n", a, b)
				return nil
			}
			fmt.Printf("路径节点数: %d（%d 跳）\n", n, n-1)
			return nil
		},
	}
}

func topoRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root <topo.json> <id>",
		Short: "查询服务器所在组件当前的根",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadTopo(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			root, err := inv.RootOf(id)
			if err != nil {
				return err
			}
			s, err := inv.Get(root)
			if err != nil {
				return err
			}
			fmt.Printf("组件根: %d (%s)\n", s.ID, s.Name)
			return nil
		},
	}
}

func topoLcaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lca <topo.json> <a> <b>",
		Short: "查询两台服务器的最近公共祖先",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, a, b, err := loadTopoPair(args)
			if err != nil {
				return err
			}
			id, ok, err := inv.MeetingPoint(a, b)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("%d 和 %d 不连通\n", a, b)
				return nil
			}
			s, err := inv.Get(id)
			if err != nil {
				return err
			}
			fmt.Printf("最近公共祖先: %d (%s)\n", s.ID, s.Name)
			return nil
		},
	}
}

func topoConnectedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connected <topo.json> <a> <b>",
		Short: "判断两台服务器是否连通",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, a, b, err := loadTopoPair(args)
			if err != nil {
				return err
			}
			ok, err := inv.Connected(a, b)
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}
}

func loadTopoPair(args []string) (*Inventory, int, int, error) {
	inv, err := loadTopo(args[0])
	if err != nil {
		return nil, 0, 0, err
	}
	a, err := parseID(args[1])
	if err != nil {
		return nil, 0, 0, err
	}
	b, err := parseID(args[2])
	if err != nil {
		return nil, 0, 0, err
	}
	return inv, a, b, nil
}
