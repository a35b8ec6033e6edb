package treeprinter

import (
	"fmt"
	"strings"
)

const (
	StyleASCII   = 0
	StyleUnicode = 1
)

// 打印位置：根、上分支（先打印的一侧）、下分支
const (
	posRoot  = -1
	posUpper = 1
	posLower = 0
)

// BinaryPrinter 是二叉树的通用打印配置
// 节点类型 T 可以是指针、下标或者任何带附加状态的轻量引用
type BinaryPrinter[T any] struct {
	Root      T
	Empty     bool              // 整棵树为空时置位
	Left      func(T) (T, bool) // 取左孩子，第二个返回值表示是否存在
	Right     func(T) (T, bool)
	Label     func(T) string // 节点标签
	Style     int            // StyleASCII / StyleUnicode
	Direction int            // 0 = 右-根-左（右子树在上），1 = 左-根-右
}

// PrintBinary 把二叉树渲染成多行文本，树根朝左、向右生长
func PrintBinary[T any](p BinaryPrinter[T]) string {
	if p.Empty {
		return "tree is empty\n"
	}

	vert, upArrow, downArrow, rootSign := glyphs(p.Style)

	upper, lower := p.Right, p.Left
	if p.Direction == 1 {
		upper, lower = p.Left, p.Right
	}

	var b strings.Builder
	var walk func(n T, prefix string, pos int)
	walk = func(n T, prefix string, pos int) {
		// 上分支的延续：同侧接空格，异侧要画竖线把枝干连上
		if c, ok := upper(n); ok {
			ext := "    "
			if pos == posLower {
				ext = vert + "   "
			}
			walk(c, prefix+ext, posUpper)
		}

		switch pos {
		case posUpper:
			fmt.Fprintf(&b, "%s%s%s\n", prefix, upArrow, p.Label(n))
		case posLower:
			fmt.Fprintf(&b, "%s%s%s\n", prefix, downArrow, p.Label(n))
		default:
			fmt.Fprintf(&b, "%s%s\n", rootSign, p.Label(n))
		}

		if c, ok := lower(n); ok {
			ext := "    "
			if pos == posUpper {
				ext = vert + "   "
			}
			walk(c, prefix+ext, posLower)
		}
	}
	walk(p.Root, "", posRoot)

	return b.String()
}

func glyphs(style int) (vert, upArrow, downArrow, rootSign string) {
	if style == StyleUnicode {
		return "│", "┌──>", "└──>", "│── "
	}
	return "|", ".-->", "'-->", "|-- "
}

// MultiNode 是多叉树打印用的临时节点
type MultiNode struct {
	Data     any // 节点数据，任意类型
	Children []*MultiNode
}

// MultiPrinter 是多叉树的打印配置
type MultiPrinter struct {
	Root     *MultiNode
	Style    int                     // StyleASCII / StyleUnicode
	FormatFn func(*MultiNode) string // 可选的自定义格式化
}

// PrintMulti 把多叉树渲染成缩进分支的文本，树根在最上面
func PrintMulti(p MultiPrinter) string {
	if p.Root == nil {
		return "tree is empty\n"
	}

	branch, connector, space := "+-- ", "`-- ", "|   "
	if p.Style == StyleUnicode {
		branch, connector, space = "├── ", "└── ", "│   "
	}

	var b strings.Builder
	var dfs func(n *MultiNode, prefix string, isLast bool)
	dfs = func(n *MultiNode, prefix string, isLast bool) {
		if n == nil {
			return
		}

		label := fmt.Sprintf("%v", n.Data)
		if p.FormatFn != nil {
			label = p.FormatFn(n)
		}

		mark := branch
		if isLast {
			mark = connector
		}
		fmt.Fprintf(&b, "%s%s%s\n", prefix, mark, label)

		ext := space
		if isLast {
			ext = "    "
		}
		for i, c := range n.Children {
			dfs(c, prefix+ext, i == len(n.Children)-1)
		}
	}
	dfs(p.Root, "", true)

	return b.String()
}
