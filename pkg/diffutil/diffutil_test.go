package diffutil_test

import (
	"strings"
	"testing"

	"forest_tool/pkg/diffutil"
)

func TestCompareMultilineEqual(t *testing.T) {
	text := "line1\nline2\n"
	diff := diffutil.CompareMultiline(text, text)

	if len(diff) != 2 {
		t.Fatalf("行数 = %d, want 2", len(diff))
	}
	for _, d := range diff {
		if d.Mark != "|" {
			t.Errorf("相同文本的标记应为 |, got %q", d.Mark)
		}
		if d.Left != d.Right {
			t.Errorf("相同文本左右应一致: %q vs %q", d.Left, d.Right)
		}
	}
}

func TestCompareMultilineModifiedPair(t *testing.T) {
	before := "alpha\nbeta\ngamma\n"
	after := "alpha\nBETA\ngamma\n"
	diff := diffutil.CompareMultiline(before, after)

	var marks []string
	for _, d := range diff {
		marks = append(marks, d.Mark)
	}
	t.Logf("标记序列: %v", marks)

	// 中间那行应配成修改对，而不是一删一增两行
	found := false
	for _, d := range diff {
		if d.Mark == "~" && d.Left == "beta" && d.Right == "BETA" {
			found = true
		}
	}
	if !found {
		t.Errorf("beta -> BETA 应标记为 ~ 修改对: %+v", diff)
	}
}

func TestCompareMultilineAddRemove(t *testing.T) {
	before := "a\nb\n"
	after := "a\n"
	diff := diffutil.CompareMultiline(before, after)

	var removed []string
	for _, d := range diff {
		if d.Mark == "-" {
			removed = append(removed, d.Left)
		}
	}
	if len(removed) != 1 || removed[0] != "b" {
		t.Errorf("应只有 b 被删除: %v", removed)
	}

	diff = diffutil.CompareMultiline("a\n", "a\nc\n")
	var added []string
	for _, d := range diff {
		if d.Mark == "+" {
			added = append(added, d.Right)
		}
	}
	if len(added) != 1 || added[0] != "c" {
		t.Errorf("应只有 c 被新增: %v", added)
	}
}

func TestFormatSideBySideAlignment(t *testing.T) {
	diff := []diffutil.DiffLine{
		{Left: "short", Right: "short", Mark: "|"},
		{Left: "a much longer line", Right: "changed", Mark: "~"},
		{Left: "", Right: "added", Mark: "+"},
	}

	out := diffutil.FormatSideBySide(diff)
	t.Logf("并排输出:\n%s", out)

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("行数 = %d, want 5(表头+分隔+3)", len(lines))
	}
	if !strings.Contains(lines[0], "* Before") || !strings.Contains(lines[0], "* After") {
		t.Errorf("表头不对: %q", lines[0])
	}

	// 纯 ASCII 时所有标记应落在同一列
	col := strings.Index(lines[2], "|")
	if col < 0 {
		t.Fatalf("数据行缺少标记: %q", lines[2])
	}
	if strings.Index(lines[3], "~") != col || strings.Index(lines[4], "+") != col {
		t.Errorf("标记列没有对齐:\n%s", out)
	}
}

func TestFormatSideBySideWideRunes(t *testing.T) {
	// 中文一个字占两列，对齐按显示宽度算
	diff := []diffutil.DiffLine{
		{Left: "节点甲", Right: "节点甲", Mark: "|"},
		{Left: "abcdef", Right: "abcxyz", Mark: "~"},
	}

	out := diffutil.FormatSideBySide(diff)
	t.Logf("宽字符并排输出:\n%s", out)

	lines := strings.Split(out, "\n")
	// "节点甲" 显示宽 6，补齐到 6 列后标记应与 ASCII 行同列
	asciiCol := strings.Index(lines[3], "~")
	wideLine := lines[2]
	wideCol := 0
	for _, r := range wideLine {
		if string(r) == "|" {
			break
		}
		if r >= 0x2E80 {
			wideCol += 2
		} else {
			wideCol++
		}
	}
	if wideCol != asciiCol {
		t.Errorf("宽字符行标记显示列 = %d, ASCII 行 = %d:\n%s", wideCol, asciiCol, out)
	}
}
