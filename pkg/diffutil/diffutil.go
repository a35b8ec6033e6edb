package diffutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine 是并排视图里的一行
// Mark: "|" 相同，"-" 只在左边，"+" 只在右边，"~" 左右都有但内容变了
type DiffLine struct {
	Left  string
	Right string
	Mark  string
}

// CompareMultiline 按行比较两段多行文本（比如森林前后两次的渲染结果）
// 相邻的删除+插入配成 "~" 修改对，其余按等/删/增展开
func CompareMultiline(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	text1, text2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(text1, text2, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result []DiffLine
	i := 0
	for i < len(diffs) {
		d := diffs[i]
		if d.Type == diffmatchpatch.DiffDelete &&
			i+1 < len(diffs) &&
			diffs[i+1].Type == diffmatchpatch.DiffInsert {

			delLines := strings.Split(d.Text, "\n")
			insLines := strings.Split(diffs[i+1].Text, "\n")

			n := max(len(delLines), len(insLines))
			for j := 0; j < n; j++ {
				l, r := "", ""
				if j < len(delLines) {
					l = delLines[j]
				}
				if j < len(insLines) {
					r = insLines[j]
				}
				if l == "" && r == "" {
					continue
				}
				result = append(result, DiffLine{Left: l, Right: r, Mark: "~"})
			}
			i += 2
			continue
		}

		for _, line := range strings.Split(d.Text, "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result = append(result, DiffLine{Left: line, Right: line, Mark: "|"})
			case diffmatchpatch.DiffDelete:
				result = append(result, DiffLine{Left: line, Mark: "-"})
			case diffmatchpatch.DiffInsert:
				result = append(result, DiffLine{Right: line, Mark: "+"})
			}
		}
		i++
	}
	return result
}

// FormatSideBySide 把 diff 结果排成左右两栏
// 左栏宽度按“显示宽度”对齐：fmt 的 %-*s 数的是字符数，
// 中文这种宽字符一个占两列，所以补齐量 = 字符数 + (最大显示宽度 - 本行显示宽度)
func FormatSideBySide(diff []DiffLine) string {
	// 模糊宽度字符按 1 列算
	runewidth.DefaultCondition.EastAsianWidth = false

	maxWidth := 0
	for _, d := range diff {
		if w := runewidth.StringWidth(d.Left); w > maxWidth {
			maxWidth = w
		}
	}

	var out []string
	header := fmt.Sprintf("%-*s  %s  %s", maxWidth, "* Before", " ", "* After")
	out = append(out, header)
	out = append(out, strings.Repeat("-", len(header)))

	for _, d := range diff {
		pad := utf8.RuneCountInString(d.Left) + maxWidth - runewidth.StringWidth(d.Left)
		out = append(out, fmt.Sprintf("%-*s  %s  %s", pad, d.Left, d.Mark, d.Right))
	}

	return strings.Join(out, "\n")
}
