package main

import (
	"fmt"
	"os"

	"forest_tool/pkg/errorutil"
	"forest_tool/pkg/inventory"
	"forest_tool/pkg/logutil"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20260826"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "foresttool",
		Short: fmt.Sprintf("Foresttool v%s 维护服务器拓扑森林，支持 topo 子命令做检查与连通性查询", TOOL_VERSION),
		Long: "        ^  ^  ^\n" +
			"       /|\\/|\\/|\\      _____                  _   \n" +
			"      / | /\\ | \\     |  ___|__  _ __ ___ ___| |_ \n" +
			"        |/  \\|       | |_ / _ \\| '__/ _ / __| __|\n" +
			"        |    |       |  _| (_) | | |  __\\__ | |_ \n" +
			"                     |_|  \\___/|_|  \\___|___/\\__|\n" +
			fmt.Sprintf("\nForesttool v%s 维护服务器拓扑森林（link-cut 树），支持 topo 子命令\n", TOOL_VERSION),
	}

	rootCmd.AddCommand(inventory.TopoCmd())
	var logFile string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "foresttool.log", "日志文件名(stdout 表示标准输出)")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunE返回的错误内容
	rootCmd.SilenceErrors = true

	// 等 Cobra 的 flag 解析完成、值填充之后再初始化日志
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logutil.InitLogger(logFile, logLevel)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		msg, code := errorutil.FormatErrorAndCode(err)
		fmt.Fprintln(os.Stderr, msg)
		logutil.Error("命令执行失败: %v", err)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(0)
}
