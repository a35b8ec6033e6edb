package logutil

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// Level 是日志级别，值越小打印得越多
type Level int

const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// 实现 pflag.Value 接口(String/Set/Type)，这样 cobra 的 VarP 能直接收
func (l *Level) String() string { return levelNames[*l] }

func (l *Level) Set(val string) error {
	for lv, name := range levelNames {
		if strings.EqualFold(val, name) {
			*l = lv
			return nil
		}
	}
	return fmt.Errorf("无效的日志级别: %s", val)
}

func (l *Level) Type() string { return "loglevel" }

var (
	logger       *log.Logger
	logFile      *os.File
	once         sync.Once
	currentLevel = INFO // 默认日志级别
)

// InitLogger 初始化日志，输出目标是 stdout 或者文件（追加模式）
func InitLogger(output string, level Level) {
	once.Do(func() {
		var err error
		if output == "stdout" {
			logFile = os.Stdout
		} else {
			logFile, err = os.OpenFile(
				output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Fatal("无法创建日志文件:", err)
			}
		}
		logger = log.New(logFile, "", log.LstdFlags)
		currentLevel = level
	})
}

// SetLogLevel 运行中调整日志级别
func SetLogLevel(level Level) {
	currentLevel = level
}

// logMessage 记录日志，仅输出不低于当前级别的内容
func logMessage(level Level, msg string, args ...any) {
	if logger == nil {
		InitLogger("stdout", INFO)
	}
	if level < currentLevel {
		return
	}
	_, file, line, _ := runtime.Caller(2) // 真正调用处的文件+行号

	var formattedArgs []any
	for _, arg := range args {
		// 反射解开指针和结构体，日志里直接看到内容而不是地址
		v := reflect.ValueOf(arg)
		if v.Kind() == reflect.Ptr && !v.IsNil() {
			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Struct:
			formattedArgs = append(formattedArgs, PrintStruct(arg, false))
		case reflect.Slice, reflect.Map:
			jsonData, err := json.MarshalIndent(arg, "", "    ")
			if err != nil {
				formattedArgs = append(
					formattedArgs, fmt.Sprintf("无法格式化: %v", err))
			} else {
				formattedArgs = append(formattedArgs, string(jsonData))
			}
		default:
			formattedArgs = append(formattedArgs, arg)
		}
	}

	formattedMsg := fmt.Sprintf(msg, formattedArgs...)
	logger.Printf("[%s:%d] %s", file, line, formattedMsg)
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志，附带当前调用堆栈
func Error(msg string, args ...any) {
	size := 1024
	for {
		buf := make([]byte, size)
		n := runtime.Stack(buf, false)
		if n < size {
			logMessage(
				ERROR, "[ERR] "+msg+"\n调用堆栈:\n"+string(buf[:n]), args...)
			return
		}
		// 缓冲区不够，倍增再来
		size *= 2
	}
}

// CloseLogger 关闭日志文件（如果打开了的话）
func CloseLogger() error {
	if logFile != nil && logFile != os.Stdout {
		return logFile.Close()
	}
	return nil
}

// 递归格式化结构体字段
func formatStruct(s any, indent string) string {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	if v.Kind() != reflect.Struct {
		return fmt.Sprintf("%s非结构体类型: %#v\n", indent, v.Kind())
	}

	var builder strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if value.Kind() != reflect.Struct {
			builder.WriteString(fmt.Sprintf("%s%s: %#v\n", indent, field.Name, value))
		} else {
			// 嵌套结构体先打标头再递归
			builder.WriteString(fmt.Sprintf("%s%s:\n", indent, field.Name))
			builder.WriteString(formatStruct(value.Interface(), indent+"    "))
		}
	}

	return builder.String()
}

// PrintStruct 格式化结构体信息，printToStdout 控制是否顺带打到标准输出
func PrintStruct(s any, printToStdout bool) string {
	result := formatStruct(s, "")
	if printToStdout {
		fmt.Print(result)
	}
	return result
}
