package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage  = 64 // 命令行用法错误（参数不合法等）
	CodeMissingInput  = 65 // 缺失必须输入（如拓扑文件）
	CodeInvalidData   = 66 // 输入格式错误（JSON 非法等）
	CodeUnknownServer = 67 // 引用了不存在的服务器编号

	// 70–79: 拓扑结构层面的拒绝
	CodeDuplicateServer  = 70 // 编号或名字已被占用
	CodeAlreadyConnected = 71 // 两台服务器已经连通，再连会成环
	CodeNotConnected     = 72 // 两台服务器不在同一组件
	CodeNotAdjacent      = 73 // 两台服务器之间没有直接链路
	CodeNotDetached      = 74 // 服务器还有链路挂着，不能移除
	CodeInternalErr      = 75 // 内部 bug、panic、未捕捉异常

	// 80–89: 外部输入或系统相关错误
	CodeConfigError = 80 // 拓扑文件内容有误（成环、引用未知节点等）
	CodeIOError     = 81 // 文件读写失败
)

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 框架/业务层级错误码
	Message string `json:"message,omitempty"` // 可读消息
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// Newf 直接用格式化消息构造带码错误
func Newf(code int, format string, args ...any) error {
	return &ExitErrorWithCode{Code: code, Message: fmt.Sprintf(format, args...)}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// os.Exit(errorutil.ExitCodeFromError(err))
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CodeInternalErr
}

// HasCode 判断错误链上是否有指定的业务码
func HasCode(err error, code int) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr) && exitErr.Code == code
}

// msg := errorutil.UserMessage(err)
func UserMessage(err error) string {
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) && exitErr.Message != "" {
		return exitErr.Message
	}
	return ""
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

// FormatErrorAndCode 给 CLI 出口用：转成 JSON 文本和进程退出码
func FormatErrorAndCode(err error) (string, int) {
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.JSON(), exitErr.Code
	}
	// 裸错误统一按内部错误包一层
	return (&ExitErrorWithCode{
		Code:    CodeInternalErr,
		Message: "未知错误",
		Err:     err,
	}).JSON(), CodeInternalErr
}
