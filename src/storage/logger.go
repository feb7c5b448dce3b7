package storage

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LogLevel 定义日志级别类型
type LogLevel int

// 日志级别常量定义
const (
	DEBUG   LogLevel = iota // 调试信息
	INFO                    // 普通信息
	WARNING                 // 警告信息
	ERROR                   // 错误信息
	FATAL                   // 致命错误
)

// Logger 日志记录器结构体
type Logger struct {
	filename    string
	file        *os.File      // 日志文件句柄，可为空
	console     io.Writer     // 控制台镜像输出，可为空
	level       LogLevel      // 最低输出级别
	mu          sync.Mutex    // 互斥锁，保证并发安全
	subscribers []chan string // 订阅者通道列表
}

// NewLogger 创建新的日志记录器
// 参数:
//
//	filename: 日志文件路径，为空时只输出到控制台
//	console: 控制台输出，为nil时不镜像
func NewLogger(filename string, console io.Writer) (*Logger, error) {
	l := &Logger{filename: filename, console: console, level: INFO}
	if filename == "" {
		return l, nil
	}

	if err := l.open(filename); err != nil {
		return nil, err
	}
	return l, nil
}

// open 打开或创建日志文件(权限0644)并替换当前句柄，需持有锁
func (l *Logger) open(filename string) error {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.file = nil
		return err
	}
	l.filename = filename
	l.file = file
	return nil
}

// SetLevel 设置最低输出级别
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Close 关闭日志文件
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Reopen 关闭当前文件并重新打开filename，用于外部轮转(logrotate)之后
func (l *Logger) Reopen(filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
	}
	return l.open(filename)
}

// Log 记录日志方法，nil Logger 不输出
func (l *Logger) Log(level LogLevel, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	// 格式化日志条目: [时间] 级别: 消息
	entry := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		message)

	if l.file != nil {
		l.file.WriteString(entry)
	}
	if l.console != nil {
		io.WriteString(l.console, entry)
	}

	// 通知所有订阅者
	for _, ch := range l.subscribers {
		select {
		case ch <- entry:
		default: // 通道已满则跳过
		}
	}
}

// CheckRotate 日志文件超过maxSize字节时轮转
func (l *Logger) CheckRotate(maxSize int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil || maxSize <= 0 {
		return nil
	}

	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() <= maxSize {
		return nil
	}
	return l.rotateLog()
}

// rotateLog 需持有锁
func (l *Logger) rotateLog() error {
	l.file.Close()
	ext := ".log"
	base := strings.TrimSuffix(l.filename, ext)
	rotated := fmt.Sprintf("%s.%s%s", base, time.Now().Format("20060102150405.000"), ext)
	if err := os.Rename(l.filename, rotated); err != nil {
		// 改名失败时继续写原文件
		_ = l.open(l.filename)
		return err
	}
	return l.open(l.filename)
}

// Subscribe 订阅日志消息
func (l *Logger) Subscribe() <-chan string {
	l.mu.Lock()
	defer l.mu.Unlock()

	// 创建带缓冲的通道(容量100)
	ch := make(chan string, 100)
	l.subscribers = append(l.subscribers, ch)
	return ch
}

// String 实现LogLevel的String方法
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel 将配置中的级别字符串转为LogLevel，未知值按INFO处理
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// ParseSize 解析 "10 * 1024 * 1024" 形式的大小表达式
func ParseSize(expr string) (int64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, nil
	}
	var result int64 = 1
	for _, part := range strings.Split(expr, "*") {
		num, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size expression %q: %w", expr, err)
		}
		result *= num
	}
	return result, nil
}

// 以下是快捷日志方法
func (l *Logger) Debug(msg string)   { l.Log(DEBUG, msg) }
func (l *Logger) Info(msg string)    { l.Log(INFO, msg) }
func (l *Logger) Warning(msg string) { l.Log(WARNING, msg) }
func (l *Logger) Error(msg string)   { l.Log(ERROR, msg) }
func (l *Logger) Fatal(msg string)   { l.Log(FATAL, msg) }

func (l *Logger) Debugf(format string, args ...any)   { l.Log(DEBUG, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Log(INFO, fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...any) { l.Log(WARNING, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Log(ERROR, fmt.Sprintf(format, args...)) }
