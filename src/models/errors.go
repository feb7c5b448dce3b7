package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInput 输入文件缺失、不可读或缺少必要列
	ErrInput = errors.New("input error")
	// ErrDataIntegrity 去掉已知格式字符后仍无法解析为数值
	ErrDataIntegrity = errors.New("data integrity error")
)

// ParseError 数值列解析失败
type ParseError struct {
	Column string
	Row    int // 0-based, 相对于当前数据表
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: column %s row %d: cannot parse %q: %v",
		ErrDataIntegrity, e.Column, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return ErrDataIntegrity }
