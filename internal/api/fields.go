package api

import (
	"time"

	"portfolio/internal/validation"
)

// optional 将空串视为未提供，存为 NULL。
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalDate 解析已通过 date 规则校验的可选日期。
func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
