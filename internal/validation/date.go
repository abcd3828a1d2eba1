package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// dateParser 只接受带日期部分的格式，避免 "15:04" 这类纯时间被当作今天。
var dateParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006-1-2",
		"2006/01/02",
	},
}

// ParseDate 将日期字符串解析为时间，空串视为无效。
// now 会用当前年份替换值为 0 的年份，因此 0000 年直接拒绝。
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "0000") {
		return time.Time{}, fmt.Errorf("parse date %q: year must not be 0", value)
	}
	return dateParser.Parse(value)
}
