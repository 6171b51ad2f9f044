// Package timex 提供可序列化的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat 序列化使用的时间格式
const TimeFormat = "2006-01-02 15:04:05"

// Time 包装 time.Time，JSON/数据库统一使用 "2006-01-02 15:04:05" 格式
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", tt.Format(TimeFormat))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	tt, err := time.ParseInLocation(`"`+TimeFormat+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(tt)
	return nil
}

// Value 实现 driver.Valuer，零值时间写入 NULL
func (t Time) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch vt := v.(type) {
	case time.Time:
		*t = Time(vt)
	case nil:
		*t = Time(time.Time{})
	case []byte:
		tt, err := time.ParseInLocation(TimeFormat, string(vt), time.Local)
		if err != nil {
			return err
		}
		*t = Time(tt)
	case string:
		tt, err := time.ParseInLocation(TimeFormat, vt, time.Local)
		if err != nil {
			return err
		}
		*t = Time(tt)
	default:
		return fmt.Errorf("can not convert %v to timex.Time", v)
	}
	return nil
}

func (t Time) String() string {
	return time.Time(t).Format(TimeFormat)
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}
