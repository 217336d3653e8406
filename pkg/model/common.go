// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel 基础模型，仅用于需要持久化标识的实体（例如保存后的 Schedule）
type BaseModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// Date 是排班核心使用的纯日期值，不带时分秒，固定 UTC 以避免时区导致的星期错位
type Date struct {
	time.Time
}

// NewDate 按年月日构造一个 Date
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate 解析 YYYY-MM-DD 形式的日期字符串
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String 返回 YYYY-MM-DD 形式
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// AddDays 返回偏移若干天后的日期
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// Weekday 返回该日期对应的 Weekday（1=周一 .. 7=周日）
func (d Date) Weekday() Weekday {
	wd := d.Time.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// WeekKey 返回该日期所在 ISO 周的周一，用作全职员工周负荷的分组键
func (d Date) WeekKey() Date {
	offset := int(d.Weekday()) - 1
	return d.AddDays(-offset)
}

// Before 判断日期先后顺序，供排班输出排序使用
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Equal 判断两个日期是否相等
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}
