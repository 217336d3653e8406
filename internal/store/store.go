// Package store 提供排班核心依赖的外部表格存储：按 §6 约定解码员工、需求、
// 请假、预排班四类输入行，并把求解产出的已保存排班写回 Postgres
package store

import (
	"context"
	"database/sql"
)

// DB 是仓储层依赖的最小数据库接口，便于在测试中替换为假实现
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
