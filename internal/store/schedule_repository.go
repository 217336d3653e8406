package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paiban/shiftcore/pkg/model"
)

// ScheduleRepository 持久化求解结果，供后续按名称、时间范围回查
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository 创建已保存排班仓储
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// CreateTable 建表语句，供启动时的迁移调用；使用显式 DDL，不依赖 ORM 自动迁移
const CreateTable = `
CREATE TABLE IF NOT EXISTS saved_schedules (
	id            UUID PRIMARY KEY,
	schedule_name TEXT NOT NULL,
	saved_at      TIMESTAMPTZ NOT NULL,
	date          DATE NOT NULL,
	weekday_label TEXT NOT NULL,
	shift_time    TEXT NOT NULL,
	employee_1    TEXT NOT NULL DEFAULT '',
	employee_2    TEXT NOT NULL DEFAULT '',
	employee_3    TEXT NOT NULL DEFAULT '',
	employee_4    TEXT NOT NULL DEFAULT '',
	employee_5    TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_saved_schedules_name ON saved_schedules (schedule_name);
`

// Save 把一次求解产出的排班表铺平为 §6 Saved schedule row 的形状并批量写入
func (repo *ScheduleRepository) Save(ctx context.Context, scheduleName string, schedule model.Schedule) error {
	savedAt := schedule.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	for _, shift := range schedule.Shifts {
		row := FromShift(scheduleName, savedAt, shift)
		if _, err := repo.db.ExecContext(ctx, `
			INSERT INTO saved_schedules
				(id, schedule_name, saved_at, date, weekday_label, shift_time,
				 employee_1, employee_2, employee_3, employee_4, employee_5)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			uuid.New(), row.ScheduleName, row.SavedAt, row.Date, row.WeekdayLabel, row.ShiftTime,
			row.Employees[0], row.Employees[1], row.Employees[2], row.Employees[3], row.Employees[4],
		); err != nil {
			return fmt.Errorf("写入已保存排班行失败 (date=%s shift=%s): %w", row.Date, row.ShiftTime, err)
		}
	}
	return nil
}

// ListByName 按排班方案名称读回全部已保存行，按日期与班次顺序排列
func (repo *ScheduleRepository) ListByName(ctx context.Context, scheduleName string) ([]SavedScheduleRow, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT schedule_name, saved_at, date, weekday_label, shift_time,
		       employee_1, employee_2, employee_3, employee_4, employee_5
		FROM saved_schedules
		WHERE schedule_name = $1
		ORDER BY date,
			CASE shift_time WHEN 'Morning' THEN 0 WHEN 'Midday' THEN 1 WHEN 'Evening' THEN 2 ELSE 3 END
	`, scheduleName)
	if err != nil {
		return nil, fmt.Errorf("查询已保存排班失败: %w", err)
	}
	defer rows.Close()

	var out []SavedScheduleRow
	for rows.Next() {
		var r SavedScheduleRow
		if err := rows.Scan(
			&r.ScheduleName, &r.SavedAt, &r.Date, &r.WeekdayLabel, &r.ShiftTime,
			&r.Employees[0], &r.Employees[1], &r.Employees[2], &r.Employees[3], &r.Employees[4],
		); err != nil {
			return nil, fmt.Errorf("读取已保存排班行失败: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历已保存排班结果失败: %w", err)
	}
	return out, nil
}

// LoadSchedule 读回某个排班方案名称下的全部已保存行并还原为 model.Schedule
func (repo *ScheduleRepository) LoadSchedule(ctx context.Context, scheduleName string) (model.Schedule, error) {
	rows, err := repo.ListByName(ctx, scheduleName)
	if err != nil {
		return model.Schedule{}, err
	}
	shifts := make([]model.Shift, 0, len(rows))
	for _, r := range rows {
		shift, err := r.ToShift()
		if err != nil {
			return model.Schedule{}, fmt.Errorf("还原已保存排班 %q 失败: %w", scheduleName, err)
		}
		shifts = append(shifts, shift)
	}
	return model.NewSchedule(shifts), nil
}

// DeleteByName 删除某个排班方案名称下的全部已保存行
func (repo *ScheduleRepository) DeleteByName(ctx context.Context, scheduleName string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM saved_schedules WHERE schedule_name = $1`, scheduleName); err != nil {
		return fmt.Errorf("删除已保存排班失败: %w", err)
	}
	return nil
}
