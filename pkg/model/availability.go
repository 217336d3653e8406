package model

import "strings"

// ParseAvailability 解析外部表格中的可用性字符串，支持两种形式：
//
//   - 按天形式 "D:S,S,...;D:S,S,..."（例如 "1:Morning,Midday;5:Morning,Evening"）
//   - 旧式形式 "S,S,..."，表示这些班次在周一到周日每天均可用
//
// 未知星期被忽略，未知班次标签被静默丢弃；两者都不是解析错误
func ParseAvailability(raw string) map[Weekday]map[ShiftTime]bool {
	raw = strings.TrimSpace(raw)
	result := make(map[Weekday]map[ShiftTime]bool)
	if raw == "" {
		return result
	}

	if strings.Contains(raw, ":") {
		for _, part := range strings.Split(raw, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			idx := strings.Index(part, ":")
			if idx < 0 {
				continue
			}
			dayToken := strings.TrimSpace(part[:idx])
			shiftsToken := part[idx+1:]
			wd, ok := parseWeekdayToken(dayToken)
			if !ok {
				continue
			}
			set := parseShiftList(shiftsToken)
			if len(set) == 0 {
				continue
			}
			mergeShiftSet(result, wd, set)
		}
		return result
	}

	set := parseShiftList(raw)
	if len(set) == 0 {
		return result
	}
	for wd := Monday; wd <= Sunday; wd++ {
		mergeShiftSet(result, wd, set)
	}
	return result
}

func parseWeekdayToken(s string) (Weekday, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	wd, ok := weekdayByNumber[n]
	return wd, ok
}

func parseShiftList(s string) map[ShiftTime]bool {
	set := make(map[ShiftTime]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if st, ok := ParseShiftTime(token); ok {
			set[st] = true
		}
	}
	return set
}

func mergeShiftSet(dst map[Weekday]map[ShiftTime]bool, wd Weekday, set map[ShiftTime]bool) {
	day, ok := dst[wd]
	if !ok {
		day = make(map[ShiftTime]bool)
		dst[wd] = day
	}
	for st := range set {
		day[st] = true
	}
}
