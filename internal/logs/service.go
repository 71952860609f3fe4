package logs

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"congress-api/internal/util"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type LogService struct {
	DB *gorm.DB
}

func (ls *LogService) Log(log SystemLog, metadata interface{}) error {
	var meta []byte

	// Convert metadata (map/struct) to JSON if provided
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			meta = b
		}
	}

	newLog := SystemLog{
		Level:     log.Level,
		Service:   log.Service,
		UserID:    log.UserID,
		Action:    log.Action,
		Message:   log.Message,
		Metadata:  meta,
		CreatedAt: time.Now(),
		Programs:  log.Programs,
		Filename:  log.Filename,
	}

	return ls.DB.Create(&newLog).Error
}

func (ls *LogService) GetLogs(input LogFilterInput) ([]LogRow, LogAggregates, int64, int, error) {
	// Defaults
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	// Base query (joins users for name + supports search)
	base := ls.DB.
		Table("logs").
		Select("logs.*, u.first_name as first_name, u.last_name as last_name").
		Joins("LEFT JOIN users u ON logs.user_id = u.id")

	// Default: last 30 days if no dates
	if input.StartDate == nil && input.EndDate == nil {
		base = base.Where("logs.created_at >= ?", time.Now().AddDate(0, 0, -30))
	}

	// Filters
	if input.UserID != nil {
		base = base.Where("logs.user_id = ?", *input.UserID)
	}
	if input.Level != nil && strings.TrimSpace(*input.Level) != "" {
		base = base.Where("logs.level = ?", strings.TrimSpace(*input.Level))
	}
	if input.Service != nil && strings.TrimSpace(*input.Service) != "" {
		base = base.Where("logs.service = ?", strings.TrimSpace(*input.Service))
	}
	if input.Action != nil && strings.TrimSpace(*input.Action) != "" {
		base = base.Where("logs.action = ?", strings.TrimSpace(*input.Action))
	}

	if input.Filename != nil && strings.TrimSpace(*input.Filename) != "" {
		base = base.Where("COALESCE(logs.filename,'') ILIKE ?", "%"+strings.TrimSpace(*input.Filename)+"%")
	}

	// Programs filter: overlap (ANY match)
	if len(input.Programs) > 0 {
		base = base.Where("logs.programs && ?", pq.Array(input.Programs))
	}

	// Date range (inclusive end day)
	start, hasStart, endExclusive, hasEnd, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}
	if hasStart {
		base = base.Where("logs.created_at >= ?", start)
	}
	if hasEnd {
		base = base.Where("logs.created_at < ?", endExclusive)
	}

	// Free-text search across columns, including person name
	if input.Search != nil && strings.TrimSpace(*input.Search) != "" {
		like := "%" + strings.TrimSpace(*input.Search) + "%"
		base = base.Where(
			`CAST(logs.id AS TEXT) ILIKE ?
			 OR logs.level ILIKE ?
			 OR logs.service ILIKE ?
			 OR logs.action ILIKE ?
			 OR logs.message ILIKE ?
			 OR COALESCE(logs.filename,'') ILIKE ?
			 OR COALESCE(array_to_string(logs.programs, ','),'') ILIKE ?
			 OR COALESCE(u.first_name,'') ILIKE ?
			 OR COALESCE(u.last_name,'') ILIKE ?`,
			like, like, like, like, like, like, like, like, like,
		)
	}

	// Total count (no paging)
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(input.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	// Paged logs
	var rows []LogRow
	if err := base.
		Session(&gorm.Session{}).
		Order("logs.created_at DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Scan(&rows).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	// Aggregates from the same filtered base
	aggs, err := ls.getAggregatesFromBase(base)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	return rows, aggs, total, totalPages, nil
}

func (ls *LogService) getAggregatesFromBase(base *gorm.DB) (LogAggregates, error) {
	aggs := LogAggregates{}
	limit := 12

	// Derived table so filters are identical
	sub := base.Session(&gorm.Session{}).
		Select("logs.user_id, logs.filename, logs.programs, u.first_name, u.last_name")

	derived := ls.DB.Table("(?) as x", sub)

	// 1) By filename
	{
		type r struct {
			Label string
			Count int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select("COALESCE(NULLIF(TRIM(x.filename), ''), 'No filename') AS label, COUNT(*) AS count").
			Group("label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByFilename = make([]AggItem, 0, len(out))
		for _, row := range out {
			aggs.ByFilename = append(aggs.ByFilename, AggItem{Label: row.Label, Count: row.Count})
		}
	}

	// 2) By person (user)
	{
		type r struct {
			UserID    *uint
			FirstName string
			LastName  string
			Label     string
			Count     int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select(`
				x.user_id,
				COALESCE(x.first_name,'') AS first_name,
				COALESCE(x.last_name,'') AS last_name,
				CASE
					WHEN (COALESCE(x.first_name,'') = '' AND COALESCE(x.last_name,'') = '')
					THEN 'Unknown'
					ELSE TRIM(COALESCE(x.first_name,'') || ' ' || COALESCE(x.last_name,''))
				END AS label,
				COUNT(*) AS count
			`).
			Group("x.user_id, first_name, last_name, label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByPerson = make([]PersonAggItem, 0, len(out))
		for _, row := range out {
			aggs.ByPerson = append(aggs.ByPerson, PersonAggItem{
				UserID:    row.UserID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Label:     row.Label,
				Count:     row.Count,
			})
		}
	}

	// 3) By program: unnest text[], plus rows with empty/null array as "No program"
	{
		type r struct {
			Label string
			Count int64
		}

		var outA []r
		if err := derived.Session(&gorm.Session{}).
			Select("p AS label, COUNT(*) AS count").
			Joins("JOIN LATERAL unnest(x.programs) AS p ON TRUE").
			Group("p").
			Order("count DESC").
			Limit(limit).
			Scan(&outA).Error; err != nil {
			return LogAggregates{}, err
		}

		var outB []r
		if err := derived.Session(&gorm.Session{}).
			Select("'No program' AS label, COUNT(*) AS count").
			Where("x.programs IS NULL OR array_length(x.programs, 1) IS NULL OR array_length(x.programs, 1) = 0").
			Group("label").
			Scan(&outB).Error; err != nil {
			return LogAggregates{}, err
		}

		m := map[string]int64{}
		for _, row := range outA {
			m[row.Label] += row.Count
		}
		for _, row := range outB {
			m[row.Label] += row.Count
		}

		items := make([]AggItem, 0, len(m))
		for k, v := range m {
			items = append(items, AggItem{Label: k, Count: v})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Count > items[j].Count })
		if len(items) > limit {
			items = items[:limit]
		}
		aggs.ByProgram = items
	}

	return aggs, nil
}
