package domain

import (
	"fmt"
	"time"
)

// RankMetric — по какому виду событий считается рейтинг.
type RankMetric string

const (
	MetricViews RankMetric = "views"
	MetricLikes RankMetric = "likes"
)

// Sort описывает порядок выдачи файлов библиотеки.
// MostRecent=true — сортировка только по дате загрузки, метрика и окно игнорируются.
// Window=0 означает «за всё время» (без фильтра по меткам времени).
type Sort struct {
	MostRecent bool
	Metric     RankMetric
	Window     time.Duration
}

const (
	windowWeek  = 7 * 24 * time.Hour
	windowMonth = 30 * 24 * time.Hour
)

// ParseSort разбирает значение query-параметра sort.
// Пустая строка трактуется как most-recent. Неизвестное значение — ErrInvalidArgument.
func ParseSort(s string) (Sort, error) {
	switch s {
	case "", "most-recent":
		return Sort{MostRecent: true}, nil
	case "most-viewed-all-time":
		return Sort{Metric: MetricViews}, nil
	case "most-viewed-this-month":
		return Sort{Metric: MetricViews, Window: windowMonth}, nil
	case "most-viewed-this-week":
		return Sort{Metric: MetricViews, Window: windowWeek}, nil
	case "most-liked-all-time":
		return Sort{Metric: MetricLikes}, nil
	case "most-liked-this-month":
		return Sort{Metric: MetricLikes, Window: windowMonth}, nil
	case "most-liked-this-week":
		return Sort{Metric: MetricLikes, Window: windowWeek}, nil
	default:
		return Sort{}, fmt.Errorf("%w: unknown sort value %q", ErrInvalidArgument, s)
	}
}
