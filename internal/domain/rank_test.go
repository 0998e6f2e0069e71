package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Sort
	}{
		{"пустое значение — most-recent", "", Sort{MostRecent: true}},
		{"most-recent", "most-recent", Sort{MostRecent: true}},
		{"просмотры за всё время", "most-viewed-all-time", Sort{Metric: MetricViews}},
		{"просмотры за месяц", "most-viewed-this-month", Sort{Metric: MetricViews, Window: 30 * 24 * time.Hour}},
		{"просмотры за неделю", "most-viewed-this-week", Sort{Metric: MetricViews, Window: 7 * 24 * time.Hour}},
		{"лайки за всё время", "most-liked-all-time", Sort{Metric: MetricLikes}},
		{"лайки за месяц", "most-liked-this-month", Sort{Metric: MetricLikes, Window: 30 * 24 * time.Hour}},
		{"лайки за неделю", "most-liked-this-week", Sort{Metric: MetricLikes, Window: 7 * 24 * time.Hour}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSort_Unknown(t *testing.T) {
	_, err := ParseSort("most-commented")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestReactionKind_Valid(t *testing.T) {
	assert.True(t, ReactionLike.Valid())
	assert.True(t, ReactionDislike.Valid())
	assert.False(t, ReactionKind("love").Valid())
	assert.False(t, ReactionKind("").Valid())
}
