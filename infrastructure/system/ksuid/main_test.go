package ksuid

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/t-kuni/ngpkgsync/domain/system/timer"
	"github.com/t-kuni/ngpkgsync/testUtil"
	"go.uber.org/mock/gomock"
)

func TestKsuidGenerator_New(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	now := testUtil.NewTime("2024-05-01T10:00:00Z")
	mockTimer := timer.NewMockITimer(mockCtrl)
	mockTimer.EXPECT().Now().Return(now).Times(2)

	generator := NewKsuidGenerator(mockTimer)
	first := generator.New()
	second := generator.New()

	assert.NotEqual(t, first, second)

	parsed, err := ksuid.Parse(first)
	assert.NoError(t, err)
	assert.True(t, parsed.Time().Equal(now))
}
