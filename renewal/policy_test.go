package renewal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	"github.com/pmb-ti/accountrenewal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeTargetExpiration(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		c     model.Classification
		want  time.Time
		never bool
	}{
		{name: "intern adds six months", c: model.ClassificationIntern, want: time.Date(2024, time.July, 10, 14, 30, 0, 0, time.UTC)},
		{name: "appointed adds one year", c: model.ClassificationAppointed, want: time.Date(2025, time.January, 10, 14, 30, 0, 0, time.UTC)},
		{name: "permanent never expires", c: model.ClassificationPermanent, never: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTargetExpiration(tt.c, ref)
			require.NoError(t, err)
			if tt.never {
				assert.True(t, got.IsNever())
				return
			}
			at, ok := got.Time()
			require.True(t, ok)
			assert.True(t, tt.want.Equal(at), "got %s want %s", at, tt.want)
		})
	}
}

func TestComputeTargetExpiration_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		c    model.Classification
		ref  time.Time
		want time.Time
	}{
		{"aug 31 plus six months", model.ClassificationIntern, date(2023, time.August, 31), date(2024, time.February, 29)},
		{"aug 31 plus six months non leap", model.ClassificationIntern, date(2024, time.August, 31), date(2025, time.February, 28)},
		{"leap day plus one year", model.ClassificationAppointed, date(2024, time.February, 29), date(2025, time.February, 28)},
		{"dec 31 plus six months", model.ClassificationIntern, date(2024, time.December, 31), date(2025, time.June, 30)},
		{"mid month is untouched", model.ClassificationIntern, date(2024, time.March, 15), date(2024, time.September, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTargetExpiration(tt.c, tt.ref)
			require.NoError(t, err)
			at, _ := got.Time()
			assert.True(t, tt.want.Equal(at), "got %s want %s", at, tt.want)
		})
	}
}

func TestComputeTargetExpiration_IsDeterministic(t *testing.T) {
	ref := time.Date(2024, time.May, 31, 8, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	for _, c := range model.Classifications() {
		first, err := ComputeTargetExpiration(c, ref)
		require.NoError(t, err)
		second, err := ComputeTargetExpiration(c, ref)
		require.NoError(t, err)
		assert.True(t, first.Equal(second), c.String())
	}
}

func TestComputeTargetExpiration_InvalidClassification(t *testing.T) {
	for _, c := range []model.Classification{0, 4, -1} {
		_, err := ComputeTargetExpiration(c, date(2024, time.January, 1))
		assert.True(t, errors.Is(err, echo_errors.ErrInvalidClassification), "classification %d", int(c))
	}
}

func TestComputeTargetExpiration_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ref := time.Date(2024, time.January, 10, 23, 0, 0, 0, loc)

	got, err := ComputeTargetExpiration(model.ClassificationIntern, ref)
	require.NoError(t, err)
	at, _ := got.Time()
	assert.Equal(t, loc, at.Location())
	assert.Equal(t, 10, at.Day())
	assert.Equal(t, 23, at.Hour())
}
