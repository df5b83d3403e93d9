package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := map[string]Classification{
		"intern":      ClassificationIntern,
		" Appointed ": ClassificationAppointed,
		"PERMANENT":   ClassificationPermanent,
		"1":           ClassificationIntern,
		"3":           ClassificationPermanent,
	}
	for in, want := range tests {
		got, err := ParseClassification(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "0", "4", "contractor"} {
		_, err := ParseClassification(in)
		assert.Error(t, err, in)
	}
}

func TestClassification_JSON(t *testing.T) {
	var req struct {
		Contract Classification `json:"contract"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"contract":"appointed"}`), &req))
	assert.Equal(t, ClassificationAppointed, req.Contract)

	require.NoError(t, json.Unmarshal([]byte(`{"contract":3}`), &req))
	assert.Equal(t, ClassificationPermanent, req.Contract)

	assert.Error(t, json.Unmarshal([]byte(`{"contract":"volunteer"}`), &req))

	out, err := json.Marshal(ClassificationIntern)
	require.NoError(t, err)
	assert.JSONEq(t, `"intern"`, string(out))
}
