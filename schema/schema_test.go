package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/simple-items-server/model"
	"github.com/stevemurr/simple-items-server/schema"
)

func TestValidateAccepts(t *testing.T) {
	f, err := schema.Validate(map[string]any{
		"name":  "Tea",
		"price": 2.5,
		"size":  "small",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Fields{Name: "Tea", Price: 2.5, Size: model.SizeSmall}, f)
}

func TestValidateZeroPrice(t *testing.T) {
	f, err := schema.Validate(map[string]any{"name": "Free", "price": float64(0), "size": "large"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), f.Price)
}

func TestValidateIntegerPrice(t *testing.T) {
	f, err := schema.Validate(map[string]any{"name": "Mug", "price": 7, "size": "medium"})
	require.NoError(t, err)
	assert.Equal(t, float64(7), f.Price)
}

func TestValidateIgnoresExtraFields(t *testing.T) {
	f, err := schema.Validate(map[string]any{
		"id":    float64(99),
		"name":  "Tea",
		"price": 1.0,
		"size":  "small",
		"color": "green",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Fields{Name: "Tea", Price: 1, Size: model.SizeSmall}, f)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		doc   map[string]any
		field string
		msg   string
	}{
		{"missing name", map[string]any{"price": 1.0, "size": "small"}, "name", schema.MsgName},
		{"empty name", map[string]any{"name": "", "price": 1.0, "size": "small"}, "name", schema.MsgName},
		{"numeric name", map[string]any{"name": 12.0, "price": 1.0, "size": "small"}, "name", schema.MsgName},
		{"missing price", map[string]any{"name": "Tea", "size": "small"}, "price", schema.MsgPrice},
		{"string price", map[string]any{"name": "Tea", "price": "2.5", "size": "small"}, "price", schema.MsgPrice},
		{"bool price", map[string]any{"name": "Tea", "price": true, "size": "small"}, "price", schema.MsgPrice},
		{"missing size", map[string]any{"name": "Tea", "price": 1.0}, "size", schema.MsgSize},
		{"unknown size", map[string]any{"name": "Tea", "price": 1.0, "size": "huge"}, "size", schema.MsgSize},
		{"numeric size", map[string]any{"name": "Tea", "price": 1.0, "size": 2.0}, "size", schema.MsgSize},
		{"case sensitive size", map[string]any{"name": "Tea", "price": 1.0, "size": "Small"}, "size", schema.MsgSize},
		{"name reported first", map[string]any{"price": "x", "size": "huge"}, "name", schema.MsgName},
		{"price before size", map[string]any{"name": "Tea", "price": "x", "size": "huge"}, "price", schema.MsgPrice},
		{"nil document", nil, "name", schema.MsgName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Validate(tc.doc)
			require.Error(t, err)

			var verr *schema.ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}
