package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"code", CategoryCode},
		{"biz", CategoryBiz},
		{"design", CategoryDesign},
		{"content", CategoryContent},
		{"misc", CategoryMisc},
		{" Code ", CategoryCode},
		{"coder", CategoryUnknown},
		{"", CategoryUnknown},
		{"marketing", CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"coder", RoleCoder},
		{"biz", RoleBiz},
		{"design", RoleDesign},
		{"content", RoleContent},
		{"misc", RoleMisc},
		{"CODER", RoleCoder},
		{"code", RoleUnknown},
		{"admin", RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.in))
		})
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Known())
		assert.Equal(t, c, ParseCategory(c.String()))
	}
	for _, r := range Roles() {
		assert.True(t, r.Known())
		assert.Equal(t, r, ParseRole(r.String()))
	}
	assert.False(t, CategoryUnknown.Known())
	assert.False(t, Category(42).Known())
	assert.Equal(t, "unknown", Category(42).String())
	assert.Equal(t, "unknown", Role(-1).String())
}

func TestCategory_JSON(t *testing.T) {
	type row struct {
		Category Category `json:"category"`
		Role     Role     `json:"role"`
	}

	var r row
	require.NoError(t, json.Unmarshal([]byte(`{"category":"design","role":"coder"}`), &r))
	assert.Equal(t, CategoryDesign, r.Category)
	assert.Equal(t, RoleCoder, r.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"category":"bogus","role":"bogus"}`), &r))
	assert.Equal(t, CategoryUnknown, r.Category)
	assert.Equal(t, RoleUnknown, r.Role)

	out, err := json.Marshal(row{Category: CategoryMisc, Role: RoleBiz})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"misc","role":"biz"}`, string(out))
}
