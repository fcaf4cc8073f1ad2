package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("  Employee ")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, r)

	_, ok = ParseRole("manager")
	assert.False(t, ok)
}

func TestTaskAssignedTo(t *testing.T) {
	task := Task{AssigneeID: sql.NullInt64{Int64: 7, Valid: true}}
	assert.True(t, task.AssignedTo(7))
	assert.False(t, task.AssignedTo(8))
	assert.False(t, Task{}.AssignedTo(0))
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate(" 2024-01-02 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", FormatDate(d))

	_, err = ParseDate("02.01.2024")
	assert.Error(t, err)

	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), DateOf(time.Date(2024, 1, 2, 23, 30, 0, 0, loc)))
}
