package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-manager/internal/domain"
)

func TestEmployeeDecodesNumericAndStringIDs(t *testing.T) {
	var list []domain.Employee
	err := json.Unmarshal([]byte(`[
		{"id": 7, "name": "Ada", "salary": 100.5, "date_joined": "2020-01-02"},
		{"id": "emp-8", "name": "Bob"}
	]`), &list)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ID("7"), list[0].ID)
	assert.Equal(t, 100.5, list[0].Salary)
	assert.Equal(t, domain.ID("emp-8"), list[1].ID)
}

func TestIDMarshalsBackInKind(t *testing.T) {
	b, err := json.Marshal(domain.Employee{ID: "7"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":7`)

	b, err = json.Marshal(domain.Employee{ID: "emp-8"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"emp-8"`)

	for _, id := range []domain.ID{"007", "+5", "-0", "99999999999999999999"} {
		b, err = json.Marshal(domain.Employee{ID: id})
		require.NoError(t, err, id)
		var back domain.Employee
		require.NoError(t, json.Unmarshal(b, &back), id)
		assert.Equal(t, id, back.ID)
	}

	b, err = json.Marshal(domain.Employee{ID: "-12"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":-12`)
}

func TestDraftHasNoID(t *testing.T) {
	b, err := json.Marshal(domain.Draft{Name: "Ada"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"id"`)
	assert.Contains(t, string(b), `"date_joined":""`)
}

func TestParseDate(t *testing.T) {
	d, ok := domain.ParseDate("2021-03-04")
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, ok = domain.ParseDate("2021-03-04T22:00:00-05:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "yesterday", "2021-13-01", "04/03/2021"} {
		_, ok := domain.ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestSortKeyValid(t *testing.T) {
	assert.True(t, domain.SortDateDesc.Valid())
	assert.False(t, domain.SortKey("salary").Valid())
	assert.Len(t, domain.SortOptions, 6)
}

func TestStatusErrorMatching(t *testing.T) {
	err := &domain.StatusError{Op: "update employee", StatusCode: 404}
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "update employee: status 404", err.Error())

	err = &domain.StatusError{Op: "create employee", StatusCode: 422, Detail: "bad email"}
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "create employee: status 422: bad email", err.Error())
}
