package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"open the page", "click submit"}
	value, err := list.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListScanTolerance(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
	}{
		{"nil", nil},
		{"empty bytes", []byte{}},
		{"legacy garbage", []byte("not json at all")},
		{"wrong shape", []byte(`{"a": 1}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var scanned StringList
			require.NoError(t, scanned.Scan(tc.input))
			assert.Empty(t, scanned)
			assert.NotNil(t, scanned)
		})
	}
}

func TestGuidanceMapRoundTrip(t *testing.T) {
	m := GuidanceMap{"fail": "file a bug", "needs-review": "discuss with team"}
	value, err := m.Value()
	require.NoError(t, err)

	var scanned GuidanceMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, m, scanned)
}

func TestGuidanceMapScanTolerance(t *testing.T) {
	var scanned GuidanceMap
	require.NoError(t, scanned.Scan([]byte("broken{")))
	assert.Empty(t, scanned)
	assert.NotNil(t, scanned)
}

func TestBugReportScan(t *testing.T) {
	var report BugReport
	require.NoError(t, report.Scan([]byte(`{"severity":"major","description":"crash"}`)))
	assert.Equal(t, "major", report.Severity)
	assert.Equal(t, "crash", report.Description)

	var empty BugReport
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, BugReport{}, empty)
}
