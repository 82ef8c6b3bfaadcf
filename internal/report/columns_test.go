package report

import (
	"bytes"
	"testing"

	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, BuildTable(fixtureRecords())))

	g := goldie.New(t)
	g.Assert(t, "inventory_csv", buf.Bytes())
}

func TestBuildTable_Header(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    []string
	}{
		{
			name:    "Errors only",
			records: fixtureRecords()[2:],
			want:    append(append([]string(nil), PriorityColumns...), ColError),
		},
		{
			name:    "No container records",
			records: fixtureRecords()[1:2],
			want: append(append([]string(nil), PriorityColumns...),
				ColCreated, ColExtension, ColFileHash, ColHost, ColIsAppContainer,
				ColLastAccessed, ColMimeType, ColOS, ColOSVersion, ColParentFolder,
				ColOwner, ColRootFolder, ColScanID, ColScanTimestamp, ColSubrole,
				ColUsername),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildTable(tt.records)
			assert.Equal(t, tt.want, table.Header)
			assert.Len(t, table.Rows, len(tt.records))
		})
	}
}

func TestBuildTable_PriorityColumnsLead(t *testing.T) {
	table := BuildTable(fixtureRecords())

	require.GreaterOrEqual(t, len(table.Header), len(PriorityColumns))
	assert.Equal(t, PriorityColumns, table.Header[:len(PriorityColumns)])

	rest := table.Header[len(PriorityColumns):]
	for i := 1; i < len(rest); i++ {
		assert.Less(t, rest[i-1], rest[i])
	}
}

func TestBuildTable_Idempotent(t *testing.T) {
	first := BuildTable(fixtureRecords())
	second := BuildTable(fixtureRecords())
	assert.Equal(t, first, second)
}

func TestBuildTable_ContainerValues(t *testing.T) {
	table := BuildTable(fixtureRecords())

	cell := func(row int, col string) string {
		for i, c := range table.Header {
			if c == col {
				return table.Rows[row][i]
			}
		}
		t.Fatalf("column %s missing", col)
		return ""
	}

	assert.Equal(t, "vite;electron", cell(0, ColDependencies))
	assert.Equal(t, "true", cell(0, ColHasElectron))
	assert.Equal(t, "false", cell(0, ColHasTailwind))
	assert.Equal(t, "", cell(1, ColHasElectron))
	assert.Equal(t, "true", cell(1, ColIsDuplicate))
	assert.Equal(t, "/scan/app/index.html", cell(1, ColDuplicateOf))
	assert.Equal(t, "", cell(2, ColSizeBytes))
}
