package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := []byte("Bldg ID,Bldg Name,Geo Dist\nK001, PS 1 ,5\nK002,PS 2,7\n")

	header, rows, err := ParseCSV(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bldg ID", "Bldg Name", "Geo Dist"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"K001", "PS 1", "5"}, rows[0], "fields trimmed")
}

func TestParseCSV_RaggedRows(t *testing.T) {
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	_, rows, err := ParseCSV(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 4)
}

func TestParseCSV_QuotedFields(t *testing.T) {
	data := []byte("Bldg ID,Organization Name\nK001,\"P.S. 001, The First School\"\n")

	_, rows, err := ParseCSV(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P.S. 001, The First School", rows[0][1])
}

func TestParseCSV_Empty(t *testing.T) {
	_, _, err := ParseCSV(context.Background(), nil)
	assert.Error(t, err)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	header, rows, err := ParseCSV(context.Background(), []byte("a,b,c\n"))
	require.NoError(t, err)
	assert.Len(t, header, 3)
	assert.Empty(t, rows)
}

func TestParseCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ParseCSV(ctx, []byte("a,b\n1,2\n"))
	assert.Error(t, err)
}
