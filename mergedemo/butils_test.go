package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/mergetrace/config"
)

func TestParseValues(t *testing.T) {
	got, err := parseValues("12, 11,13 5,6,7")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 13, 5, 6, 7}, got)

	got, err = parseValues("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseValues("1,two")
	assert.Error(t, err)
}

func TestGenerateRandomData_Seeded(t *testing.T) {
	a := generateRandomData(50, 42)
	b := generateRandomData(50, 42)
	assert.Equal(t, a, b)
	assert.Len(t, a, 50)
	for _, v := range a {
		assert.True(t, v >= 0 && v < 100)
	}
}

func TestReadWriteDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, writeDataToFile([]int{3, -1, 2}, path))

	got, err := readDataFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []int{3, -1, 2}, got)

	require.NoError(t, os.WriteFile(path, []byte("1\n\n2\nx\n"), 0o644))
	_, err = readDataFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":4")
}

func TestLoadInput(t *testing.T) {
	values := []int{2, 1}
	got, err := loadInput(config.InputConfig{Values: values})
	require.NoError(t, err)
	assert.Equal(t, values, got)
	// 설정의 배열은 정렬로 바뀌지 않도록 복사된다
	got[0] = 99
	assert.Equal(t, 2, values[0])

	got, err = loadInput(config.InputConfig{Values: values, Random: 5, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, generateRandomData(5, 1), got)
}
