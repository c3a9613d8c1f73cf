package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/feeds/20230615.csv", "20230615-ticks.csv"},
		{"data/feeds/20230615.csv.gz", "20230615-ticks.csv"},
		{"/abs/20230615.csv.zip", "20230615-ticks.csv"},
		{"plain", "plain-ticks.csv"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reportName(tt.path))
	}
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"ES", "VX"}, splitSymbols("ES, VX"))
	assert.Equal(t, []string{"ES"}, splitSymbols("ES,"))
	assert.Nil(t, splitSymbols(""))
}
