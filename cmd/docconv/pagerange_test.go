package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		ranges    string
		total   int
		want    []int
		wantErr bool
	}{
		{ranges: "", total: 3, want: nil},
		{ranges: "2", total: 3, want: []int{2}},
		{ranges: "1-3", total: 5, want: []int{1, 2, 3}},
		{ranges: "3, 1, 3", total: 5, want: []int{3, 1}},
		{ranges: "1-2,2-4", total: 5, want: []int{1, 2, 3, 4}},
		{ranges: "0", total: 3, wantErr: true},
		{ranges: "4", total: 3, wantErr: true},
		{ranges: "3-1", total: 3, wantErr: true},
		{ranges: "a", total: 3, wantErr: true},
		{ranges: "1-b", total: 3, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePageRange(tt.ranges, tt.total)
		if tt.wantErr {
			assert.Error(t, err, tt.ranges)
			continue
		}
		assert.NoError(t, err, tt.ranges)
		assert.Equal(t, tt.want, got, tt.ranges)
	}
}
