package frames

import (
	"reflect"
	"testing"
)

func TestApportion(t *testing.T) {
	tests := []struct {
		total   int
		weights []int
		want    []int
	}{
		{7, []int{10, 5, 5}, []int{4, 2, 1}},
		{6, []int{1, 1, 1}, []int{2, 2, 2}},
		{5, []int{1}, []int{5}},
		{0, []int{3, 2}, []int{0, 0}},
		{2, []int{1, 1, 1, 1}, []int{1, 1, 0, 0}},
		{3, []int{0, -2, 1}, []int{1, 1, 1}},
	}
	for _, tt := range tests {
		got := Apportion(tt.total, tt.weights)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Apportion(%d, %v) = %v, want %v", tt.total, tt.weights, got, tt.want)
		}
	}
}

func TestApportionSumsToTotal(t *testing.T) {
	cases := [][]int{
		{3, 1, 4, 1, 5, 9, 2, 6},
		{100},
		{1, 1000},
		{7, 7, 7},
	}
	for _, weights := range cases {
		for total := 0; total <= 25; total++ {
			got := Apportion(total, weights)
			sum := 0
			for _, v := range got {
				sum += v
			}
			if sum != total {
				t.Errorf("Apportion(%d, %v) sums to %d", total, weights, sum)
			}
		}
	}
}

func TestApportionEmptyWeights(t *testing.T) {
	if got := Apportion(5, nil); len(got) != 0 {
		t.Errorf("expected empty allocation, got %v", got)
	}
}
