package mergesort

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_Examples(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{1}, []int{1}},
		{"pair", []int{2, 1}, []int{1, 2}},
		{"classroom", []int{12, 11, 13, 5, 6, 7}, []int{5, 6, 7, 11, 12, 13}},
		{"duplicates", []int{5, 3, 5, 1}, []int{1, 3, 5, 5}},
		{"sorted", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}},
		{"reversed", []int{9, 7, 5, 3, 1}, []int{1, 3, 5, 7, 9}},
		{"negative", []int{0, -3, 8, -3, 2}, []int{-3, -3, 0, 2, 8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq := slices.Clone(tc.in)
			Sort(seq, nil)
			require.Equal(t, tc.want, seq)
		})
	}
}

func TestSort_MutatesCallerSlice(t *testing.T) {
	arr := []int{3, 1, 2}
	view := arr[:]
	Sort(arr, &Recorder[int]{})
	require.Equal(t, []int{1, 2, 3}, view)
}

func TestSort_RandomPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		in := make([]int, rng.Intn(64))
		for i := range in {
			in[i] = rng.Intn(20) - 10
		}
		want := slices.Clone(in)
		slices.Sort(want)

		got := slices.Clone(in)
		Sort(got, nil)
		require.True(t, slices.IsSorted(got), "input %v", in)
		require.Equal(t, want, got, "input %v", in)

		// 이미 정렬된 입력은 내용이 바뀌지 않는다
		again := slices.Clone(got)
		Sort(again, nil)
		require.Equal(t, got, again)
	}
}

func TestSort_OtherOrderedTypes(t *testing.T) {
	words := []string{"pear", "apple", "fig", "apple"}
	Sort(words, nil)
	assert.Equal(t, []string{"apple", "apple", "fig", "pear"}, words)

	floats := []float64{2.5, -1, 0, 2.25}
	Sort(floats, nil)
	assert.Equal(t, []float64{-1, 0, 2.25, 2.5}, floats)
}

func TestSort_BaseCasesEmitNothing(t *testing.T) {
	for _, in := range [][]int{nil, {}, {1}} {
		rec := &Recorder[int]{}
		Sort(in, rec)
		assert.Empty(t, rec.Events)
	}
}

func TestSort_PairTrace(t *testing.T) {
	rec := &Recorder[int]{}
	seq := []int{2, 1}
	Sort(seq, rec)

	require.Equal(t, []int{1, 2}, seq)
	require.Equal(t, []Kind{
		KindSplit,
		KindMergeCompare,
		KindMergeWriteRight,
		KindMergeProgress,
		KindMergeTailLeft,
		KindMergeProgress,
		KindMergeComplete,
	}, rec.Kinds())

	ev := rec.Events
	assert.Equal(t, Event[int]{Kind: KindSplit, Seq: []int{2, 1}, Mid: 1, Left: []int{2}, Right: []int{1}}, ev[0])
	assert.Equal(t, Event[int]{Kind: KindMergeCompare, Seq: []int{2, 1}, LeftVal: 2, RightVal: 1}, ev[1])
	assert.Equal(t, Event[int]{Kind: KindMergeWriteRight, K: 0, Value: 1}, ev[2])
	assert.Equal(t, Event[int]{Kind: KindMergeProgress, Seq: []int{1, 1}, J: 1, K: 1, From: KindMergeWriteRight}, ev[3])
	assert.Equal(t, Event[int]{Kind: KindMergeTailLeft, Seq: []int{1, 1}, J: 1, K: 1, Value: 2}, ev[4])
	assert.Equal(t, Event[int]{Kind: KindMergeProgress, Seq: []int{1, 2}, I: 1, J: 1, K: 2, From: KindMergeTailLeft}, ev[5])
	assert.Equal(t, Event[int]{Kind: KindMergeComplete, Seq: []int{1, 2}, I: 1, J: 1, K: 2}, ev[6])
}

func TestSort_ClassroomCounts(t *testing.T) {
	c := &Counter[int]{}
	seq := []int{12, 11, 13, 5, 6, 7}
	Sort(seq, c)

	assert.Equal(t, 5, c.Splits())
	assert.Equal(t, 8, c.Comparisons())
	assert.Equal(t, 8, c.Count(KindMergeWriteLeft)+c.Count(KindMergeWriteRight))
	assert.Equal(t, 8, c.Count(KindMergeTailLeft)+c.Count(KindMergeTailRight))
	assert.Equal(t, 16, c.Writes())
	assert.Equal(t, 16, c.Count(KindMergeProgress))
	assert.Equal(t, 5, c.Count(KindMergeComplete))
	assert.Equal(t, 50, c.Total())
}

func TestSort_TiesGoRight(t *testing.T) {
	rec := &Recorder[int]{}
	Sort([]int{1, 1}, rec)
	require.Equal(t, KindMergeCompare, rec.Events[1].Kind)
	assert.Equal(t, KindMergeWriteRight, rec.Events[2].Kind)
	assert.Equal(t, KindMergeTailLeft, rec.Events[4].Kind)
}

func TestSort_SnapshotsAreCopies(t *testing.T) {
	rec := &Recorder[int]{}
	seq := []int{4, 3, 2, 1}
	Sort(seq, rec)

	split := rec.Events[0]
	require.Equal(t, KindSplit, split.Kind)
	assert.Equal(t, []int{4, 3, 2, 1}, split.Seq)
	assert.Equal(t, []int{4, 3}, split.Left)
	assert.Equal(t, []int{2, 1}, split.Right)

	// 이벤트를 고쳐도 결과에는 영향이 없다
	split.Seq[0] = 100
	assert.Equal(t, []int{1, 2, 3, 4}, seq)
}

func TestSort_DepthAndSplitOrder(t *testing.T) {
	rec := &Recorder[int]{}
	Sort([]int{12, 11, 13, 5, 6, 7}, rec)

	var splits []Event[int]
	for _, e := range rec.Events {
		if e.Kind == KindSplit {
			splits = append(splits, e)
		}
	}
	require.Len(t, splits, 5)
	// 왼쪽 절반을 먼저 재귀한다
	assert.Equal(t, []int{12, 11, 13, 5, 6, 7}, splits[0].Seq)
	assert.Equal(t, 0, splits[0].Depth)
	assert.Equal(t, []int{12, 11, 13}, splits[1].Seq)
	assert.Equal(t, 1, splits[1].Depth)
	assert.Equal(t, []int{11, 13}, splits[2].Seq)
	assert.Equal(t, 2, splits[2].Depth)
	assert.Equal(t, []int{5, 6, 7}, splits[3].Seq)
	assert.Equal(t, []int{6, 7}, splits[4].Seq)

	last := rec.Events[len(rec.Events)-1]
	assert.Equal(t, KindMergeComplete, last.Kind)
	assert.Equal(t, 0, last.Depth)
	assert.Equal(t, []int{5, 6, 7, 11, 12, 13}, last.Seq)
}

func TestSort_NilPointerSinks(t *testing.T) {
	seq := []int{3, 1, 2}
	require.NotPanics(t, func() { Sort(seq, (*Recorder[int])(nil)) })
	require.NotPanics(t, func() { Sort(seq, (*Counter[int])(nil)) })
	assert.Equal(t, []int{1, 2, 3}, seq)
}
