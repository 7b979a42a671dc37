package mergesort

import (
	"cmp"
	"slices"
)

// Sort 추적 가능한 머지소트. seq를 제자리에서 오름차순으로 정렬한다.
// tr이 nil이면 추적하지 않는다. nil이 아니면 사용 가능한 싱크여야 하며,
// 예외로 nil *Recorder, nil *Counter는 아무것도 하지 않는다.
func Sort[T cmp.Ordered](seq []T, tr Tracer[T]) {
	if tr == nil {
		tr = Nop[T]{}
	}
	sortDepth(seq, tr, 0)
}

func sortDepth[T cmp.Ordered](seq []T, tr Tracer[T], depth int) {
	// 길이 0, 1은 이미 정렬됨
	if len(seq) <= 1 {
		return
	}

	mid := len(seq) / 2
	// 원본과 독립된 복사본 (뷰가 아님)
	left := slices.Clone(seq[:mid])
	right := slices.Clone(seq[mid:])

	tr.Trace(Event[T]{
		Kind:  KindSplit,
		Depth: depth,
		Seq:   slices.Clone(seq),
		Mid:   mid,
		Left:  slices.Clone(left),
		Right: slices.Clone(right),
	})

	sortDepth(left, tr, depth+1)
	sortDepth(right, tr, depth+1)

	merge(seq, left, right, tr, depth)
}

// merge 정렬된 두 절반을 seq에 병합
func merge[T cmp.Ordered](seq, left, right []T, tr Tracer[T], depth int) {
	i, j, k := 0, 0, 0

	for i < len(left) && j < len(right) {
		tr.Trace(Event[T]{
			Kind:     KindMergeCompare,
			Depth:    depth,
			Seq:      slices.Clone(seq),
			I:        i,
			J:        j,
			K:        k,
			LeftVal:  left[i],
			RightVal: right[j],
		})

		// 같으면 오른쪽이 먼저 쓰인다
		from := KindMergeWriteLeft
		if left[i] < right[j] {
			seq[k] = left[i]
			tr.Trace(Event[T]{Kind: KindMergeWriteLeft, Depth: depth, I: i, J: j, K: k, Value: left[i]})
			i++
		} else {
			from = KindMergeWriteRight
			seq[k] = right[j]
			tr.Trace(Event[T]{Kind: KindMergeWriteRight, Depth: depth, I: i, J: j, K: k, Value: right[j]})
			j++
		}
		k++
		tr.Trace(Event[T]{Kind: KindMergeProgress, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k, From: from})
	}

	for i < len(left) {
		tr.Trace(Event[T]{Kind: KindMergeTailLeft, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k, Value: left[i]})
		seq[k] = left[i]
		i++
		k++
		tr.Trace(Event[T]{Kind: KindMergeProgress, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k, From: KindMergeTailLeft})
	}

	for j < len(right) {
		tr.Trace(Event[T]{Kind: KindMergeTailRight, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k, Value: right[j]})
		seq[k] = right[j]
		j++
		k++
		tr.Trace(Event[T]{Kind: KindMergeProgress, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k, From: KindMergeTailRight})
	}

	tr.Trace(Event[T]{Kind: KindMergeComplete, Depth: depth, Seq: slices.Clone(seq), I: i, J: j, K: k})
}
