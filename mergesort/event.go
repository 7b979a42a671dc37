package mergesort

import (
	"cmp"
	"fmt"
	"strings"
)

// Kind 추적 이벤트 종류
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSplit
	KindMergeCompare
	KindMergeWriteLeft
	KindMergeWriteRight
	KindMergeProgress
	KindMergeTailLeft
	KindMergeTailRight
	KindMergeComplete
)

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindSplit:           "split",
	KindMergeCompare:    "merge-compare",
	KindMergeWriteLeft:  "merge-write-left",
	KindMergeWriteRight: "merge-write-right",
	KindMergeProgress:   "merge-progress",
	KindMergeTailLeft:   "merge-tail-left",
	KindMergeTailRight:  "merge-tail-right",
	KindMergeComplete:   "merge-complete",
}

// Kinds 정의된 모든 이벤트 종류 (출력 순서용)
func Kinds() []Kind {
	return []Kind{
		KindSplit, KindMergeCompare, KindMergeWriteLeft, KindMergeWriteRight,
		KindMergeProgress, KindMergeTailLeft, KindMergeTailRight, KindMergeComplete,
	}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == KindUnknown || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("mergesort: invalid event kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	name := string(b)
	for i, n := range kindNames {
		if i != int(KindUnknown) && n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("mergesort: unknown event kind %q", name)
}

// IsWrite 원본 시퀀스에 값을 쓰는 이벤트인지
func (k Kind) IsWrite() bool {
	switch k {
	case KindMergeWriteLeft, KindMergeWriteRight, KindMergeTailLeft, KindMergeTailRight:
		return true
	}
	return false
}

// Event 알고리즘 한 단계의 기록.
// 슬라이스 필드는 모두 이벤트 발생 시점의 독립 복사본이다.
type Event[T cmp.Ordered] struct {
	Kind  Kind `json:"kind"`
	Depth int  `json:"depth"`
	Seq   []T  `json:"seq,omitempty"`

	// split
	Mid   int `json:"mid"`
	Left  []T `json:"left,omitempty"`
	Right []T `json:"right,omitempty"`

	// merge 커서
	I int `json:"i"`
	J int `json:"j"`
	K int `json:"k"`

	LeftVal  T `json:"left_val"`
	RightVal T `json:"right_val"`
	Value    T `json:"value"`

	// From merge-progress 직전의 쓰기 이벤트 종류
	From Kind `json:"from,omitempty"`
}

// Lines 이벤트를 사람이 읽는 문장들로 변환
func (e Event[T]) Lines() []string {
	switch e.Kind {
	case KindSplit:
		return []string{
			fmt.Sprintf("Splitting: %v", e.Seq),
			fmt.Sprintf("mid: %d", e.Mid),
			fmt.Sprintf("left_half: %v", e.Left),
			fmt.Sprintf("right_half: %v", e.Right),
		}
	case KindMergeCompare:
		return []string{
			fmt.Sprintf("While loop: i=%d, j=%d, k=%d", e.I, e.J, e.K),
			fmt.Sprintf("Comparing: left_half[i]=%v < right_half[j]=%v", e.LeftVal, e.RightVal),
			fmt.Sprintf("arr before if condition execute: %v", e.Seq),
		}
	case KindMergeWriteLeft:
		return []string{fmt.Sprintf("Condition is True. Setting arr[%d] = %v", e.K, e.Value)}
	case KindMergeWriteRight:
		return []string{fmt.Sprintf("Condition is False. Setting arr[%d] = %v", e.K, e.Value)}
	case KindMergeProgress:
		switch e.From {
		case KindMergeTailLeft:
			return []string{fmt.Sprintf("Array after copying left_half: %v", e.Seq)}
		case KindMergeTailRight:
			return []string{fmt.Sprintf("Array after copying right_half: %v", e.Seq)}
		}
		return []string{fmt.Sprintf("Array after iteration: %v", e.Seq)}
	case KindMergeTailLeft:
		return []string{
			fmt.Sprintf("Copying remaining left_half: Setting arr[%d] = %v", e.K, e.Value),
			fmt.Sprintf("arr before setting new code: %v", e.Seq),
		}
	case KindMergeTailRight:
		return []string{
			fmt.Sprintf("Copying remaining right_half: Setting arr[%d] = %v", e.K, e.Value),
			fmt.Sprintf("arr before setting new code: %v", e.Seq),
		}
	case KindMergeComplete:
		return []string{fmt.Sprintf("Merged: %v", e.Seq)}
	}
	return []string{e.Kind.String()}
}

func (e Event[T]) String() string {
	return strings.Join(e.Lines(), "; ")
}
