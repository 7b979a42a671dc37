package mergesort

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tracer 정렬 과정의 이벤트를 받는 싱크.
// Trace는 알고리즘 진행과 동기적으로, 발생 순서대로 호출된다.
type Tracer[T cmp.Ordered] interface {
	Trace(e Event[T])
}

// TracerFunc 함수를 Tracer로 사용
type TracerFunc[T cmp.Ordered] func(e Event[T])

func (f TracerFunc[T]) Trace(e Event[T]) { f(e) }

// Nop 모든 이벤트를 버림
type Nop[T cmp.Ordered] struct{}

func (Nop[T]) Trace(Event[T]) {}

// Multi 여러 싱크로 같은 이벤트를 전달
type Multi[T cmp.Ordered] []Tracer[T]

func (m Multi[T]) Trace(e Event[T]) {
	for _, tr := range m {
		if tr != nil {
			tr.Trace(e)
		}
	}
}

// Recorder 이벤트를 메모리에 순서대로 보관
type Recorder[T cmp.Ordered] struct {
	Events []Event[T]
}

func (r *Recorder[T]) Trace(e Event[T]) {
	if r == nil {
		return
	}
	r.Events = append(r.Events, e)
}

// Kinds 기록된 이벤트 종류만 순서대로 반환
func (r *Recorder[T]) Kinds() []Kind {
	kinds := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (r *Recorder[T]) Reset() {
	r.Events = r.Events[:0]
}

// Counter 종류별 이벤트 수 집계
type Counter[T cmp.Ordered] struct {
	counts [len(kindNames)]int
}

func (c *Counter[T]) Trace(e Event[T]) {
	if c == nil {
		return
	}
	if int(e.Kind) < len(c.counts) {
		c.counts[e.Kind]++
	}
}

func (c *Counter[T]) Count(k Kind) int {
	if int(k) >= len(c.counts) {
		return 0
	}
	return c.counts[k]
}

func (c *Counter[T]) Splits() int      { return c.counts[KindSplit] }
func (c *Counter[T]) Comparisons() int { return c.counts[KindMergeCompare] }

// Writes 원본 시퀀스에 쓴 횟수 (비교 후 쓰기 + 나머지 복사)
func (c *Counter[T]) Writes() int {
	n := 0
	for _, k := range Kinds() {
		if k.IsWrite() {
			n += c.counts[k]
		}
	}
	return n
}

func (c *Counter[T]) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// TextTracer 수업용 문장 형식으로 한 줄씩 출력
type TextTracer[T cmp.Ordered] struct {
	W io.Writer
	// Indent 재귀 깊이만큼 들여쓰기
	Indent bool
}

func NewTextTracer[T cmp.Ordered](w io.Writer) *TextTracer[T] {
	return &TextTracer[T]{W: w}
}

func (t *TextTracer[T]) Trace(e Event[T]) {
	prefix := ""
	if t.Indent {
		prefix = strings.Repeat("  ", e.Depth)
	}
	for _, line := range e.Lines() {
		// 출력 실패는 정렬에 영향을 주지 않는다
		_, _ = fmt.Fprintf(t.W, "%s%s\n", prefix, line)
	}
}

// LogTracer 이벤트를 logrus 구조화 로그로 남김
type LogTracer[T cmp.Ordered] struct {
	Logger logrus.FieldLogger
	Level  logrus.Level
}

func NewLogTracer[T cmp.Ordered](logger logrus.FieldLogger) *LogTracer[T] {
	return &LogTracer[T]{Logger: logger, Level: logrus.DebugLevel}
}

func (t *LogTracer[T]) Trace(e Event[T]) {
	fields := logrus.Fields{
		"kind":  e.Kind.String(),
		"depth": e.Depth,
	}
	switch e.Kind {
	case KindSplit:
		fields["seq"] = e.Seq
		fields["mid"] = e.Mid
		fields["left"] = e.Left
		fields["right"] = e.Right
	case KindMergeCompare:
		fields["i"], fields["j"], fields["k"] = e.I, e.J, e.K
		fields["left_val"] = e.LeftVal
		fields["right_val"] = e.RightVal
		fields["seq"] = e.Seq
	case KindMergeWriteLeft, KindMergeWriteRight:
		fields["k"] = e.K
		fields["value"] = e.Value
	case KindMergeTailLeft, KindMergeTailRight:
		fields["k"] = e.K
		fields["value"] = e.Value
		fields["seq"] = e.Seq
	default:
		fields["seq"] = e.Seq
	}

	t.Logger.WithFields(fields).Log(t.Level, e.Kind.String())
}
