package tracestore

import (
	"cmp"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rlaau/mergetrace/mergesort"
)

// Writer 정렬 이벤트를 JSON으로 버퍼링했다가 Flush 때 한 번에 저장하는 Tracer.
// Trace는 에러를 돌려줄 수 없으므로 첫 인코딩 에러를 보관했다가 Flush에서 반환한다.
type Writer[T cmp.Ordered] struct {
	store Store
	run   string
	buf   [][]byte
	err   error
}

func NewWriter[T cmp.Ordered](store Store, run string) *Writer[T] {
	return &Writer[T]{store: store, run: run}
}

func (w *Writer[T]) Trace(e mergesort.Event[T]) {
	if w.err != nil {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		w.err = errors.Wrapf(err, "tracestore: encode %s event", e.Kind)
		return
	}
	w.buf = append(w.buf, b)
}

// Pending 아직 저장되지 않은 이벤트 수
func (w *Writer[T]) Pending() int {
	return len(w.buf)
}

func (w *Writer[T]) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.buf) == 0 {
		return nil
	}
	if err := w.store.Append(w.run, w.buf); err != nil {
		return err
	}
	w.buf = w.buf[:0]
	return nil
}

// Load 저장된 run의 이벤트를 순서대로 복원
func Load[T cmp.Ordered](store Store, run string) ([]mergesort.Event[T], error) {
	var events []mergesort.Event[T]
	err := store.Replay(run, func(seq uint64, rec []byte) error {
		var e mergesort.Event[T]
		if err := json.Unmarshal(rec, &e); err != nil {
			return errors.Wrapf(err, "tracestore: decode %s/%d", run, seq)
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
