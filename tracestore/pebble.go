package tracestore

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

// PebbleStore 키 구조는 BadgerStore와 동일
type PebbleStore struct {
	mu sync.Mutex
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: open pebble")
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) nextSeq(run string) (uint64, error) {
	prefix := runPrefix(run)
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return 0, err
	}
	defer it.Close()

	if it.Last() {
		if _, seq, ok := splitKey(it.Key()); ok {
			return seq + 1, nil
		}
	}
	return 0, nil
}

func (s *PebbleStore) Append(run string, records [][]byte) error {
	if err := validateRun(run); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, err := s.nextSeq(run)
	if err != nil {
		return errors.Wrapf(err, "tracestore: next seq for %q", run)
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	for _, rec := range records {
		if err := batch.Set(recordKey(run, seq), rec, nil); err != nil {
			return errors.Wrapf(err, "tracestore: set %s/%d", run, seq)
		}
		seq++
	}
	return errors.Wrap(batch.Commit(pebble.Sync), "tracestore: commit pebble batch")
}

func (s *PebbleStore) Replay(run string, fn func(seq uint64, rec []byte) error) error {
	if err := validateRun(run); err != nil {
		return err
	}
	prefix := runPrefix(run)
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return errors.Wrap(err, "tracestore: pebble iterator")
	}
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		_, seq, ok := splitKey(it.Key())
		if !ok {
			continue
		}
		// Value는 다음 Next 전까지만 유효
		if err := fn(seq, bytes.Clone(it.Value())); err != nil {
			return err
		}
	}
	return errors.Wrap(it.Error(), "tracestore: pebble iterate")
}

func (s *PebbleStore) Runs() ([]string, error) {
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: pebble iterator")
	}
	defer it.Close()

	set := map[string]struct{}{}
	for it.First(); it.Valid(); it.Next() {
		if run, _, ok := splitKey(it.Key()); ok {
			set[run] = struct{}{}
		}
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "tracestore: list pebble runs")
	}
	return sortedRuns(set), nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
