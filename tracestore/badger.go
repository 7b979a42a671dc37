package tracestore

import (
	"bytes"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// BadgerStore 키는 run + 0x00 + 빅엔디안 스텝 번호
type BadgerStore struct {
	mu sync.Mutex // 다음 스텝 번호 계산과 쓰기를 묶는다
	db *badger.DB
}

func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: open badger")
	}
	return &BadgerStore{db: db}, nil
}

// nextSeq run의 마지막 키 다음 번호 (역방향 탐색)
func (s *BadgerStore) nextSeq(run string) (uint64, error) {
	prefix := runPrefix(run)
	var next uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(append(bytes.Clone(prefix), bytes.Repeat([]byte{0xff}, seqLen)...))
		if it.ValidForPrefix(prefix) {
			if _, seq, ok := splitKey(it.Item().Key()); ok {
				next = seq + 1
			}
		}
		return nil
	})
	return next, err
}

func (s *BadgerStore) Append(run string, records [][]byte) error {
	if err := validateRun(run); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, err := s.nextSeq(run)
	if err != nil {
		return errors.Wrapf(err, "tracestore: next seq for %q", run)
	}

	wb := s.db.NewWriteBatch()
	for _, rec := range records {
		if err := wb.Set(recordKey(run, seq), rec); err != nil {
			wb.Cancel()
			return errors.Wrapf(err, "tracestore: set %s/%d", run, seq)
		}
		seq++
	}
	return errors.Wrap(wb.Flush(), "tracestore: flush badger batch")
}

func (s *BadgerStore) Replay(run string, fn func(seq uint64, rec []byte) error) error {
	if err := validateRun(run); err != nil {
		return err
	}
	prefix := runPrefix(run)
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			_, seq, ok := splitKey(item.Key())
			if !ok {
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return errors.Wrapf(err, "tracestore: read %s/%d", run, seq)
			}
			if err := fn(seq, val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Runs() ([]string, error) {
	set := map[string]struct{}{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if run, _, ok := splitKey(it.Item().Key()); ok {
				set[run] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: list badger runs")
	}
	return sortedRuns(set), nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
