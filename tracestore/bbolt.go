package tracestore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

const bboltDBFile = "trace.db"

// BboltStore run마다 버킷 하나. 키는 빅엔디안 스텝 번호
type BboltStore struct {
	db *bbolt.DB
}

func OpenBbolt(dir string) (*BboltStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "tracestore: create bbolt dir")
	}
	db, err := bbolt.Open(filepath.Join(dir, bboltDBFile), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: open bbolt")
	}
	return &BboltStore{db: db}, nil
}

func (s *BboltStore) Append(run string, records [][]byte) error {
	if err := validateRun(run); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(run))
		if err != nil {
			return errors.Wrapf(err, "tracestore: bucket %q", run)
		}
		// 버킷 시퀀스를 다음 스텝 번호로 사용
		seq := b.Sequence()
		for _, rec := range records {
			if err := b.Put(encodeSeq(seq), rec); err != nil {
				return errors.Wrapf(err, "tracestore: put %s/%d", run, seq)
			}
			seq++
		}
		return b.SetSequence(seq)
	})
}

func (s *BboltStore) Replay(run string, fn func(seq uint64, rec []byte) error) error {
	if err := validateRun(run); err != nil {
		return err
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(run))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(k) != seqLen {
				continue
			}
			// 값은 트랜잭션 동안만 유효
			if err := fn(decodeSeq(k), append([]byte(nil), v...)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BboltStore) Runs() ([]string, error) {
	set := map[string]struct{}{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			set[string(name)] = struct{}{}
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "tracestore: list bbolt runs")
	}
	return sortedRuns(set), nil
}

func (s *BboltStore) Close() error {
	return s.db.Close()
}
