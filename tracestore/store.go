package tracestore

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	BackendBbolt  = "bbolt"
	BackendBadger = "badger"
	BackendPebble = "pebble"

	// run 이름과 스텝 번호 사이 구분자
	keySep = 0x00
	seqLen = 8
)

var (
	ErrUnknownBackend = errors.New("tracestore: unknown backend")
	ErrInvalidRun     = errors.New("tracestore: invalid run name")
)

// Store 추적 실행(run)별로 이벤트 레코드를 순서대로 저장하는 저장소.
// 스텝 번호는 run마다 0부터 증가하며, 이어서 Append하면 번호도 이어진다.
type Store interface {
	Append(run string, records [][]byte) error
	Replay(run string, fn func(seq uint64, rec []byte) error) error
	Runs() ([]string, error)
	Close() error
}

// Backends 지원하는 백엔드 이름
func Backends() []string {
	return []string{BackendBbolt, BackendBadger, BackendPebble}
}

// Open 이름으로 백엔드를 골라 path에 저장소를 연다
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendBbolt:
		return OpenBbolt(path)
	case BackendBadger:
		return OpenBadger(path)
	case BackendPebble:
		return OpenPebble(path)
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
}

func validateRun(run string) error {
	if run == "" || strings.IndexByte(run, keySep) >= 0 {
		return errors.Wrapf(ErrInvalidRun, "%q", run)
	}
	return nil
}

func encodeSeq(seq uint64) []byte {
	b := make([]byte, seqLen)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// runPrefix badger/pebble 공용 키 접두사: run + 0x00
func runPrefix(run string) []byte {
	p := make([]byte, 0, len(run)+1)
	p = append(p, run...)
	return append(p, keySep)
}

func decodeSeq(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

func recordKey(run string, seq uint64) []byte {
	return append(runPrefix(run), encodeSeq(seq)...)
}

// splitKey 키를 run 이름과 스텝 번호로 분리
func splitKey(key []byte) (string, uint64, bool) {
	i := bytes.IndexByte(key, keySep)
	if i < 0 || len(key)-i-1 != seqLen {
		return "", 0, false
	}
	return string(key[:i]), binary.BigEndian.Uint64(key[i+1:]), true
}

// prefixUpperBound 접두사 구간의 배타적 상한
func prefixUpperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func sortedRuns(set map[string]struct{}) []string {
	runs := make([]string, 0, len(set))
	for r := range set {
		runs = append(runs, r)
	}
	sort.Strings(runs)
	return runs
}
