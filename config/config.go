package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/rlaau/mergetrace/tracestore"
)

// 추적 출력 형식
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatLog      = "log"
	FormatNone     = "none"
)

// Config 데모 실행 설정
type Config struct {
	Input InputConfig `toml:"input"`
	Trace TraceConfig `toml:"trace"`
	Store StoreConfig `toml:"store"`
}

// InputConfig 정렬할 배열의 출처. 우선순위: File > Random > Values
type InputConfig struct {
	Values []int  `toml:"values"`
	File   string `toml:"file"`
	Random int    `toml:"random"`
	Seed   int64  `toml:"seed"`
}

type TraceConfig struct {
	Format string `toml:"format"`
	Output string `toml:"output"`
	Indent bool   `toml:"indent"`
}

// StoreConfig Backend가 비어 있으면 저장하지 않는다
type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Run     string `toml:"run"`
}

// Default 수업 예제와 같은 기본 설정
func Default() Config {
	return Config{
		Input: InputConfig{
			Values: []int{12, 11, 13, 5, 6, 7},
			Seed:   42,
		},
		Trace: TraceConfig{Format: FormatText},
		Store: StoreConfig{Path: "trace", Run: "demo"},
	}
}

// Load path의 TOML을 기본값 위에 덮어쓴다. path가 비어 있으면 기본값
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrapf(err, "config: stat %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Trace.Format {
	case FormatText, FormatJSON, FormatMarkdown, FormatLog, FormatNone:
	default:
		return errors.Errorf("config: unknown trace format %q", c.Trace.Format)
	}
	if c.Input.Random < 0 {
		return errors.Errorf("config: random count must not be negative, got %d", c.Input.Random)
	}
	if c.Store.Backend == "" {
		return nil
	}
	known := false
	for _, b := range tracestore.Backends() {
		if b == c.Store.Backend {
			known = true
			break
		}
	}
	if !known {
		return errors.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Path == "" {
		return errors.New("config: store path is empty")
	}
	if c.Store.Run == "" {
		return errors.New("config: store run is empty")
	}
	return nil
}
