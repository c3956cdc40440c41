package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"go.uber.org/zap"

	"github.com/TFMV/codemetrics/cache"
	"github.com/TFMV/codemetrics/types"
)

// Parser turns files and inline text into source units with lexical counts.
type Parser struct {
	mode   Mode
	cache  *cache.CountsCache
	logger *zap.Logger
}

// NewParser creates a Parser. A nil cache disables caching and a nil
// logger discards log output.
func NewParser(mode Mode, c *cache.CountsCache, logger *zap.Logger) *Parser {
	if mode == "" {
		mode = ModeSubstring
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		mode:   mode,
		cache:  c,
		logger: logger,
	}
}

// Mode returns the counting mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Count returns the lexical counts of text, using the cache when present.
func (p *Parser) Count(text string) types.RawCounts {
	if p.cache == nil {
		return Count(p.mode, text)
	}
	return p.cache.Counts(string(p.mode), text, func(s string) types.RawCounts {
		return Count(p.mode, s)
	})
}

// CacheStats reports count cache hits and misses. Both are zero when
// caching is disabled.
func (p *Parser) CacheStats() (hits, misses uint64) {
	if p.cache == nil {
		return 0, 0
	}
	return p.cache.Stats()
}

// ParseText builds a unit from inline text.
func (p *Parser) ParseText(name, text string) types.SourceUnit {
	return types.SourceUnit{
		Name:   name,
		Bytes:  int64(len(text)),
		Counts: p.Count(text),
	}
}

// ParseFile reads path and builds a unit from its contents.
func (p *Parser) ParseFile(path string) (types.SourceUnit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.SourceUnit{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	base := filepath.Base(path)
	unit := types.SourceUnit{
		Name:     base,
		Path:     path,
		Language: enry.GetLanguage(base, content),
		Bytes:    int64(len(content)),
		Counts:   p.Count(string(content)),
	}

	if unit.Counts.IsZero() {
		p.logger.Debug("No complexity indicators found", zap.String("path", path))
	}

	p.logger.Debug("Parsed source unit",
		zap.String("path", path),
		zap.String("language", unit.Language),
		zap.String("mode", string(p.mode)),
		zap.Int("decisions", unit.Counts.Decisions()),
		zap.Int("methods", unit.Counts.Methods))

	return unit, nil
}

// VendorDirs are the top-level directories holding third-party or tool
// managed files. Nested directories with these names are scanned.
var VendorDirs = []string{"vendor", "node_modules", ".git", ".mvn", ".gradle"}

// IsVendored reports whether the slash-separated path, relative to the
// scan root, lies in one of the VendorDirs.
func IsVendored(path string) bool {
	top, _, _ := strings.Cut(filepath.ToSlash(path), "/")
	for _, dir := range VendorDirs {
		if top == dir {
			return true
		}
	}
	return false
}
