package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/chaoscampaign/tracker/internal/util"
)

// ErrBadArgument marks a command line argument that could not be parsed.
var ErrBadArgument = errors.New("bad argument")

// parseIntFromFloat parses a string that may be an integer ("3") or float
// ("3.0") into int64. A fractional value is rejected.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid integer", s)
	}
	return int64(f), nil
}

// Parser provides pure []string -> entity input conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// fields holds the key=value pairs of one command and tracks which keys
// were read, so leftovers can be reported as unknown.
type fields struct {
	values map[string]string
	used   map[string]bool
	err    error
}

func (p *Parser) fields(args []string) (*fields, error) {
	f := &fields{
		values: make(map[string]string, len(args)),
		used:   make(map[string]bool, len(args)),
	}
	for _, arg := range args {
		key, value, ok := util.SplitKeyValue(arg)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrBadArgument, arg)
		}
		if _, dup := f.values[key]; dup {
			return nil, fmt.Errorf("%w: %s given more than once", ErrBadArgument, key)
		}
		f.values[key] = value
	}
	p.logger.Debug("Parsed arguments", "count", len(f.values))
	return f, nil
}

func (f *fields) lookup(key string) (string, bool) {
	v, ok := f.values[key]
	if ok {
		f.used[key] = true
	}
	return v, ok
}

func (f *fields) fail(key string, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %s: %v", ErrBadArgument, key, err)
	}
}

func (f *fields) str(key string) (string, bool) {
	return f.lookup(key)
}

func (f *fields) float(key string) (float64, bool) {
	s, ok := f.lookup(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		f.fail(key, err)
		return 0, false
	}
	return v, true
}

func (f *fields) integer(key string) (int, bool) {
	s, ok := f.lookup(key)
	if !ok {
		return 0, false
	}
	v, err := parseIntFromFloat(strings.TrimSpace(s))
	if err != nil {
		f.fail(key, err)
		return 0, false
	}
	return int(v), true
}

func (f *fields) boolean(key string) (bool, bool) {
	s, ok := f.lookup(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		f.fail(key, err)
		return false, false
	}
	return v, true
}

func (f *fields) list(key string) ([]string, bool) {
	s, ok := f.lookup(key)
	if !ok {
		return nil, false
	}
	return util.SplitList(s), true
}

// done returns the first conversion error, or an error naming every key
// that no field consumed.
func (f *fields) done() error {
	if f.err != nil {
		return f.err
	}
	var unknown []string
	for key := range f.values {
		if !f.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("%w: unknown keys %s", ErrBadArgument, strings.Join(unknown, ", "))
	}
	return nil
}

// opt returns a pointer to v when ok is set.
func opt[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// Lookup returns the value of one key from args without checking the
// others. It backs optional filters such as campaign=<id>.
func (p *Parser) Lookup(args []string, key string) (string, bool, error) {
	f, err := p.fields(args)
	if err != nil {
		return "", false, err
	}
	v, ok := f.str(key)
	if err := f.done(); err != nil {
		return "", false, err
	}
	return v, ok, nil
}
