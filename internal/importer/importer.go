package importer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/importer/batigest"
)

// Format names a supported accounting-export layout.
type Format string

const (
	FormatBatigest Format = "batigest"
)

var ErrUnknownFormat = errors.New("unknown import format")

// Parser turns one accounting-export dialect into cost-entry params. The
// caller assigns the worksite and pushes every line through the validated
// ledger pipeline; nothing is persisted at this stage.
type Parser interface {
	Parse(r io.Reader) ([]cost.CreateParams, error)
}

// Service dispatches uploads to the parser registered for their format.
type Service struct {
	parsers map[Format]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatBatigest: batigest.New(),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]cost.CreateParams, error) {
	p, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s", ErrUnknownFormat, format, strings.Join(s.formats(), ", "))
	}

	return p.Parse(r)
}

func (s *Service) formats() []string {
	names := make([]string, 0, len(s.parsers))
	for f := range s.parsers {
		names = append(names, string(f))
	}

	sort.Strings(names)

	return names
}
