package tap

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/secmon-lab/tapnote/pkg/domain/types"
)

// Kind is the name of a notification type. The values are the GraphQL type
// names of the union members.
type Kind string

const (
	KindMatched      Kind = "Matched"
	KindNotMatched   Kind = "NotMatched"
	KindInvalidMatch Kind = "InvalidMatch"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Validate() error {
	switch k {
	case KindMatched, KindNotMatched, KindInvalidMatch:
		return nil
	}
	return goerr.New("invalid notification kind", goerr.V("kind", k), goerr.T(errs.TagValidation))
}

// KindOf returns the kind of n.
func KindOf(n Notification) Kind {
	return Visit[Kind](n, kindVisitor{})
}

type kindVisitor struct{}

func (kindVisitor) Matched(Matched) Kind           { return KindMatched }
func (kindVisitor) NotMatched(NotMatched) Kind     { return KindNotMatched }
func (kindVisitor) InvalidMatch(InvalidMatch) Kind { return KindInvalidMatch }

// Record is the serialized form of a notification as written by a pattern
// evaluator. Message is only used by InvalidMatch; the other kinds derive
// their own.
type Record struct {
	Kind           Kind             `json:"kind" yaml:"kind"`
	Pattern        types.TapPattern `json:"pattern" yaml:"pattern"`
	Message        string           `json:"message,omitempty" yaml:"message,omitempty"`
	InvalidMatches []string         `json:"invalid_matches,omitempty" yaml:"invalid_matches,omitempty"`
}

// Build constructs the notification described by the record.
func (x Record) Build() (Notification, error) {
	switch x.Kind {
	case KindMatched:
		return NewMatched(x.Pattern), nil
	case KindNotMatched:
		return NewNotMatched(x.Pattern), nil
	case KindInvalidMatch:
		return NewInvalidMatch(x.Message, x.Pattern, x.InvalidMatches), nil
	}

	return nil, goerr.Wrap(x.Kind.Validate(), "failed to build notification",
		goerr.V("pattern", x.Pattern),
		goerr.T(errs.TagValidation))
}

// NewRecord is the inverse of Record.Build.
func NewRecord(n Notification) Record {
	return Visit[Record](n, recordVisitor{})
}

type recordVisitor struct{}

func (recordVisitor) Matched(x Matched) Record {
	return Record{Kind: KindMatched, Pattern: x.pattern}
}

func (recordVisitor) NotMatched(x NotMatched) Record {
	return Record{Kind: KindNotMatched, Pattern: x.pattern}
}

func (recordVisitor) InvalidMatch(x InvalidMatch) Record {
	return Record{
		Kind:           KindInvalidMatch,
		Pattern:        x.pattern,
		Message:        x.message,
		InvalidMatches: x.InvalidMatches(),
	}
}
