package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// maxCauseRunes caps the diagnostic carried by a Fault.
const maxCauseRunes = 200

// Fault stands in for an item whose extraction failed.
type Fault struct {
	Kind    Kind   `json:"-"`
	Ordinal int    `json:"ordinal"`
	Error   string `json:"error"`
}

// Entry is one slot of a section list: a record, or a Fault in its place.
// Lists are never shortened, so Entry ordinals run 1..len(list).
type Entry[T any] struct {
	Ordinal int
	Record  T
	Fault   *Fault
}

// Failed reports whether the slot holds a Fault.
func (e Entry[T]) Failed() bool { return e.Fault != nil }

// MarshalJSON writes the record mapping, or {ordinal, error} for a fault.
func (e Entry[T]) MarshalJSON() ([]byte, error) {
	if e.Fault != nil {
		return json.Marshal(e.Fault)
	}
	return json.Marshal(e.Record)
}

// UnmarshalJSON reverses MarshalJSON. A mapping with an "error" key is a fault.
func (e *Entry[T]) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ordinal int     `json:"ordinal"`
		Error   *string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != nil {
		*e = Entry[T]{Ordinal: probe.Ordinal, Fault: &Fault{Ordinal: probe.Ordinal, Error: *probe.Error}}
		return nil
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*e = Entry[T]{Ordinal: probe.Ordinal, Record: rec}
	return nil
}

// Records returns the successfully extracted records of a list, in order.
func Records[T any](entries []Entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.Fault == nil {
			out = append(out, e.Record)
		}
	}
	return out
}

// Faults returns the faults of a list, in order.
func Faults[T any](entries []Entry[T]) []Fault {
	var out []Fault
	for _, e := range entries {
		if e.Fault != nil {
			out = append(out, *e.Fault)
		}
	}
	return out
}

// itemError builds an ErrItemExtraction with a cause.
func itemError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrItemExtraction, fmt.Sprintf(format, args...))
}

// isolate runs one item's extraction. An error or panic becomes a Fault carrying the
// item's ordinal; it never propagates past this call.
func isolate[T any](x *Extractor, kind Kind, ordinal int, fn func() (T, error)) (e Entry[T]) {
	defer func() {
		if r := recover(); r != nil {
			e = faultEntry[T](x, kind, ordinal, fmt.Errorf("%w: panic: %v", ErrItemExtraction, r))
		}
	}()

	rec, err := fn()
	if err != nil {
		return faultEntry[T](x, kind, ordinal, err)
	}
	return Entry[T]{Ordinal: ordinal, Record: rec}
}

func faultEntry[T any](x *Extractor, kind Kind, ordinal int, err error) Entry[T] {
	if !errors.Is(err, ErrItemExtraction) {
		err = fmt.Errorf("%w: %w", ErrItemExtraction, err)
	}
	cause := fmt.Sprintf("Failed to extract %s #%d: %s", kind, ordinal, causeOf(err))
	x.log.Debug("profile: item fault",
		slog.String("section", kind.String()),
		slog.Int("ordinal", ordinal),
		slog.Any("error", err),
	)
	if x.onFault != nil {
		x.onFault(kind)
	}
	return Entry[T]{
		Ordinal: ordinal,
		Fault: &Fault{
			Kind:    kind,
			Ordinal: ordinal,
			Error:   strutil.TruncateWith(cause, maxCauseRunes, "..."),
		},
	}
}

// causeOf strips the ErrItemExtraction prefix from a wrapped message.
func causeOf(err error) string {
	return strings.TrimPrefix(err.Error(), ErrItemExtraction.Error()+": ")
}
