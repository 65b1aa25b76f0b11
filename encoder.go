// FILE: oxidecomputer/slog-dtrace/encoder.go
package dtrace

import (
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
)

// serializer manages the buffered encoding of a single record into the
// wire payload. Instances are pooled; the returned buffer is only valid
// until the serializer is released.
type serializer struct {
	buf    []byte
	limit  int
	reason string // first encoding failure, triggers the "err" variant
}

var serializerPool = sync.Pool{
	New: func() any {
		return &serializer{buf: make([]byte, 0, 1024)}
	},
}

func newSerializer() *serializer {
	return serializerPool.Get().(*serializer)
}

func (s *serializer) release() {
	// Don't hold on to unusually large buffers
	if cap(s.buf) <= 1<<16 {
		serializerPool.Put(s)
	}
}

// encode converts a record plus the handler's accumulated context into one
// self-describing JSON payload. It never fails: any encoding problem
// downgrades the result to the "err" variant, which still carries the
// record's location, level, timestamp, and message. The second return
// reports whether the full "ok" form was produced.
func (s *serializer) encode(goas []groupOrAttrs, r slog.Record, limit int) ([]byte, bool) {
	s.buf = s.buf[:0]
	s.limit = limit
	s.reason = ""

	module, file, line := recordLocation(r.PC)
	level := levelNames[probeForLevel(r.Level)]
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	s.buf = append(s.buf, `{"ok":{`...)
	s.appendMeta(module, file, line, level, ts, r.Message)
	s.buf = append(s.buf, `,"kv":{`...)

	// Context key-values first (parent loggers, in attachment order),
	// then the record's own, nested under any open groups.
	open := 0
	for _, ga := range goas {
		if ga.group != "" {
			s.appendKey(ga.group)
			s.buf = append(s.buf, '{')
			open++
			continue
		}
		for _, a := range ga.attrs {
			s.appendAttr(a)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		s.appendAttr(a)
		return s.reason == ""
	})
	for ; open > 0; open-- {
		s.buf = append(s.buf, '}')
	}
	s.buf = append(s.buf, '}', '}', '}')

	if s.reason == "" && (s.limit <= 0 || len(s.buf) <= s.limit) {
		return s.buf, true
	}
	if s.reason == "" {
		s.reason = "payload exceeds size limit of " + strconv.Itoa(s.limit) + " bytes"
	}

	// Degraded fallback: operators still see the record metadata even
	// when its key-values could not be encoded
	reason := s.reason
	s.buf = s.buf[:0]
	s.buf = append(s.buf, `{"err":{`...)
	s.appendMeta(module, file, line, level, ts, r.Message)
	s.buf = append(s.buf, `,"error":`...)
	s.appendString(reason)
	s.buf = append(s.buf, '}', '}')
	return s.buf, false
}

// appendMeta writes the fields shared by both payload variants.
func (s *serializer) appendMeta(module, file string, line int, level string, ts time.Time, msg string) {
	s.buf = append(s.buf, `"location":{"module":`...)
	s.appendString(module)
	s.buf = append(s.buf, `,"file":`...)
	s.appendString(file)
	s.buf = append(s.buf, `,"line":`...)
	s.buf = strconv.AppendInt(s.buf, int64(line), 10)
	s.buf = append(s.buf, `},"level":`...)
	s.appendString(level)
	s.buf = append(s.buf, `,"timestamp":"`...)
	s.buf = ts.AppendFormat(s.buf, timestampFormat) // needs no escaping
	s.buf = append(s.buf, `","message":`...)
	s.appendString(msg)
}

// appendKey writes a separating comma when needed, then the quoted key and
// a colon.
func (s *serializer) appendKey(key string) {
	if c := s.buf[len(s.buf)-1]; c != '{' {
		s.buf = append(s.buf, ',')
	}
	s.appendString(key)
	s.buf = append(s.buf, ':')
}

// appendAttr writes one attribute, recursing into groups. Duplicate keys
// are retained in insertion order; empty attrs and empty groups are elided
// following slog handler conventions.
func (s *serializer) appendAttr(a slog.Attr) {
	if s.reason != "" {
		return
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		if a.Key == "" {
			// Inlined group
			for _, ga := range group {
				s.appendAttr(ga)
			}
			return
		}
		s.appendKey(a.Key)
		s.buf = append(s.buf, '{')
		for _, ga := range group {
			s.appendAttr(ga)
		}
		s.buf = append(s.buf, '}')
		s.checkLimit()
		return
	}
	s.appendKey(a.Key)
	s.appendValue(a.Value)
	s.checkLimit()
}

// appendValue writes one resolved, non-group value.
func (s *serializer) appendValue(v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s.appendString(v.String())
	case slog.KindInt64:
		s.buf = strconv.AppendInt(s.buf, v.Int64(), 10)
	case slog.KindUint64:
		s.buf = strconv.AppendUint(s.buf, v.Uint64(), 10)
	case slog.KindBool:
		s.buf = strconv.AppendBool(s.buf, v.Bool())
	case slog.KindFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.fail("non-representable float value: " + strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		s.buf = strconv.AppendFloat(s.buf, f, 'g', -1, 64)
	case slog.KindTime:
		s.buf = append(s.buf, '"')
		s.buf = v.Time().UTC().AppendFormat(s.buf, timestampFormat)
		s.buf = append(s.buf, '"')
	case slog.KindDuration:
		s.appendString(v.Duration().String())
	default:
		val := v.Any()
		if err, ok := val.(error); ok {
			// Errors rarely marshal to anything useful
			s.appendString(err.Error())
			return
		}
		raw, err := gojson.Marshal(val)
		if err != nil {
			s.fail("unsupported value: " + describeValue(val))
			return
		}
		s.buf = append(s.buf, raw...)
	}
}

const hexDigits = "0123456789abcdef"

// appendString appends a quoted, JSON-escaped string.
func (s *serializer) appendString(v string) {
	s.buf = append(s.buf, '"')
	start := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		s.buf = append(s.buf, v[start:i]...)
		switch c {
		case '"':
			s.buf = append(s.buf, '\\', '"')
		case '\\':
			s.buf = append(s.buf, '\\', '\\')
		case '\n':
			s.buf = append(s.buf, '\\', 'n')
		case '\r':
			s.buf = append(s.buf, '\\', 'r')
		case '\t':
			s.buf = append(s.buf, '\\', 't')
		default:
			s.buf = append(s.buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	s.buf = append(s.buf, v[start:]...)
	s.buf = append(s.buf, '"')
}

func (s *serializer) fail(reason string) {
	if s.reason == "" {
		s.reason = reason
	}
}

func (s *serializer) checkLimit() {
	if s.reason == "" && s.limit > 0 && len(s.buf) > s.limit {
		s.fail("payload exceeds size limit of " + strconv.Itoa(s.limit) + " bytes")
	}
}
