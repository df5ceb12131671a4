package predicate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

var (
	// ErrNilNode is returned when evaluating or checking a nil node.
	ErrNilNode = errors.New("predicate: nil node")
	// ErrUnknownKind is returned for nodes with an unsupported Kind.
	ErrUnknownKind = errors.New("predicate: unknown kind")
	// ErrMalformedDate is returned by date tests when the stored value is
	// present but cannot be read as a date.
	ErrMalformedDate = errors.New("predicate: malformed date")
)

// Values exposes declaration answers by path. A value store snapshot
// satisfies it.
type Values interface {
	Get(path fieldpath.Path) (any, bool)
}

// Actions exposes the event's action history.
type Actions interface {
	HasAction(actionType string) bool
}

// Env is the evaluation input of a predicate. Now defaults to the wall clock
// when zero.
type Env struct {
	Values  Values
	Actions Actions
	Now     time.Time
}

// Eval evaluates n against env. Absent paths never cause errors; only
// structurally invalid nodes and unreadable dates do.
func Eval(n *Node, env Env) (bool, error) {
	if env.Now.IsZero() {
		env.Now = time.Now()
	}
	return eval(n, env)
}

func eval(n *Node, env Env) (bool, error) {
	if n == nil {
		return false, ErrNilNode
	}

	switch n.Kind {
	case KindAlways:
		return true, nil

	case KindAnd:
		for _, arg := range n.Args {
			ok, err := eval(arg, env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case KindOr:
		for _, arg := range n.Args {
			ok, err := eval(arg, env)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case KindNot:
		if len(n.Args) != 1 {
			return false, fmt.Errorf("predicate: not expects 1 argument, got %d", len(n.Args))
		}
		ok, err := eval(n.Args[0], env)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case KindIsEqualTo:
		value, ok := lookup(env, n.Field)
		if !ok {
			return false, nil
		}
		return equal(value, n.Value), nil

	case KindIsInArray:
		value, ok := lookup(env, n.Field)
		if !ok {
			return false, nil
		}
		return contains(n.Values, value), nil

	case KindIsUndefined:
		_, ok := lookup(env, n.Field)
		return !ok, nil

	case KindIsUndefinedOrInArray:
		value, ok := lookup(env, n.Field)
		if !ok {
			return true, nil
		}
		return contains(n.Values, value), nil

	case KindIsUndefinedOrNotInArray:
		value, ok := lookup(env, n.Field)
		if !ok {
			return true, nil
		}
		return !contains(n.Values, value), nil

	case KindIsBeforeNow, KindIsAfterNow:
		value, ok := lookup(env, n.Field)
		if !ok {
			return false, nil
		}
		when, ok := parseDate(value)
		if !ok {
			return false, fmt.Errorf("predicate: %s %s: %w (%v)", n.Kind, n.Field, ErrMalformedDate, value)
		}
		if n.Kind == KindIsBeforeNow {
			return when.Before(env.Now), nil
		}
		return when.After(env.Now), nil

	case KindEventHasAction:
		if env.Actions == nil || isNilInterface(env.Actions) {
			return false, nil
		}
		return env.Actions.HasAction(n.Action), nil

	default:
		return false, fmt.Errorf("%w %q", ErrUnknownKind, n.Kind)
	}
}

// lookup treats a stored nil the same as a missing path.
func lookup(env Env, path fieldpath.Path) (any, bool) {
	if env.Values == nil || isNilInterface(env.Values) || path.IsZero() {
		return nil, false
	}
	value, ok := env.Values.Get(path)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func isNilInterface(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func contains(set []any, value any) bool {
	for _, candidate := range set {
		if equal(value, candidate) {
			return true
		}
	}
	return false
}

// equal is strict: numbers compare numerically across Go numeric kinds,
// everything else must share a kind. "1" never equals 1.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := coerceNumber(a); ok {
		bn, ok := coerceNumber(b)
		return ok && an == bn
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case int64:
		return time.Unix(v, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// formatLiteral renders a literal for the text shorthand and diagnostics.
func formatLiteral(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}
