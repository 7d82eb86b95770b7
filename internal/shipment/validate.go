package shipment

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CreateInput is the typed result of a valid create payload.
type CreateInput struct {
	Weight      float64
	Volume      float64
	Destination string
	Deadline    time.Time
}

// Fixed per-field messages. Validation collects every violated rule so the
// caller can report all problems at once.
const (
	msgWeight           = "weight must be a positive number"
	msgVolume           = "volume must be a positive number"
	msgDestination      = "destination is required"
	msgDeadlineRequired = "deadline is required"
	msgDeadlineInvalid  = "deadline must be a valid ISO date string"
	msgStatusUnknown    = "status must be one of Pending, Optimized, Booked, In Transit"
)

// ValidateCreate turns an untrusted payload into a CreateInput or a non-empty
// list of field errors, never both.
func ValidateCreate(payload map[string]any) (CreateInput, []string) {
	var input CreateInput
	var errs []string

	if w, ok := coercePositiveNumber(payload["weight"]); ok {
		input.Weight = w
	} else {
		errs = append(errs, msgWeight)
	}

	if v, ok := coercePositiveNumber(payload["volume"]); ok {
		input.Volume = v
	} else {
		errs = append(errs, msgVolume)
	}

	if d, ok := coerceDestination(payload["destination"]); ok {
		input.Destination = d
	} else {
		errs = append(errs, msgDestination)
	}

	// "date" is the legacy alias for deadline.
	raw, present := payload["deadline"]
	if !present {
		raw, present = payload["date"]
	}
	if !present {
		errs = append(errs, msgDeadlineRequired)
	} else if t, ok := coerceTimestamp(raw); ok {
		input.Deadline = t
	} else {
		errs = append(errs, msgDeadlineInvalid)
	}

	if len(errs) > 0 {
		return CreateInput{}, errs
	}
	return input, nil
}

// ValidatePartialUpdate validates only the fields present in the payload.
// An empty resulting patch is not a validation failure; the service treats
// it as a distinct "no fields to update" outcome.
func ValidatePartialUpdate(payload map[string]any) (UpdatePatch, []string) {
	var patch UpdatePatch
	var errs []string

	if raw, present := payload["weight"]; present {
		if w, ok := coercePositiveNumber(raw); ok {
			patch.Weight = &w
		} else {
			errs = append(errs, msgWeight)
		}
	}

	if raw, present := payload["volume"]; present {
		if v, ok := coercePositiveNumber(raw); ok {
			patch.Volume = &v
		} else {
			errs = append(errs, msgVolume)
		}
	}

	if raw, present := payload["destination"]; present {
		if d, ok := coerceDestination(raw); ok {
			patch.Destination = &d
		} else {
			errs = append(errs, msgDestination)
		}
	}

	if raw, present := payload["deadline"]; present {
		if t, ok := coerceTimestamp(raw); ok {
			patch.Deadline = &t
		} else {
			errs = append(errs, msgDeadlineInvalid)
		}
	}

	if raw, present := payload["status"]; present {
		str, isString := raw.(string)
		if !isString {
			errs = append(errs, msgStatusUnknown)
		} else if status, ok := ParseStatus(str); ok {
			patch.Status = &status
		} else {
			errs = append(errs, msgStatusUnknown)
		}
	}

	if len(errs) > 0 {
		return UpdatePatch{}, errs
	}
	return patch, nil
}

// coercePositiveNumber accepts a finite number greater than zero, or a string
// that parses to one. NaN, infinities, zero and negatives are rejected.
func coercePositiveNumber(v any) (float64, bool) {
	var n float64
	switch value := v.(type) {
	case float64:
		n = value
	case float32:
		n = float64(value)
	case int:
		n = float64(value)
	case int64:
		n = float64(value)
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, false
	}
	return n, true
}

func coerceDestination(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// coerceTimestamp accepts a timestamp value or a string that parses to one.
func coerceTimestamp(v any) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		return value, true
	case string:
		for _, layout := range deadlineLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
