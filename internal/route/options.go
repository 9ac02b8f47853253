package route

import (
	"fmt"
	"strconv"

	"cpw-router/pkg/geometry"
)

// ParseOptions builds Options from a generic option map, as loaded from
// a project file or supplied over a tool command line. Recognized keys:
//
//	anchors                  list of {key, x, y} objects, in order
//	lead_in, lead_out        numbers (mm)
//	advanced.avoid_collision bool, or the strings "true"/"false"
//
// Missing keys keep their zero defaults: no anchors, no leads, no
// collision avoidance.
func ParseOptions(raw map[string]interface{}) (Options, error) {
	var opts Options

	if v, ok := raw["anchors"]; ok {
		anchors, err := parseAnchors(v)
		if err != nil {
			return Options{}, err
		}
		opts.Anchors = anchors
	}

	var err error
	if opts.LeadIn, err = parseFloat(raw, "lead_in"); err != nil {
		return Options{}, err
	}
	if opts.LeadOut, err = parseFloat(raw, "lead_out"); err != nil {
		return Options{}, err
	}

	if v, ok := raw["advanced"]; ok {
		advanced, ok := v.(map[string]interface{})
		if !ok {
			return Options{}, fmt.Errorf("option advanced: expected object, got %T", v)
		}
		if av, ok := advanced["avoid_collision"]; ok {
			avoid, err := parseBool(av)
			if err != nil {
				return Options{}, fmt.Errorf("option advanced.avoid_collision: %w", err)
			}
			opts.AvoidCollision = avoid
		}
	}

	return opts, nil
}

// parseAnchors accepts a list of {key, x, y} objects. Input order is
// preserved; it is the routing order.
func parseAnchors(v interface{}) ([]Anchor, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("option anchors: expected list, got %T", v)
	}
	anchors := make([]Anchor, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("option anchors[%d]: expected object, got %T", i, item)
		}
		a := Anchor{}
		if k, ok := obj["key"].(string); ok {
			a.Key = k
		} else {
			a.Key = strconv.Itoa(i)
		}
		x, xok := obj["x"].(float64)
		y, yok := obj["y"].(float64)
		if !xok || !yok {
			return nil, fmt.Errorf("option anchors[%d]: x and y must be numbers", i)
		}
		a.Position = geometry.Point2D{X: x, Y: y}
		anchors = append(anchors, a)
	}
	return anchors, nil
}

func parseFloat(raw map[string]interface{}, key string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, nil
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("option %s: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("option %s: expected number, got %T", key, v)
	}
}

func parseBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, err
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected bool or string, got %T", v)
	}
}
