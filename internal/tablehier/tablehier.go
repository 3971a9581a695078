// Package tablehier resolves declarative column-priority configuration into
// the ordered column list a client should render for a given screen
// breakpoint. Pure transformation, no I/O.
package tablehier

import "fmt"

type Breakpoint string

const (
	BreakpointMobile  Breakpoint = "mobile"
	BreakpointTablet  Breakpoint = "tablet"
	BreakpointDesktop Breakpoint = "desktop"
)

func ValidBreakpoint(b Breakpoint) bool {
	return b == BreakpointMobile || b == BreakpointTablet || b == BreakpointDesktop
}

// Size classes usable in Column.HideOn.
const (
	SizeXS = "xs"
	SizeSM = "sm"
	SizeMD = "md"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

type Column struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	MobileLabel string   `json:"mobile_label,omitempty"`
	Priority    Priority `json:"priority"`
	// HideOn lists size classes on which the column is hidden: xs/sm hide on
	// mobile, md additionally hides on tablet. Desktop always shows all.
	HideOn []string `json:"hide_on,omitempty"`
	// CriticalInfo marks the column as part of the condensed mobile card.
	// Independent of priority-based hiding.
	CriticalInfo bool `json:"critical_info,omitempty"`
}

type Config struct {
	Entity  string   `json:"entity"`
	Columns []Column `json:"columns"`
	// MobileDefaults orders the keys shown in the mobile card view; the first
	// entry is pinned (sticky) when rendering.
	MobileDefaults []string `json:"mobile_defaults"`
}

// ResolvedColumn is what the client renders. Tier is the rendering layer's
// naming: priority "critical" normalizes to "high".
type ResolvedColumn struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Tier         string `json:"tier"`
	Sticky       bool   `json:"sticky,omitempty"`
	CriticalInfo bool   `json:"critical_info,omitempty"`
}

// Validate rejects configs whose mobile defaults reference unknown column keys.
func Validate(cfg Config) error {
	known := make(map[string]bool, len(cfg.Columns))
	for _, col := range cfg.Columns {
		known[col.Key] = true
	}
	for _, key := range cfg.MobileDefaults {
		if !known[key] {
			return fmt.Errorf("tablehier: %s: mobile default %q is not a column key", cfg.Entity, key)
		}
	}
	return nil
}

// Resolve filters and orders cfg.Columns for the breakpoint. Original column
// order is preserved; desktop returns every column.
func Resolve(cfg Config, bp Breakpoint) []ResolvedColumn {
	sticky := ""
	if len(cfg.MobileDefaults) > 0 {
		sticky = cfg.MobileDefaults[0]
	}
	out := make([]ResolvedColumn, 0, len(cfg.Columns))
	for _, col := range cfg.Columns {
		if hiddenOn(col.HideOn, bp) {
			continue
		}
		label := col.Label
		if bp == BreakpointMobile && col.MobileLabel != "" {
			label = col.MobileLabel
		}
		out = append(out, ResolvedColumn{
			Key:          col.Key,
			Label:        label,
			Tier:         tier(col.Priority),
			Sticky:       col.Key == sticky,
			CriticalInfo: col.CriticalInfo,
		})
	}
	return out
}

// MobileCardFields returns the keys of columns flagged as critical info, in
// config order, falling back to the mobile defaults list when none are.
func MobileCardFields(cfg Config) []string {
	var out []string
	for _, col := range cfg.Columns {
		if col.CriticalInfo {
			out = append(out, col.Key)
		}
	}
	if len(out) == 0 {
		out = append(out, cfg.MobileDefaults...)
	}
	return out
}

func hiddenOn(hideOn []string, bp Breakpoint) bool {
	for _, size := range hideOn {
		switch bp {
		case BreakpointMobile:
			if size == SizeXS || size == SizeSM {
				return true
			}
		case BreakpointTablet:
			if size == SizeMD {
				return true
			}
		}
	}
	return false
}

func tier(p Priority) string {
	if p == PriorityCritical {
		return string(PriorityHigh)
	}
	if p == "" {
		return string(PriorityMedium)
	}
	return string(p)
}
