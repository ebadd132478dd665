// Package presenter derives human-readable fields from raw Atlas activity
// records: relative timestamps, trigger reasons, per-type summaries, icon
// categories and badge tones. Everything here is pure and total.
package presenter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Esmaay/atlas-activity/internal/atlas"
)

// Presentation holds the display fields derived from one activity record.
// A zero Presentation means the record could not be presented.
type Presentation struct {
	Summary string
	Details string
	Badge   string
}

// IconCategory names the glyph a renderer should use for an activity row.
type IconCategory string

const (
	IconScaleUp         IconCategory = "scale-up"
	IconScaleDown       IconCategory = "scale-down"
	IconSurge           IconCategory = "surge"
	IconDrop            IconCategory = "drop"
	IconCapacityWarning IconCategory = "capacity-warning"
	IconRestart         IconCategory = "restart"
	IconPower           IconCategory = "power"
	IconDot             IconCategory = "dot"
)

// Tone is the semantic styling of a badge.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// Typed views of the loosely-shaped metadata map, one per activity type.
// Absent fields decode to their zero values.
type scalingMetadata struct {
	ServersBefore int    `json:"servers_before"`
	ServersAfter  int    `json:"servers_after"`
	Direction     string `json:"direction"`
	Reason        string `json:"reason"`
}

type playerDeltaMetadata struct {
	PreviousPlayerCount int    `json:"previousPlayerCount"`
	NewPlayerCount      int    `json:"newPlayerCount"`
	Window              string `json:"window"`
}

type capacityMetadata struct {
	NewPlayerCount int `json:"newPlayerCount"`
	Capacity       int `json:"capacity"`
}

type restartMetadata struct {
	Reason         string `json:"reason"`
	PreviousUptime string `json:"previousUptime"`
}

// Present maps one activity to its display fields. It never fails: records
// with missing metadata, unknown types or undecodable metadata collapse to
// the zero Presentation.
func Present(a atlas.Activity) Presentation {
	if a.Metadata == nil {
		return Presentation{}
	}

	switch a.ActivityType {
	case atlas.TypeScalingOperation:
		var meta scalingMetadata
		if !decodeMetadata(a.Metadata, &meta) {
			return Presentation{}
		}
		details := FormatTriggerReason(meta.Reason)
		if details == "" {
			details = "Auto-scaling triggered"
		}
		sign := "+"
		if meta.Direction != "up" {
			sign = "-"
		}
		return Presentation{
			Summary: fmt.Sprintf("%d → %d servers", meta.ServersBefore, meta.ServersAfter),
			Details: details,
			Badge:   fmt.Sprintf("%s%d", sign, absInt(meta.ServersAfter-meta.ServersBefore)),
		}

	case atlas.TypePlayerSurge:
		var meta playerDeltaMetadata
		if !decodeMetadata(a.Metadata, &meta) {
			return Presentation{}
		}
		return Presentation{
			Summary: fmt.Sprintf("%d → %d players", meta.PreviousPlayerCount, meta.NewPlayerCount),
			Details: fmt.Sprintf("Surge detected in %s", windowOrDefault(meta.Window)),
			Badge:   fmt.Sprintf("+%d", meta.NewPlayerCount-meta.PreviousPlayerCount),
		}

	case atlas.TypePlayerDrop:
		var meta playerDeltaMetadata
		if !decodeMetadata(a.Metadata, &meta) {
			return Presentation{}
		}
		return Presentation{
			Summary: fmt.Sprintf("%d → %d players", meta.PreviousPlayerCount, meta.NewPlayerCount),
			Details: fmt.Sprintf("Drop detected in %s", windowOrDefault(meta.Window)),
			Badge:   fmt.Sprintf("-%d", meta.PreviousPlayerCount-meta.NewPlayerCount),
		}

	case atlas.TypeCapacityReached:
		var meta capacityMetadata
		if !decodeMetadata(a.Metadata, &meta) {
			return Presentation{}
		}
		return Presentation{
			Summary: fmt.Sprintf("%d/%d players", meta.NewPlayerCount, meta.Capacity),
			Details: "Server at maximum capacity",
			Badge:   "FULL",
		}

	case atlas.TypeServerRestart:
		var meta restartMetadata
		if !decodeMetadata(a.Metadata, &meta) {
			return Presentation{}
		}
		summary := meta.Reason
		if summary == "" {
			summary = "Manual restart"
		}
		details := ""
		if meta.PreviousUptime != "" {
			details = fmt.Sprintf("Uptime: %s", meta.PreviousUptime)
		}
		return Presentation{Summary: summary, Details: details, Badge: "RESTART"}

	case atlas.TypeAtlasLifecycle:
		return Presentation{
			Summary: "System event",
			Details: "Atlas lifecycle change",
			Badge:   "SYSTEM",
		}

	default:
		return Presentation{}
	}
}

// IconFor picks the icon category for an activity. The mapping is total;
// unknown types fall back to a generic dot.
func IconFor(a atlas.Activity) IconCategory {
	switch a.ActivityType {
	case atlas.TypeScalingOperation:
		if direction, ok := a.Metadata["direction"].(string); ok && direction == "down" {
			return IconScaleDown
		}
		return IconScaleUp
	case atlas.TypePlayerSurge:
		return IconSurge
	case atlas.TypePlayerDrop:
		return IconDrop
	case atlas.TypeCapacityReached:
		return IconCapacityWarning
	case atlas.TypeServerRestart:
		return IconRestart
	case atlas.TypeAtlasLifecycle:
		return IconPower
	default:
		return IconDot
	}
}

// BadgeTone classifies badge text for semantic styling.
func BadgeTone(text string) Tone {
	switch {
	case strings.Contains(text, "+") || text == "SUCCESS" || text == "SURGE":
		return TonePositive
	case strings.Contains(text, "-") || text == "FAILED" || text == "FULL":
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// decodeMetadata round-trips the raw metadata map into a typed view.
func decodeMetadata(metadata map[string]interface{}, out interface{}) bool {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func windowOrDefault(window string) string {
	if window == "" {
		return "5m"
	}
	return window
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
