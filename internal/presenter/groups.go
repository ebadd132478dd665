package presenter

import (
	"hash/fnv"

	"github.com/Esmaay/atlas-activity/internal/atlas"
)

// Display colors assigned to groups. Selection is deterministic so a group
// keeps its color across pages and restarts.
var groupPalette = []string{
	"#3b82f6",
	"#8b5cf6",
	"#06b6d4",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#ec4899",
	"#14b8a6",
}

// ResolveInternalName maps a display name back to the group's internal name.
// The first group whose display name or internal name matches wins; with no
// match the input is returned unchanged.
func ResolveInternalName(displayName string, groups []atlas.Group) string {
	for _, group := range groups {
		if group.DisplayName == displayName || group.Name == displayName {
			return group.Name
		}
	}
	return displayName
}

// ColorFor picks the display color for a group's internal name.
func ColorFor(internalName string) string {
	if internalName == "" {
		return groupPalette[0]
	}
	h := fnv.New32a()
	h.Write([]byte(internalName))
	return groupPalette[int(h.Sum32())%len(groupPalette)]
}
