package dto

// ActivityPageRequest captures pagination parameters for the activity feed.
type ActivityPageRequest struct {
	Page     int `validate:"omitempty,min=1"`
	PageSize int `validate:"omitempty,min=1,max=100"`
}

// BadgeView is a short status label with its semantic tone.
type BadgeView struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// ActivityRow is one ready-to-render activity entry.
type ActivityRow struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Icon             string     `json:"icon"`
	Summary          string     `json:"summary"`
	Details          string     `json:"details"`
	Badge            *BadgeView `json:"badge,omitempty"`
	TimeAgo          string     `json:"time_ago"`
	Timestamp        string     `json:"timestamp"`
	GroupName        string     `json:"group_name"`
	GroupDisplayName string     `json:"group_display_name"`
	GroupColor       string     `json:"group_color"`
	TriggeredBy      string     `json:"triggered_by"`
	Description      string     `json:"description"`
}

// ActivityPageResponse is one presented page of the activity feed.
type ActivityPageResponse struct {
	Items       []ActivityRow `json:"items"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	HasPrevPage bool          `json:"has_prev_page"`
	HasNextPage bool          `json:"has_next_page"`
	CacheHit    bool          `json:"cache_hit"`
}

// GroupView serializes one scaling group with its display color.
type GroupView struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
}

// GroupListResponse wraps the group list endpoint payload.
type GroupListResponse struct {
	Items []GroupView `json:"items"`
}
