package dashboard

type StatItem struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Color  string `json:"color"`
}

type ActivityItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Action      string `json:"action"`
	ReferenceID string `json:"reference_id,omitempty"`
	User        string `json:"user"`
	Time        string `json:"time"`
}
