package constraints

type ActivityTag string

const (
	Real          ActivityTag = "real"
	LunchBreak    ActivityTag = "lunch-break"
	FreeAfternoon ActivityTag = "free-afternoon"
)

type Activity struct {
	Id            int         `json:"id"`
	Subject       string      `json:"subject"`
	Students      []string    `json:"students"` // Class ids, "class.group" names or atomic group labels
	Teachers      []string    `json:"teachers"`
	Duration      int         `json:"duration"`
	TotalDuration int         `json:"total_duration"`
	Tag           ActivityTag `json:"tag"`
	Course        string      `json:"course,omitempty"`
}

// VirtualRoom is satisfied by one real room out of each of its sets
type VirtualRoom struct {
	Id   string     `json:"id"`
	Sets [][]string `json:"sets"`
}
