package filtering

// ListKind identifies one of the built-in block lists.
type ListKind string

const (
	// ListAds blocks advertising hosts. Extra user lists merge into it.
	ListAds ListKind = "ads"
	// ListTrackers blocks analytics and tracking hosts.
	ListTrackers ListKind = "trackers"
)

// Identifier is the key a compiled list is stored under in the filter store.
func (k ListKind) Identifier() string {
	return "medusa-" + string(k)
}

// WebKitRule represents a WebKit content blocker rule.
type WebKitRule struct {
	Trigger WebKitTrigger `json:"trigger"`
	Action  WebKitAction  `json:"action"`
}

// WebKitTrigger defines when a rule should activate.
type WebKitTrigger struct {
	URLFilter    string   `json:"url-filter"`
	ResourceType []string `json:"resource-type,omitempty"`
	LoadType     []string `json:"load-type,omitempty"`
	IfDomain     []string `json:"if-domain,omitempty"`
	UnlessDomain []string `json:"unless-domain,omitempty"`
}

// WebKitAction defines what to do when a rule triggers.
type WebKitAction struct {
	Type string `json:"type"`
}

// Action types used by compiled lists.
const (
	ActionBlock              = "block"
	ActionIgnorePreviousRule = "ignore-previous-rules"
)

// LoadThirdParty restricts a trigger to cross-site loads.
const LoadThirdParty = "third-party"

// Stats counts what a parse produced.
type Stats struct {
	Blocked     int `json:"blocked"`
	Exceptions  int `json:"exceptions"`
	Comments    int `json:"comments"`
	Unsupported int `json:"unsupported"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Blocked += other.Blocked
	s.Exceptions += other.Exceptions
	s.Comments += other.Comments
	s.Unsupported += other.Unsupported
}
