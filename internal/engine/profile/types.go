package profile

// Kind tags a record variant. It also names the section an Entry came from.
type Kind int

const (
	KindBasic Kind = iota
	KindExperience
	KindEducation
	KindInterest
	KindAccomplishment
	KindContact
	KindPost
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic_info"
	case KindExperience:
		return "experiences"
	case KindEducation:
		return "educations"
	case KindInterest:
		return "interests"
	case KindAccomplishment:
		return "accomplishments"
	case KindContact:
		return "contact_info"
	case KindPost:
		return "posts"
	}
	return "unknown"
}

// Institution is the organization reference shared by experience and education records.
type Institution struct {
	Name string `json:"institution_name,omitempty"`
	URL  string `json:"linkedin_url,omitempty"`
}

// DateRange is a tokenized "Jan 2019 - Present · 3 yrs" string.
// An empty field means the source did not carry it.
type DateRange struct {
	From     string `json:"from_date,omitempty"`
	To       string `json:"to_date,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// Position is one nested role listed under a single employer.
type Position struct {
	Title     string `json:"position_title,omitempty"`
	DateRange
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type Experience struct {
	Ordinal int `json:"ordinal"`
	Institution
	Title string `json:"position_title,omitempty"`
	DateRange
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Positions   []Position `json:"positions,omitempty"`
}

type Education struct {
	Institution
	Degree string `json:"degree,omitempty"`
	DateRange
	Description string `json:"description,omitempty"`
}

type Interest struct {
	Title string `json:"title"`
}

type Accomplishment struct {
	Category string `json:"category"`
	Title    string `json:"title"`
}

// ContactInfo holds whatever the contact overlay exposed. Every field is optional.
type ContactInfo struct {
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	ProfileURL string   `json:"profile_url,omitempty"`
	Websites   []string `json:"websites,omitempty"`
	Twitter    string   `json:"twitter,omitempty"`
	Address    string   `json:"address,omitempty"`
}

// IsEmpty reports whether no field was populated.
func (c ContactInfo) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && c.ProfileURL == "" &&
		len(c.Websites) == 0 && c.Twitter == "" && c.Address == ""
}

// BasicInfo is the identity block at the top of a profile.
type BasicInfo struct {
	Name       string `json:"name,omitempty"`
	Headline   string `json:"headline,omitempty"`
	About      string `json:"about,omitempty"`
	Location   string `json:"location,omitempty"`
	OpenToWork bool   `json:"open_to_work"`
}

// Post is one entry of a content search results page.
type Post struct {
	PostNumber        int    `json:"post_number"`
	Name              string `json:"name,omitempty"`
	ProfileURL        string `json:"profile_url,omitempty"`
	RecentActivityURL string `json:"recent_activity_url,omitempty"`
	Content           string `json:"content,omitempty"`
	ContentMarkdown   string `json:"content_markdown,omitempty"`
	PostURL           string `json:"post_url,omitempty"`
}
