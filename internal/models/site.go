package models

import "time"

// Post is a blog article loaded from a markdown file
type Post struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Excerpt  string    `yaml:"excerpt"`
	Category string    `yaml:"category"`
	Date     string    `yaml:"date"`
	ReadTime string    `yaml:"readTime"`
	Draft    bool      `yaml:"draft"`
	Content  string    `yaml:"-"` // markdown body without frontmatter
	HTML     string    `yaml:"-"` // rendered, sanitized body
	Source   string    `yaml:"-"` // path relative to the content dir
	Time     time.Time `yaml:"-"` // parsed Date, zero when unparseable
}

// Link is a labelled href
type Link struct {
	Name     string `yaml:"name"`
	Href     string `yaml:"href"`
	External bool   `yaml:"external"`
}

// Card is a title/description pair used by many page sections
type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Stat is a headline number with a label
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Note  string `yaml:"note"`
}

// NewsItem is a short announcement on the home page
type NewsItem struct {
	Date     string `yaml:"date"`
	Title    string `yaml:"title"`
	Excerpt  string `yaml:"excerpt"`
	Category string `yaml:"category"`
}

// TimelineEvent is one milestone of the company history
type TimelineEvent struct {
	Year  string `yaml:"year"`
	Event string `yaml:"event"`
}

// Office is a contact location
type Office struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

// Director is a member of the leadership shown on the about page
type Director struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Photo string `yaml:"photo"`
}

// CaseStudy is a customer success story
type CaseStudy struct {
	Title       string `yaml:"title"`
	Industry    string `yaml:"industry"`
	Location    string `yaml:"location"`
	Challenge   string `yaml:"challenge"`
	Solution    string `yaml:"solution"`
	Results     []Stat `yaml:"results"`
	Testimonial string `yaml:"testimonial"`
	Author      string `yaml:"author"`
	Icon        string `yaml:"icon"`
}

// Report is a downloadable investor document
type Report struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Type  string `yaml:"type"`
}

// PressRelease is an investor news entry
type PressRelease struct {
	Date    string `yaml:"date"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Hero is the landing banner
type Hero struct {
	Lead        string `yaml:"lead"`
	Highlight   string `yaml:"highlight"`
	Tail        string `yaml:"tail"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// SiteData holds the hand-maintained page content. It is merged from every
// YAML file under content/data.
type SiteData struct {
	Company         string          `yaml:"company"`
	Tagline         string          `yaml:"tagline"`
	Logo            string          `yaml:"logo"`
	Hero            Hero            `yaml:"hero"`
	Stats           []Stat          `yaml:"stats"`
	Families        []Card          `yaml:"families"`
	Mission         []Card          `yaml:"mission"`
	Services        []Card          `yaml:"services"`
	News            []NewsItem      `yaml:"news"`
	About           []string        `yaml:"about"`
	Timeline        []TimelineEvent `yaml:"timeline"`
	Values          []Card          `yaml:"values"`
	Directors       []Director      `yaml:"directors"`
	Offices         []Office        `yaml:"offices"`
	CaseStudies     []CaseStudy     `yaml:"case_studies"`
	Financials      []Stat          `yaml:"financials"`
	Reports         []Report        `yaml:"reports"`
	PressReleases   []PressRelease  `yaml:"press_releases"`
	FooterProducts  []Link          `yaml:"footer_products"`
	FooterCompany   []Link          `yaml:"footer_company"`
	FooterSupport   []Link          `yaml:"footer_support"`
	TrainingInstURL string          `yaml:"training_institute_url"`
}

// Site is everything the renderer needs for one build
type Site struct {
	Data     SiteData
	Posts    []*Post
	Products []*Product
	Clients  []*Client
}

// NewSite creates an empty site
func NewSite() *Site {
	return &Site{
		Posts:    make([]*Post, 0),
		Products: make([]*Product, 0),
		Clients:  make([]*Client, 0),
	}
}

// PublishedPosts returns the posts that are not drafts, in load order
func (s *Site) PublishedPosts() []*Post {
	var out []*Post
	for _, p := range s.Posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}

// PostByID finds a post by its id
func (s *Site) PostByID(id string) (*Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Categories returns the distinct product categories
func (s *Site) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
