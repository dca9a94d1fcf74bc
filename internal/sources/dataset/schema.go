package dataset

// Row is one vulnerability entry as it appears in a data file or in Redis.
// Nullable fields are pointers so that an explicit null and an absent key
// both decode to nil.
type Row struct {
	Repo     string  `yaml:"repo" json:"repo"`
	Type     string  `yaml:"type" json:"type"`
	Year     int     `yaml:"year" json:"year"`
	Title    string  `yaml:"title,omitempty" json:"title,omitempty"`
	PRID     *int64  `yaml:"pr_id" json:"pr_id"`
	PRNumber *int    `yaml:"pr_number" json:"pr_number"`
	State    *string `yaml:"state" json:"state"`
	User     string  `yaml:"user" json:"user"`
	Filename string  `yaml:"filename" json:"filename"`
	SHA      string  `yaml:"sha" json:"sha"`
	Message  string  `yaml:"message,omitempty" json:"message,omitempty"`
}

// Document is the root of a data file:
//
//	vulnerabilities:
//	  - repo: acme/web-app
//	    type: commit
//	    ...
type Document struct {
	Vulnerabilities []Row `yaml:"vulnerabilities" json:"vulnerabilities"`
}
