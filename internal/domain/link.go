package domain

import "strconv"

// GitHubBaseURL is the hosting platform all links point to.
const GitHubBaseURL = "https://github.com"

// GitHubLink builds the deep link for a record.
// Examples:
//   - pull request #456 on acme/api-server -> https://github.com/acme/api-server/pull/456
//   - commit a1b2c3 on acme/web-app -> https://github.com/acme/web-app/commit/a1b2c3
func GitHubLink(r Record) string {
	if r == nil {
		return GitHubBaseURL
	}
	base := GitHubBaseURL + "/" + r.Info().Repository

	switch rec := r.(type) {
	case PullRequestRecord:
		return base + "/pull/" + strconv.Itoa(rec.Number)
	case CommitRecord, CodeRecord:
		return base + "/commit/" + rec.Info().CommitHash
	default:
		return base
	}
}
