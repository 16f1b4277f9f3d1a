package github

import (
	"time"

	json "github.com/goccy/go-json"
)

// AccountKind discriminates the account variants the API reports in
// the "type" field. The set is closed.
type AccountKind string

const (
	KindOrganization AccountKind = "Organization"
	KindUser         AccountKind = "User"
	KindMannequin    AccountKind = "Mannequin"
	KindBot          AccountKind = "Bot"
)

// AccountProfile is the canonical representation of an account as
// returned by users/{login}.
type AccountProfile struct {
	Login string      `json:"login"`
	ID    int64       `json:"id"`
	Kind  AccountKind `json:"type"`
}

// TeamProfile is the canonical representation of a team.
type TeamProfile struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// IssueState is the lifecycle state of an issue.
type IssueState string

const (
	IssueOpen   IssueState = "open"
	IssueClosed IssueState = "closed"
)

// IsOpen reports whether the state is open.
func (s IssueState) IsOpen() bool {
	return s == IssueOpen
}

// IsClosed reports whether the state is closed.
func (s IssueState) IsClosed() bool {
	return s == IssueClosed
}

// IssueContent is the canonical representation of an issue. The
// pull_request field discriminates pull requests from plain issues:
// its mere presence, even as JSON null, marks a pull request.
type IssueContent struct {
	Number    int              `json:"number"`
	Author    AccountProfile   `json:"user"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	State     IssueState       `json:"state"`
	Assignees []AccountProfile `json:"assignees"`

	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether the issue is actually a pull
// request. A present-but-null pull_request key still counts.
func (i IssueContent) IsPullRequest() bool {
	return i.PullRequest != nil
}

// CommentContent is the canonical representation of an issue
// comment.
type CommentContent struct {
	ID     int64          `json:"id"`
	Author AccountProfile `json:"user"`
	Body   string         `json:"body"`
}

// CommitAuthor is the authorship block of a commit.
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// CommitVerification is the signature block of a commit.
type CommitVerification struct {
	Verified  bool   `json:"verified"`
	Signature string `json:"signature"`
	Payload   string `json:"payload"`
}

// CommitContent is the canonical representation of a git commit
// object.
type CommitContent struct {
	Sha          Sha                `json:"sha"`
	Author       CommitAuthor       `json:"author"`
	Message      string             `json:"message"`
	Verification CommitVerification `json:"verification"`
}

// Visibility is the repository visibility level.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// SecurityStatus is the enablement state of a security feature.
type SecurityStatus struct {
	Status string `json:"status"`
}

// Enabled reports whether the feature is turned on.
func (s SecurityStatus) Enabled() bool {
	return s.Status == "enabled"
}

// SecurityProperties is the security_and_analysis block of a
// repository.
type SecurityProperties struct {
	AdvancedSecurity SecurityStatus `json:"advanced_security"`
	SecretScanning   SecurityStatus `json:"secret_scanning"`

	SecretScanningPushProtection SecurityStatus `json:"secret_scanning_push_protection"`
}

// RepositoryProperties is the canonical representation of a
// repository. Owner is read-only and never sent back on PATCH.
type RepositoryProperties struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`

	Owner *AccountProfile `json:"owner,omitempty"`

	DefaultBranch string     `json:"default_branch"`
	Visibility    Visibility `json:"visibility"`
	Template      bool       `json:"is_template"`
	Private       bool       `json:"private"`
	HasIssues     bool       `json:"has_issues"`
	HasProjects   bool       `json:"has_projects"`
	HasWiki       bool       `json:"has_wiki"`
	HasDownloads  bool       `json:"has_downloads"`

	Security *SecurityProperties `json:"security_and_analysis,omitempty"`

	AllowForking bool `json:"allow_forking"`
	Signoff      bool `json:"web_commit_signoff_required"`
	Archived     bool `json:"archived"`
}
