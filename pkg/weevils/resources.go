package weevils

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind names a resource type. It is part of a record's identity.
type Kind string

// Resource kinds known to the Weevils API.
const (
	KindGitHost    Kind = "GitHost"
	KindAccount    Kind = "Account"
	KindGitHostApp Kind = "GitHostApp"
	KindRepository Kind = "Repository"
	KindBaseImage  Kind = "BaseImage"
	KindWeevil     Kind = "Weevil"
	KindArtifact   Kind = "Artifact"
	KindJob        Kind = "Job"
	KindUser       Kind = "User"
)

// Resource is implemented by every record decoded from the API.
type Resource interface {
	ResourceID() uuid.UUID
	Kind() Kind
}

// SameResource reports whether a and b denote the same remote entity: same
// kind and same id. Other fields are not compared.
func SameResource(a, b Resource) bool {
	if a == nil || b == nil {
		return false
	}

	return a.Kind() == b.Kind() && a.ResourceID() == b.ResourceID()
}

// GitHost represents a git hosting service such as GitHub or a private GitLab.
type GitHost struct {
	ID      uuid.UUID `json:"id"      yaml:"id"`
	Name    string    `json:"name"    yaml:"name"`
	Slug    string    `json:"slug"    yaml:"slug"`
	Private bool      `json:"private" yaml:"private"`
}

// Account represents a user or organisation account on a git host.
type Account struct {
	ID   uuid.UUID `json:"id"   yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Host GitHost   `json:"host" yaml:"host"`
}

// GitHostApp represents an OAuth application registered on a git host.
type GitHostApp struct {
	ID               uuid.UUID `json:"id"                yaml:"id"`
	Name             string    `json:"name"              yaml:"name"`
	AuthorizationURL string    `json:"authorization_url" yaml:"authorization_url"`
	Host             GitHost   `json:"host"              yaml:"host"`
}

// Repository represents a repository hosted on a git host.
type Repository struct {
	ID        uuid.UUID `json:"id"          yaml:"id"`
	Name      string    `json:"name"        yaml:"name"`
	Private   bool      `json:"private"     yaml:"private"`
	URLOnHost string    `json:"url_on_host" yaml:"url_on_host"`
	Owner     Account   `json:"owner"       yaml:"owner"`
	Host      GitHost   `json:"host"        yaml:"host"`
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner.Name + "/" + r.Name
}

// BaseImage represents a container image that weevils run on.
type BaseImage struct {
	ID   uuid.UUID `json:"id"   yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Slug string    `json:"slug" yaml:"slug"`
}

// Weevil represents a build script.
type Weevil struct {
	ID          uuid.UUID `json:"id"           yaml:"id"`
	Name        string    `json:"name"         yaml:"name"`
	Slug        string    `json:"slug"         yaml:"slug"`
	Script      string    `json:"script"       yaml:"script"`
	BuildStatus string    `json:"build_status" yaml:"build_status"`
}

// Artifact represents a file produced by a job.
type Artifact struct {
	ID          uuid.UUID `json:"id"           yaml:"id"`
	Path        string    `json:"path"         yaml:"path"`
	Mimetype    string    `json:"mimetype"     yaml:"mimetype"`
	DownloadURL string    `json:"download_url" yaml:"download_url"`
}

// Job represents one run of a weevil against a repository.
type Job struct {
	ID            uuid.UUID  `json:"id"             yaml:"id"`
	Number        int        `json:"number"         yaml:"number"`
	Output        string     `json:"output"         yaml:"output"`
	Status        string     `json:"status"         yaml:"status"`
	FailureReason string     `json:"failure_reason" yaml:"failure_reason"`
	Artifacts     []Artifact `json:"artifacts"      yaml:"artifacts"`
	Repository    Repository `json:"repository"     yaml:"repository"`
}

// User represents a Weevils user and the git host accounts linked to them.
type User struct {
	ID          uuid.UUID `json:"id"           yaml:"id"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	Accounts    []Account `json:"accounts"     yaml:"accounts"`
}

func (r GitHost) ResourceID() uuid.UUID { return r.ID }
func (r Account) ResourceID() uuid.UUID { return r.ID }
func (r GitHostApp) ResourceID() uuid.UUID { return r.ID }
func (r Repository) ResourceID() uuid.UUID { return r.ID }
func (r BaseImage) ResourceID() uuid.UUID { return r.ID }
func (r Weevil) ResourceID() uuid.UUID { return r.ID }
func (r Artifact) ResourceID() uuid.UUID { return r.ID }
func (r Job) ResourceID() uuid.UUID { return r.ID }
func (r User) ResourceID() uuid.UUID { return r.ID }

func (GitHost) Kind() Kind { return KindGitHost }
func (Account) Kind() Kind { return KindAccount }
func (GitHostApp) Kind() Kind { return KindGitHostApp }
func (Repository) Kind() Kind { return KindRepository }
func (BaseImage) Kind() Kind { return KindBaseImage }
func (Weevil) Kind() Kind { return KindWeevil }
func (Artifact) Kind() Kind { return KindArtifact }
func (Job) Kind() Kind { return KindJob }
func (User) Kind() Kind { return KindUser }

// Equal reports whether other is the same git host.
func (r GitHost) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same account.
func (r Account) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same host app.
func (r GitHostApp) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same repository.
func (r Repository) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same base image.
func (r BaseImage) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same weevil.
func (r Weevil) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same artifact.
func (r Artifact) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same job.
func (r Job) Equal(other Resource) bool { return SameResource(r, other) }

// Equal reports whether other is the same user.
func (r User) Equal(other Resource) bool { return SameResource(r, other) }

// Validate checks that the record was fully hydrated.
func (r GitHost) Validate() error { return requireID(KindGitHost, r.ID) }
func (r BaseImage) Validate() error { return requireID(KindBaseImage, r.ID) }
func (r Weevil) Validate() error { return requireID(KindWeevil, r.ID) }
func (r Artifact) Validate() error { return requireID(KindArtifact, r.ID) }

func (r Account) Validate() error {
	err := requireID(KindAccount, r.ID)
	if err != nil {
		return err
	}

	return nested(KindAccount, "host", r.Host.Validate())
}

func (r GitHostApp) Validate() error {
	err := requireID(KindGitHostApp, r.ID)
	if err != nil {
		return err
	}

	return nested(KindGitHostApp, "host", r.Host.Validate())
}

func (r Repository) Validate() error {
	err := requireID(KindRepository, r.ID)
	if err != nil {
		return err
	}

	err = nested(KindRepository, "owner", r.Owner.Validate())
	if err != nil {
		return err
	}

	return nested(KindRepository, "host", r.Host.Validate())
}

func (r Job) Validate() error {
	err := requireID(KindJob, r.ID)
	if err != nil {
		return err
	}

	for i, artifact := range r.Artifacts {
		err = nested(KindJob, fmt.Sprintf("artifacts[%d]", i), artifact.Validate())
		if err != nil {
			return err
		}
	}

	return nested(KindJob, "repository", r.Repository.Validate())
}

func (r User) Validate() error {
	err := requireID(KindUser, r.ID)
	if err != nil {
		return err
	}

	for i, account := range r.Accounts {
		err = nested(KindUser, fmt.Sprintf("accounts[%d]", i), account.Validate())
		if err != nil {
			return err
		}
	}

	return nil
}

func requireID(kind Kind, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: %s has no id", ErrIncompleteRecord, kind)
	}

	return nil
}

func nested(kind Kind, field string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s.%s: %w", kind, field, err)
}
