// Package pages provides one controller per screen of the internship generator:
// profile, companies, examples and generate. A controller owns the form state
// of its screen, loads from the API client, calls it on user actions and
// exposes the derived view plus a transient status message.
//
// Controllers are driven by a single caller and are not safe for concurrent use.
package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/internship-generator/internal/api"
	"github.com/jonathan/internship-generator/internal/types"
)

// Phase is the state of the last action a controller ran.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseDone
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseDone:
		return "done"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Status is the banner shown after an action. Failures are distinguished by
// their text prefix ("Error: ", "Error parsing resume: ", ...) and by IsError.
type Status struct {
	Text    string
	IsError bool
}

func (s Status) String() string {
	return s.Text
}

func okStatus(text string) Status {
	return Status{Text: text}
}

func errStatus(prefix string, err error) Status {
	return Status{Text: prefix + err.Error(), IsError: true}
}

// ValidationError rejects form input before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrBusy is returned when an action is submitted while another is loading.
var ErrBusy = errors.New("another request is still in progress")

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// ProfileAPI is the subset of the API client used by the profile screen.
type ProfileAPI interface {
	Get(ctx context.Context) (*types.UserProfile, error)
	Create(ctx context.Context, in *types.ProfileInput) (*types.UserProfile, error)
	Update(ctx context.Context, id int64, in *types.ProfileInput) (*types.UserProfile, error)
	ParseResumeText(ctx context.Context, text string) (*types.ResumeParseResult, error)
	ParseResumePDF(ctx context.Context, filename string, data []byte) (*types.ResumeParseResult, error)
}

// CompanyAPI is the subset of the API client used by the companies screen.
type CompanyAPI interface {
	Create(ctx context.Context, in *types.CompanyInput) (*types.Company, error)
	List(ctx context.Context) ([]types.Company, error)
	Get(ctx context.Context, id int64) (*types.Company, error)
	Update(ctx context.Context, id int64, in *types.CompanyInput) (*types.Company, error)
	Delete(ctx context.Context, id int64) error
}

// ExampleAPI is the subset of the API client used by the examples screen.
type ExampleAPI interface {
	Create(ctx context.Context, in *types.ExampleInput) (*types.Example, error)
	List(ctx context.Context, filter types.GenerationType) ([]types.Example, error)
	Get(ctx context.Context, id int64) (*types.Example, error)
	Update(ctx context.Context, id int64, in *types.ExampleInput) (*types.Example, error)
	Delete(ctx context.Context, id int64) error
}

// GenerationAPI is the subset of the API client used by the generate screen.
type GenerationAPI interface {
	Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error)
	Refine(ctx context.Context, req *types.RefinementRequest) (*types.RefinementResult, error)
}

var (
	_ ProfileAPI    = (*api.ProfilesService)(nil)
	_ CompanyAPI    = (*api.CompaniesService)(nil)
	_ ExampleAPI    = (*api.ExamplesService)(nil)
	_ GenerationAPI = (*api.GenerationService)(nil)
)

// SplitList turns a comma separated form field into a trimmed list with
// empty entries removed. It never returns nil.
func SplitList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// JoinList renders a list as the comma separated form field SplitList reads.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func validationError(err error) error {
	return &ValidationError{Message: types.ValidationMessage(err)}
}
