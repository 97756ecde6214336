package pages

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/internship-generator/internal/types"
)

// ProfileState tells whether the session already owns a profile.
type ProfileState int

const (
	ProfileAbsent ProfileState = iota
	ProfilePresent
)

func (s ProfileState) String() string {
	if s == ProfilePresent {
		return "has-profile"
	}
	return "no-profile"
}

// ProfileForm is the editable profile. List fields are comma separated text;
// structured sub-lists are carried through unchanged.
type ProfileForm struct {
	Name         string
	Email        string
	Phone        string
	Location     string
	Bio          string
	Skills       string
	ResumeURL    string
	Achievements string
	Languages    string
	Interests    string

	Experience     []types.ExperienceItem
	Projects       []types.ProjectItem
	Education      []types.EducationItem
	Certifications []types.CertificationItem
	Links          map[string]string
}

func profileFormFrom(in types.ProfileInput) ProfileForm {
	return ProfileForm{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Location:       in.Location,
		Bio:            in.Bio,
		Skills:         JoinList(in.Skills),
		ResumeURL:      in.ResumeURL,
		Achievements:   JoinList(in.Achievements),
		Languages:      JoinList(in.Languages),
		Interests:      in.Interests,
		Experience:     in.Experience,
		Projects:       in.Projects,
		Education:      in.Education,
		Certifications: in.Certifications,
		Links:          in.Links,
	}
}

// Input converts the form into the create/update payload.
func (f *ProfileForm) Input() types.ProfileInput {
	in := types.ProfileInput{
		Name:           strings.TrimSpace(f.Name),
		Email:          strings.TrimSpace(f.Email),
		Phone:          f.Phone,
		Location:       f.Location,
		Bio:            f.Bio,
		Skills:         SplitList(f.Skills),
		ResumeURL:      f.ResumeURL,
		Achievements:   SplitList(f.Achievements),
		Languages:      SplitList(f.Languages),
		Interests:      f.Interests,
		Experience:     f.Experience,
		Projects:       f.Projects,
		Education:      f.Education,
		Certifications: f.Certifications,
		Links:          f.Links,
	}
	in.Normalize()
	return in
}

// ProfilePage controls the profile screen. It owns the session's single
// profile: created once when absent, then updated by id.
type ProfilePage struct {
	api ProfileAPI

	Form ProfileForm

	profile *types.UserProfile
	phase   Phase
	status  Status
}

// NewProfilePage creates a profile controller backed by client.
func NewProfilePage(client ProfileAPI) *ProfilePage {
	return &ProfilePage{api: client}
}

// Profile returns the stored profile, or nil when none exists yet.
func (p *ProfilePage) Profile() *types.UserProfile { return p.profile }

// State reports whether a profile exists.
func (p *ProfilePage) State() ProfileState {
	if p.profile == nil {
		return ProfileAbsent
	}
	return ProfilePresent
}

// Phase returns the state of the last action.
func (p *ProfilePage) Phase() Phase { return p.phase }

// Status returns the last status message.
func (p *ProfilePage) Status() Status { return p.status }

// Load fetches the current profile and seeds the form when one exists.
func (p *ProfilePage) Load(ctx context.Context) error {
	p.phase = PhaseLoading
	if err := p.reload(ctx); err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}
	p.phase = PhaseIdle
	return nil
}

func (p *ProfilePage) reload(ctx context.Context) error {
	profile, err := p.api.Get(ctx)
	if err != nil {
		return err
	}
	p.profile = profile
	if profile != nil {
		p.Form = profileFormFrom(profile.Input())
	}
	return nil
}

// Submit saves the form, creating the profile when none exists and updating
// it otherwise, then reloads it.
func (p *ProfilePage) Submit(ctx context.Context) error {
	if p.phase == PhaseLoading {
		return ErrBusy
	}

	in := p.Form.Input()
	if err := in.Validate(); err != nil {
		verr := validationError(err)
		p.status = Status{Text: verr.Error(), IsError: true}
		return verr
	}

	p.phase = PhaseLoading
	p.status = Status{}

	var (
		msg string
		err error
	)
	if p.profile == nil {
		_, err = p.api.Create(ctx, &in)
		msg = "Profile created successfully!"
	} else {
		_, err = p.api.Update(ctx, p.profile.ID, &in)
		msg = "Profile updated successfully!"
	}
	if err == nil {
		err = p.reload(ctx)
	}
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}

	p.phase = PhaseDone
	p.status = okStatus(msg)
	return nil
}

// ImportResumeText parses pasted resume text and overwrites every editable
// field with the result. Nothing is saved until Submit.
func (p *ProfilePage) ImportResumeText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return p.rejectImport("Please paste your resume text")
	}
	return p.importResume(ctx, func() (*types.ResumeParseResult, error) {
		return p.api.ParseResumeText(ctx, text)
	})
}

// ImportResumePDF uploads a PDF resume and overwrites every editable field
// with the parsed result. Nothing is saved until Submit.
func (p *ProfilePage) ImportResumePDF(ctx context.Context, filename string, data []byte) error {
	if len(data) == 0 {
		return p.rejectImport("Please select a PDF file")
	}
	return p.importResume(ctx, func() (*types.ResumeParseResult, error) {
		return p.api.ParseResumePDF(ctx, filename, data)
	})
}

func (p *ProfilePage) rejectImport(msg string) error {
	p.status = Status{Text: msg, IsError: true}
	return &ValidationError{Message: msg}
}

func (p *ProfilePage) importResume(ctx context.Context, parse func() (*types.ResumeParseResult, error)) error {
	if p.phase == PhaseLoading {
		return ErrBusy
	}
	p.phase = PhaseLoading
	p.status = Status{}

	result, err := parse()
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error parsing resume: ", err)
		return err
	}

	parsed := result.ParsedData
	parsed.Normalize()
	p.Form = profileFormFrom(parsed)

	p.phase = PhaseDone
	p.status = okStatus(fmt.Sprintf("%s - Form auto-filled with extracted data!", result.Message))
	return nil
}

// Summary renders the structured sub-lists as read-only text.
func (p *ProfilePage) Summary() string {
	var b strings.Builder
	f := &p.Form

	if len(f.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range f.Experience {
			fmt.Fprintf(&b, "  - %s at %s (%s)\n", e.Role, e.Company, e.Duration)
		}
	}
	if len(f.Projects) > 0 {
		b.WriteString("Projects:\n")
		for _, pr := range f.Projects {
			line := "  - " + pr.Name
			if len(pr.TechStack) > 0 {
				line += " [" + JoinList(pr.TechStack) + "]"
			}
			b.WriteString(line + "\n")
		}
	}
	if len(f.Education) > 0 {
		b.WriteString("Education:\n")
		for _, e := range f.Education {
			fmt.Fprintf(&b, "  - %s, %s (%s)\n", e.Degree, e.Institution, e.Year)
		}
	}
	if len(f.Certifications) > 0 {
		b.WriteString("Certifications:\n")
		for _, c := range f.Certifications {
			fmt.Fprintf(&b, "  - %s (%s)\n", c.Name, c.Issuer)
		}
	}
	if len(f.Links) > 0 {
		b.WriteString("Links:\n")
		for _, label := range slices.Sorted(maps.Keys(f.Links)) {
			fmt.Fprintf(&b, "  - %s: %s\n", label, f.Links[label])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
