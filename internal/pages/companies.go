package pages

import (
	"context"

	"github.com/jonathan/internship-generator/internal/types"
)

// CompanyForm is the editable company. Description holds all free-text
// information about the company.
type CompanyForm struct {
	Name        string
	JobRole     string
	Description string
}

// Input converts the form into the create/update payload.
func (f *CompanyForm) Input() types.CompanyInput {
	return types.CompanyInput{Name: f.Name, JobRole: f.JobRole, Description: f.Description}
}

// CompaniesPage controls the companies screen. Every mutation re-fetches the
// full list so the view always matches the service.
type CompaniesPage struct {
	api     CompanyAPI
	confirm Confirmer

	Form CompanyForm

	companies []types.Company
	editingID int64
	phase     Phase
	status    Status
}

// NewCompaniesPage creates a companies controller. A nil confirm approves
// every deletion.
func NewCompaniesPage(client CompanyAPI, confirm Confirmer) *CompaniesPage {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &CompaniesPage{api: client, confirm: confirm}
}

// Companies returns the last fetched list in service order.
func (p *CompaniesPage) Companies() []types.Company { return p.companies }

// Phase returns the state of the last action.
func (p *CompaniesPage) Phase() Phase { return p.phase }

// Status returns the last status message.
func (p *CompaniesPage) Status() Status { return p.status }

// Editing returns the id of the company being edited, if any.
func (p *CompaniesPage) Editing() (int64, bool) {
	return p.editingID, p.editingID != 0
}

// Load fetches every company.
func (p *CompaniesPage) Load(ctx context.Context) error {
	companies, err := p.api.List(ctx)
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}
	p.companies = companies
	return nil
}

// Edit seeds the form with an existing company. Companies stored with the
// older structured fields get their description rebuilt from them.
func (p *CompaniesPage) Edit(ctx context.Context, id int64) error {
	company, err := p.api.Get(ctx, id)
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}
	p.editingID = company.ID
	p.Form = CompanyForm{
		Name:        company.Name,
		JobRole:     company.JobRole,
		Description: company.AllInfo(),
	}
	return nil
}

// CancelEdit clears the form and returns to create mode.
func (p *CompaniesPage) CancelEdit() {
	p.editingID = 0
	p.Form = CompanyForm{}
}

// Submit creates or updates depending on whether a company is being edited.
func (p *CompaniesPage) Submit(ctx context.Context) error {
	if p.editingID != 0 {
		return p.Update(ctx)
	}
	return p.Create(ctx)
}

// Create adds the form as a new company.
func (p *CompaniesPage) Create(ctx context.Context) error {
	return p.save(ctx, "Company added successfully!", func(in *types.CompanyInput) error {
		_, err := p.api.Create(ctx, in)
		return err
	})
}

// Update saves the form onto the company being edited.
func (p *CompaniesPage) Update(ctx context.Context) error {
	if p.editingID == 0 {
		return &ValidationError{Message: "No company selected for editing"}
	}
	id := p.editingID
	return p.save(ctx, "Company updated successfully!", func(in *types.CompanyInput) error {
		_, err := p.api.Update(ctx, id, in)
		return err
	})
}

func (p *CompaniesPage) save(ctx context.Context, msg string, call func(*types.CompanyInput) error) error {
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

	err := call(&in)
	if err == nil {
		err = p.Load(ctx)
	}
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}

	p.CancelEdit()
	p.phase = PhaseDone
	p.status = okStatus(msg)
	return nil
}

// Delete removes a company after confirmation and re-fetches the list.
// It reports false when the user declined or the delete failed; a failed
// re-fetch after a successful delete still reports true.
func (p *CompaniesPage) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := p.confirm.Confirm("Are you sure you want to delete this company?")
	if err != nil || !ok {
		return false, err
	}

	if err := p.api.Delete(ctx, id); err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return false, err
	}
	if p.editingID == id {
		p.CancelEdit()
	}
	if err := p.Load(ctx); err != nil {
		return true, err
	}

	p.phase = PhaseDone
	p.status = okStatus("Company deleted successfully!")
	return true, nil
}
